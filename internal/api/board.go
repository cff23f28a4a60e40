package api

import (
	"context"

	"github.com/opsboard/eventsync/internal/model"
)

// ticketsResponse is the wire shape of GET /api/tickets.
type ticketsResponse struct {
	Tickets []model.Ticket `json:"tickets"`
}

// agentsResponse is the wire shape of GET /api/agents.
type agentsResponse struct {
	Agents []model.Agent `json:"agents"`
}

// tasksResponse is the wire shape of GET /api/tasks.
type tasksResponse struct {
	Tasks []model.Task `json:"tasks"`
}

// ListTickets fetches all tickets.
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var resp ticketsResponse
	if err := c.get(ctx, "/api/tickets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// ListAgents fetches all agents.
func (c *Client) ListAgents(ctx context.Context) ([]model.Agent, error) {
	var resp agentsResponse
	if err := c.get(ctx, "/api/agents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// ListTasks fetches all tasks.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var resp tasksResponse
	if err := c.get(ctx, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}
