// Package api provides the REST client used to refetch board data
// after a cache invalidation.
//
// Endpoints:
//   - GET /api/tickets
//   - GET /api/agents
//   - GET /api/tasks
package api
