// Package connection implements the event channel supervisor.
//
// The Supervisor:
//   - Owns at most one live WebSocket to the backend events endpoint
//   - Parses inbound {"type","payload"} frames and hands them to a Dispatcher
//   - Reconnects after transient closes per the reconnect policy
//   - Stops for good on terminal close codes, attempt exhaustion, or Teardown
package connection
