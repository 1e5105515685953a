// Package api holds the HTTP handlers for authentication and tasks. Handlers
// decode requests, call the services and translate service errors into status
// codes and client-safe messages; no business rules live here.
package api
