// Package middleware contains the HTTP middleware mounted by the router:
// bearer authentication, trace IDs with request-scoped loggers, per-client
// rate limiting and Prometheus instrumentation.
package middleware
