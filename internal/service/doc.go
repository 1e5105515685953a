// Package service contains the application use cases.
//
// TaskService is the task access layer: every operation is scoped to the
// authenticated owner, inputs are validated before any store call, and
// listing is paginated. AuthService registers users and logs them in using
// the credential primitives from the auth subpackage.
//
// Services return sentinel errors (checked with errors.Is); the API layer
// maps them to HTTP status codes.
package service
