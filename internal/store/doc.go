// Package store defines the persistence contracts for users and tasks and
// the errors every implementation reports. Implementations live under
// internal/platform (postgres and mongo) and must honour the owner scoping
// described on TaskStore: every read and write of a task is filtered by the
// owning user's ID inside the store query itself.
package store
