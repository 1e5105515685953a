// Package domain contains the core business entities of the application,
// users and the tasks they own, together with the validation rules those
// entities must satisfy. It is independent of persistence and transport.
package domain
