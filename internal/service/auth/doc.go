// Package auth holds the credential primitives: bcrypt password hashing and
// HS256 access tokens. Higher-level flows (register, login) live in the
// service package and depend on the interfaces defined here.
package auth
