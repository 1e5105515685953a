// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. The schema lives in embedded goose
// migrations; MapError translates driver errors into store errors.
package postgres
