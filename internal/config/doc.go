// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file and an optional config
// file. Every variable is prefixed with TASKLY_ and nested keys use
// underscores, so database.url is read from TASKLY_DATABASE_URL.
package config
