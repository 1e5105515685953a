// Package ciutil reads the environment that integration tests run in: which
// CI provider (if any) is hosting the run and where the test databases live.
package ciutil
