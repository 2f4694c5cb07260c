// Package runstore records finished pipeline runs in a local SQLite
// database so past transcriptions can be listed from the CLI.
package runstore
