// Package tasks composes service calls into the multi-step flows the CLI and
// TUI trigger: the login chain, strict session verification, comment posting
// with a follow-up refetch, and bulk snapshotting of matches into the local
// database.
//
// Flows report progress over channels so interactive frontends can render
// updates without blocking the work.
package tasks
