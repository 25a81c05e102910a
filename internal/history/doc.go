// Package history persists finished transcode sessions in SQLite.
//
// Every session that reaches a terminal state is recorded with its request
// parameters, planned codec, and outcome so the CLI can list past runs. The
// store applies WAL mode and a busy timeout, and owns its own schema
// versioning.
package history
