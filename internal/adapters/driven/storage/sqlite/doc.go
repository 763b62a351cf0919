// Package sqlite provides the SQLite-backed export archive.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// The archive is append-only: every successful export can be recorded with its
// counts and full payload, and listed later for audit. It is never read back
// into live sessions.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files,
// and applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.annotator/data/exports.db
package sqlite
