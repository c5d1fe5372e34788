// Package sqlite provides a SQLite-based implementation of driven.IndexStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Matching
//
// Title and content are stored twice: as written, and lowercased rune by
// rune in title_fold and content_fold. Queries fold the term the same way
// and search the folded columns with instr, so "über" finds "ÜBER" and
// LIKE wildcards in the term have no special meaning.
//
// # Data Location
//
// By default, the database is stored at ~/.pageindex/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
