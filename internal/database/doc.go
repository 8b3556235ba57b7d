// Package database provides SQLite-based storage for queryscan run history.
//
// This package implements the RunDB, which stores one record per
// generation run: the collection that was analyzed, where it came from,
// and the full report so later runs can be compared against it.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
