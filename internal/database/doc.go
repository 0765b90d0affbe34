// Package database provides SQLite-based storage for TrustGuard.
//
// HistoryDB stores every saved analysis as JSON alongside the columns
// needed to list, search and compare them. The same file also holds a
// company finding cache used when no Redis server is configured.
//
// The driver is modernc.org/sqlite, a CGO-free implementation, so the
// database is a single file with no external service to run.
package database
