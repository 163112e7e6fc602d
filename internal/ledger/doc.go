// Package ledger persists per-run conversion outcomes in SQLite.
//
// Every pipeline run gets a row keyed by a UUID; every file the convert stage
// touches gets an outcome row (converted, skipped, or failed) with its
// message. The CLI reads the ledger back for the end-of-run summary and the
// runs listing. The database is a record of work done, not pipeline state:
// the orchestrator never reads it to decide what to do next.
package ledger
