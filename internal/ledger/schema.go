package ledger

// schemaVersion bumps when the tables change shape; the ledger is transient
// bookkeeping, so old databases are recreated rather than migrated.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    release     TEXT NOT NULL,
    particles   TEXT NOT NULL,
    started_at  TEXT NOT NULL,
    finished_at TEXT
);

CREATE TABLE IF NOT EXISTS run_files (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    particle    TEXT NOT NULL,
    source_path TEXT NOT NULL,
    output_path TEXT,
    status      TEXT NOT NULL,
    message     TEXT,
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
`
