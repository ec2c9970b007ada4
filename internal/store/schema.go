package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    amount      REAL NOT NULL,
    note        TEXT NOT NULL DEFAULT '',
    campaign    TEXT NOT NULL DEFAULT '',
    source      TEXT NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);
CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
`
