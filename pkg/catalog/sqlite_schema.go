package catalog

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the catalog tables. Times are stored as Unix nanoseconds
// so both drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS parses (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    hash TEXT NOT NULL,
    size INTEGER NOT NULL,
    parsed_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    success BOOLEAN NOT NULL,
    error_type TEXT,
    error_message TEXT,
    component_kinds TEXT,
    warnings INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parses_parsed_at ON parses(parsed_at);
CREATE INDEX IF NOT EXISTS idx_parses_path ON parses(path);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion reads the newest schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRecord = `
INSERT INTO parses (
    id, path, hash, size, parsed_at, duration_ns,
    success, error_type, error_message, component_kinds, warnings
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectColumns = `
SELECT id, path, hash, size, parsed_at, duration_ns,
       success, error_type, error_message, component_kinds, warnings
FROM parses
`

const deleteOlderThan = `DELETE FROM parses WHERE parsed_at < ?`

const deleteBeyondCount = `
DELETE FROM parses WHERE rowid NOT IN (
    SELECT rowid FROM parses ORDER BY parsed_at DESC, rowid DESC LIMIT ?
)
`
