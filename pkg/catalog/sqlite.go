package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// SQLiteStore implements Store on SQLite through either the pure Go driver
// ("sqlite") or the cgo driver ("sqlite3").
type SQLiteStore struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database, creating the file and schema when
// missing.
func NewSQLiteStore(cfg *config.SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	c := *cfg
	if c.Path == "" {
		c.Path = config.DefaultCatalogSQLitePath
	}
	if c.Driver == "" {
		c.Driver = config.DefaultCatalogSQLiteDriver
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = config.DefaultCatalogSQLiteMaxOpen
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = config.DefaultCatalogSQLiteBusyTimeout
	}
	if logger == nil {
		logger = slog.Default().With("component", "catalog.sqlite")
	}

	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(c.Driver, "create_dir", err)
		}
	}

	db, err := sql.Open(c.Driver, dsn(c))
	if err != nil {
		return nil, NewStorageError(c.Driver, "open", err)
	}
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxOpenConns)

	s := &SQLiteStore{db: db, config: c, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("catalog opened",
		"path", c.Path,
		"driver", c.Driver,
		"wal_mode", c.WALMode,
	)
	return s, nil
}

// dsn carries the pragmas in the connection string so every pooled
// connection gets them. The two drivers spell pragmas differently.
func dsn(c config.SQLiteConfig) string {
	ms := c.BusyTimeout.Milliseconds()
	var params []string
	switch c.Driver {
	case "sqlite3":
		params = append(params, fmt.Sprintf("_busy_timeout=%d", ms))
		if c.WALMode {
			params = append(params, "_journal_mode=WAL")
		}
	default:
		params = append(params, fmt.Sprintf("_pragma=busy_timeout(%d)", ms))
		if c.WALMode {
			params = append(params, "_pragma=journal_mode(WAL)")
		}
	}
	return c.Path + "?" + strings.Join(params, "&")
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(s.config.Driver, "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError(s.config.Driver, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// Save inserts record.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	kinds, err := json.Marshal(record.ComponentKinds)
	if err != nil {
		return NewStorageError(s.config.Driver, "marshal_kinds", err)
	}

	_, err = s.db.ExecContext(ctx, insertRecord,
		record.ID.String(), record.Path, record.Hash, record.Size,
		record.ParsedAt.UnixNano(), int64(record.Duration),
		record.Success, nullString(record.ErrorType), nullString(record.ErrorMessage),
		string(kinds), record.Warnings,
	)
	if err != nil {
		return NewStorageError(s.config.Driver, "save", err)
	}
	return nil
}

// List returns matching records, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	where, args := buildWhereClause(filter)
	query := selectColumns + where + " ORDER BY parsed_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	defer rows.Close()

	results := make([]*Record, 0)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, NewStorageError(s.config.Driver, "scan", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	return results, nil
}

// Count returns the number of matching records.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := buildWhereClause(filter)
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parses"+where, args...).Scan(&n); err != nil {
		return 0, NewStorageError(s.config.Driver, "count", err)
	}
	return n, nil
}

// Prune deletes old records and caps the total count.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time, maxRecords int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}
	defer tx.Rollback()

	var deleted int64
	if !olderThan.IsZero() {
		res, err := tx.ExecContext(ctx, deleteOlderThan, olderThan.UnixNano())
		if err != nil {
			return 0, NewStorageError(s.config.Driver, "prune_age", err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}
	if maxRecords > 0 {
		res, err := tx.ExecContext(ctx, deleteBeyondCount, maxRecords)
		if err != nil {
			return 0, NewStorageError(s.config.Driver, "prune_count", err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}
	return deleted, nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(s.config.Driver, "close", err)
	}
	s.logger.Debug("catalog closed", "path", s.config.Path)
	return nil
}

func buildWhereClause(f Filter) (string, []any) {
	var conds []string
	var args []any
	if f.Path != "" {
		conds = append(conds, "path = ?")
		args = append(args, f.Path)
	}
	if !f.Since.IsZero() {
		conds = append(conds, "parsed_at >= ?")
		args = append(args, f.Since.UnixNano())
	}
	if f.Failed {
		conds = append(conds, "success = 0")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRow(rows *sql.Rows) (*Record, error) {
	var (
		id, kinds               string
		errorType, errorMessage sql.NullString
		parsedAt, duration      int64
		kindsCol                sql.NullString
	)
	r := &Record{}
	err := rows.Scan(&id, &r.Path, &r.Hash, &r.Size, &parsedAt, &duration,
		&r.Success, &errorType, &errorMessage, &kindsCol, &r.Warnings)
	if err != nil {
		return nil, err
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("record id %q: %w", id, err)
	}
	r.ParsedAt = time.Unix(0, parsedAt)
	r.Duration = time.Duration(duration)
	r.ErrorType = errorType.String
	r.ErrorMessage = errorMessage.String

	kinds = kindsCol.String
	if kinds != "" && kinds != "null" {
		if err := json.Unmarshal([]byte(kinds), &r.ComponentKinds); err != nil {
			return nil, fmt.Errorf("component kinds: %w", err)
		}
	}
	return r, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
