package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/martinsuchenak/assetcompass/internal/log"
)

// DatabaseFile is the SQLite file created inside the data directory.
const DatabaseFile = "assetcompass.db"

// SQLiteStorage implements Storage with a SQLite backend.
//
// Each operation runs in its own transaction, committed on success and
// rolled back on any error. No state is shared between calls beyond the
// database handle.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (creating if needed) the database in dataDir and
// migrates it to the latest schema.
func NewSQLiteStorage(dataDir string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Single writer; the pragmas above are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ss := &SQLiteStorage{db: db, path: dbPath}

	if _, err := ss.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return ss, nil
}

// Path returns the database file location.
func (ss *SQLiteStorage) Path() string {
	return ss.path
}

// Ping checks the database is reachable.
func (ss *SQLiteStorage) Ping(ctx context.Context) error {
	return ss.db.PingContext(ctx)
}

// Maintain checkpoints the write-ahead log into the main database file and
// refreshes query planner statistics.
func (ss *SQLiteStorage) Maintain(ctx context.Context) error {
	var busy, logFrames, checkpointed int
	err := ss.db.QueryRowContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").Scan(&busy, &logFrames, &checkpointed)
	if err != nil {
		return fmt.Errorf("checkpointing WAL: %w", err)
	}
	if _, err := ss.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("optimizing database: %w", err)
	}
	log.Debug("Database maintenance finished", "path", ss.path, "wal_frames", logFrames, "checkpointed", checkpointed, "busy", busy)
	return nil
}

// Close closes the database connection.
func (ss *SQLiteStorage) Close() error {
	return ss.db.Close()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type txKey struct{}

// withTx runs fn inside a transaction. When ctx already carries one from
// Atomic, fn joins it and the outer call owns commit and rollback.
func (ss *SQLiteStorage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(tx)
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Atomic runs fn so that every write made through ctx commits together or
// not at all. Reads must not be issued through ctx while fn runs.
func (ss *SQLiteStorage) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return ss.withTx(ctx, func(tx *sql.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// table describes an entity table for the shared helpers.
type table struct {
	name       string
	entity     string
	notFound   error
	dependents []dependent
}

// dependent is a foreign key column in another table pointing at this one.
type dependent struct {
	table  string
	column string
	label  string
}

var (
	datacentersTable = &table{
		name:       "datacenters",
		entity:     "datacenter",
		notFound:   ErrDatacenterNotFound,
		dependents: []dependent{{"servers", "datacenter_id", "server(s)"}},
	}
	operatingSystemsTable = &table{
		name:       "operating_systems",
		entity:     "operating system",
		notFound:   ErrOperatingSystemNotFound,
		dependents: []dependent{{"hosts", "os_id", "host(s)"}},
	}
	serversTable = &table{
		name:       "servers",
		entity:     "server",
		notFound:   ErrServerNotFound,
		dependents: []dependent{{"hosts", "server_id", "host(s)"}},
	}
	hostsTable = &table{
		name:       "hosts",
		entity:     "host",
		notFound:   ErrHostNotFound,
		dependents: []dependent{{"ip_addresses", "host_id", "ip address(es)"}},
	}
	ipAddressesTable = &table{
		name:     "ip_addresses",
		entity:   "ip address",
		notFound: ErrIPAddressNotFound,
	}
	personsTable = &table{
		name:       "persons",
		entity:     "person",
		notFound:   ErrPersonNotFound,
		dependents: []dependent{{"assignments", "person_id", "assignment(s)"}},
	}
	assignmentsTable = &table{
		name:     "assignments",
		entity:   "assignment",
		notFound: ErrAssignmentNotFound,
	}
)

func exists(ctx context.Context, q querier, t *table, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+t.name+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", t.entity, err)
	}
	return true, nil
}

// getRow scans a single row, mapping no rows to the table's not-found error.
func getRow[T any](ctx context.Context, q querier, t *table, scan func(rowScanner) (T, error), query string, id string) (*T, error) {
	v, err := scan(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, t.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", t.entity, err)
	}
	return &v, nil
}

// queryRows scans every row of a query. The result is never nil.
func queryRows[T any](ctx context.Context, q querier, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// listChildren lists rows belonging to parentID, failing with the parent's
// not-found error when the parent does not exist.
func listChildren[T any](ctx context.Context, ss *SQLiteStorage, parent *table, parentID string, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	var out []T
	err := ss.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, parent, parentID)
		if err != nil {
			return err
		}
		if !ok {
			return parent.notFound
		}
		out, err = queryRows(ctx, tx, scan, query, args...)
		return err
	})
	return out, err
}

// deleteRow removes id from t inside a transaction.
func (ss *SQLiteStorage) deleteRow(ctx context.Context, t *table, id string) error {
	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
		if err != nil {
			return deleteError(ctx, tx, t, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting %s: %w", t.entity, err)
		}
		if n == 0 {
			return t.notFound
		}
		return nil
	})
}

// updated reports whether an UPDATE touched a row.
func updated(res sql.Result, t *table) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.entity, err)
	}
	if n == 0 {
		return t.notFound
	}
	return nil
}

// generateID returns a UUIDv7, falling back to a random UUID.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func now() time.Time {
	return time.Now().UTC()
}

// optional normalises blank optional strings to nil.
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
