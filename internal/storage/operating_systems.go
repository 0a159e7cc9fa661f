package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const operatingSystemColumns = `id, name, version, vendor, eol_date, created_at, updated_at`

func scanOperatingSystem(row rowScanner) (model.OperatingSystem, error) {
	var os model.OperatingSystem
	var eol sql.NullString
	err := row.Scan(&os.ID, &os.Name, &os.Version, &os.Vendor, &eol, &os.CreatedAt, &os.UpdatedAt)
	os.EOLDate = fromNull(eol)
	return os, err
}

// ListOperatingSystems returns one page of operating systems.
func (ss *SQLiteStorage) ListOperatingSystems(ctx context.Context, page model.Page) ([]model.OperatingSystem, error) {
	page = page.Normalize()
	list, err := queryRows(ctx, ss.db, scanOperatingSystem,
		`SELECT `+operatingSystemColumns+` FROM operating_systems ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing operating systems: %w", err)
	}
	return list, nil
}

// GetOperatingSystem retrieves an operating system by ID.
func (ss *SQLiteStorage) GetOperatingSystem(ctx context.Context, id string) (*model.OperatingSystem, error) {
	return getOperatingSystem(ctx, ss.db, id)
}

func getOperatingSystem(ctx context.Context, q querier, id string) (*model.OperatingSystem, error) {
	return getRow(ctx, q, operatingSystemsTable, scanOperatingSystem,
		`SELECT `+operatingSystemColumns+` FROM operating_systems WHERE id = ?`, id)
}

func (ss *SQLiteStorage) CreateOperatingSystem(ctx context.Context, os *model.OperatingSystem) error {
	if os.ID == "" {
		os.ID = generateID()
	}
	os.EOLDate = optional(os.EOLDate)
	os.CreatedAt = now()
	os.UpdatedAt = os.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO operating_systems (id, name, version, vendor, eol_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, os.ID, os.Name, os.Version, os.Vendor, nullString(os.EOLDate), os.CreatedAt, os.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, operatingSystemsTable, "creating", err, map[string]string{"id": os.ID})
		}
		return nil
	})
}

func (ss *SQLiteStorage) UpdateOperatingSystem(ctx context.Context, os *model.OperatingSystem) error {
	os.EOLDate = optional(os.EOLDate)

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE operating_systems
			SET name = ?, version = ?, vendor = ?, eol_date = ?, updated_at = ?
			WHERE id = ?
		`, os.Name, os.Version, os.Vendor, nullString(os.EOLDate), now(), os.ID)
		if err != nil {
			return writeError(ctx, tx, operatingSystemsTable, "updating", err, nil)
		}
		if err := updated(res, operatingSystemsTable); err != nil {
			return err
		}
		stored, err := getOperatingSystem(ctx, tx, os.ID)
		if err != nil {
			return err
		}
		*os = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeleteOperatingSystem(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, operatingSystemsTable, id)
}

// ListOperatingSystemHosts returns the hosts running an operating system.
func (ss *SQLiteStorage) ListOperatingSystemHosts(ctx context.Context, id string, page model.Page) ([]model.Host, error) {
	page = page.Normalize()
	hosts, err := listChildren(ctx, ss, operatingSystemsTable, id, scanHost,
		`SELECT `+hostColumns+` FROM hosts WHERE os_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		id, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing operating system hosts: %w", err)
	}
	return hosts, nil
}
