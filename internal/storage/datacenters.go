package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const datacenterColumns = `id, name, location, description, created_at, updated_at`

func scanDatacenter(row rowScanner) (model.Datacenter, error) {
	var dc model.Datacenter
	var description sql.NullString
	err := row.Scan(&dc.ID, &dc.Name, &dc.Location, &description, &dc.CreatedAt, &dc.UpdatedAt)
	dc.Description = fromNull(description)
	return dc, err
}

// ListDatacenters returns one page of datacenters in insertion order.
func (ss *SQLiteStorage) ListDatacenters(ctx context.Context, page model.Page) ([]model.Datacenter, error) {
	page = page.Normalize()
	dcs, err := queryRows(ctx, ss.db, scanDatacenter,
		`SELECT `+datacenterColumns+` FROM datacenters ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing datacenters: %w", err)
	}
	return dcs, nil
}

// GetDatacenter retrieves a datacenter by ID.
func (ss *SQLiteStorage) GetDatacenter(ctx context.Context, id string) (*model.Datacenter, error) {
	return getDatacenter(ctx, ss.db, id)
}

func getDatacenter(ctx context.Context, q querier, id string) (*model.Datacenter, error) {
	return getRow(ctx, q, datacentersTable, scanDatacenter,
		`SELECT `+datacenterColumns+` FROM datacenters WHERE id = ?`, id)
}

// CreateDatacenter inserts dc, assigning an ID when empty and setting timestamps.
func (ss *SQLiteStorage) CreateDatacenter(ctx context.Context, dc *model.Datacenter) error {
	if dc.ID == "" {
		dc.ID = generateID()
	}
	dc.Description = optional(dc.Description)
	dc.CreatedAt = now()
	dc.UpdatedAt = dc.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO datacenters (id, name, location, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, dc.ID, dc.Name, dc.Location, nullString(dc.Description), dc.CreatedAt, dc.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, datacentersTable, "creating", err, map[string]string{"id": dc.ID})
		}
		return nil
	})
}

// UpdateDatacenter replaces every writable field of dc and refreshes
// updated_at. On success dc holds the stored record.
func (ss *SQLiteStorage) UpdateDatacenter(ctx context.Context, dc *model.Datacenter) error {
	dc.Description = optional(dc.Description)

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE datacenters
			SET name = ?, location = ?, description = ?, updated_at = ?
			WHERE id = ?
		`, dc.Name, dc.Location, nullString(dc.Description), now(), dc.ID)
		if err != nil {
			return writeError(ctx, tx, datacentersTable, "updating", err, nil)
		}
		if err := updated(res, datacentersTable); err != nil {
			return err
		}
		stored, err := getDatacenter(ctx, tx, dc.ID)
		if err != nil {
			return err
		}
		*dc = *stored
		return nil
	})
}

// DeleteDatacenter removes a datacenter. It fails with ErrReference while
// servers still belong to it.
func (ss *SQLiteStorage) DeleteDatacenter(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, datacentersTable, id)
}

// ListDatacenterServers returns the servers located in a datacenter.
func (ss *SQLiteStorage) ListDatacenterServers(ctx context.Context, id string, page model.Page) ([]model.Server, error) {
	page = page.Normalize()
	servers, err := listChildren(ctx, ss, datacentersTable, id, scanServer,
		`SELECT `+serverColumns+` FROM servers WHERE datacenter_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		id, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing datacenter servers: %w", err)
	}
	return servers, nil
}
