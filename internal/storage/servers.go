package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const serverColumns = `id, hostname, datacenter_id, model, serial_number, status, created_at, updated_at`

func scanServer(row rowScanner) (model.Server, error) {
	var s model.Server
	err := row.Scan(&s.ID, &s.Hostname, &s.DatacenterID, &s.Model, &s.SerialNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListServers returns one page of servers.
func (ss *SQLiteStorage) ListServers(ctx context.Context, page model.Page) ([]model.Server, error) {
	page = page.Normalize()
	servers, err := queryRows(ctx, ss.db, scanServer,
		`SELECT `+serverColumns+` FROM servers ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}
	return servers, nil
}

// GetServer retrieves a server by ID.
func (ss *SQLiteStorage) GetServer(ctx context.Context, id string) (*model.Server, error) {
	return getServer(ctx, ss.db, id)
}

func getServer(ctx context.Context, q querier, id string) (*model.Server, error) {
	return getRow(ctx, q, serversTable, scanServer,
		`SELECT `+serverColumns+` FROM servers WHERE id = ?`, id)
}

// CreateServer inserts srv. datacenter_id must name an existing datacenter.
func (ss *SQLiteStorage) CreateServer(ctx context.Context, srv *model.Server) error {
	if srv.ID == "" {
		srv.ID = generateID()
	}
	srv.CreatedAt = now()
	srv.UpdatedAt = srv.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO servers (id, hostname, datacenter_id, model, serial_number, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, srv.ID, srv.Hostname, srv.DatacenterID, srv.Model, srv.SerialNumber, srv.Status, srv.CreatedAt, srv.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, serversTable, "creating", err,
				map[string]string{"id": srv.ID},
				reference{"datacenter_id", datacentersTable, srv.DatacenterID})
		}
		return nil
	})
}

func (ss *SQLiteStorage) UpdateServer(ctx context.Context, srv *model.Server) error {
	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE servers
			SET hostname = ?, datacenter_id = ?, model = ?, serial_number = ?, status = ?, updated_at = ?
			WHERE id = ?
		`, srv.Hostname, srv.DatacenterID, srv.Model, srv.SerialNumber, srv.Status, now(), srv.ID)
		if err != nil {
			return writeError(ctx, tx, serversTable, "updating", err, nil,
				reference{"datacenter_id", datacentersTable, srv.DatacenterID})
		}
		if err := updated(res, serversTable); err != nil {
			return err
		}
		stored, err := getServer(ctx, tx, srv.ID)
		if err != nil {
			return err
		}
		*srv = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeleteServer(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, serversTable, id)
}

// ListServerHosts returns the hosts running on a server.
func (ss *SQLiteStorage) ListServerHosts(ctx context.Context, id string, page model.Page) ([]model.Host, error) {
	page = page.Normalize()
	hosts, err := listChildren(ctx, ss, serversTable, id, scanHost,
		`SELECT `+hostColumns+` FROM hosts WHERE server_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		id, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing server hosts: %w", err)
	}
	return hosts, nil
}
