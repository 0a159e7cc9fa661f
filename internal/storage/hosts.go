package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const hostColumns = `id, hostname, server_id, os_id, type, status, cpu, memory_gb, created_at, updated_at`

func scanHost(row rowScanner) (model.Host, error) {
	var h model.Host
	var osID sql.NullString
	err := row.Scan(&h.ID, &h.Hostname, &h.ServerID, &osID, &h.Type, &h.Status, &h.CPU, &h.MemoryGB, &h.CreatedAt, &h.UpdatedAt)
	h.OSID = fromNull(osID)
	return h, err
}

func hostReferences(h *model.Host) []reference {
	return []reference{
		{"server_id", serversTable, h.ServerID},
		{"os_id", operatingSystemsTable, model.Deref(h.OSID)},
	}
}

// ListHosts returns one page of hosts.
func (ss *SQLiteStorage) ListHosts(ctx context.Context, page model.Page) ([]model.Host, error) {
	page = page.Normalize()
	hosts, err := queryRows(ctx, ss.db, scanHost,
		`SELECT `+hostColumns+` FROM hosts ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing hosts: %w", err)
	}
	return hosts, nil
}

// GetHost retrieves a host by ID.
func (ss *SQLiteStorage) GetHost(ctx context.Context, id string) (*model.Host, error) {
	return getHost(ctx, ss.db, id)
}

func getHost(ctx context.Context, q querier, id string) (*model.Host, error) {
	return getRow(ctx, q, hostsTable, scanHost,
		`SELECT `+hostColumns+` FROM hosts WHERE id = ?`, id)
}

// CreateHost inserts h. server_id must exist; os_id, when set, must exist.
func (ss *SQLiteStorage) CreateHost(ctx context.Context, h *model.Host) error {
	if h.ID == "" {
		h.ID = generateID()
	}
	h.OSID = optional(h.OSID)
	h.CreatedAt = now()
	h.UpdatedAt = h.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hosts (id, hostname, server_id, os_id, type, status, cpu, memory_gb, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, h.ID, h.Hostname, h.ServerID, nullString(h.OSID), h.Type, h.Status, h.CPU, h.MemoryGB, h.CreatedAt, h.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, hostsTable, "creating", err,
				map[string]string{"id": h.ID}, hostReferences(h)...)
		}
		return nil
	})
}

func (ss *SQLiteStorage) UpdateHost(ctx context.Context, h *model.Host) error {
	h.OSID = optional(h.OSID)

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE hosts
			SET hostname = ?, server_id = ?, os_id = ?, type = ?, status = ?, cpu = ?, memory_gb = ?, updated_at = ?
			WHERE id = ?
		`, h.Hostname, h.ServerID, nullString(h.OSID), h.Type, h.Status, h.CPU, h.MemoryGB, now(), h.ID)
		if err != nil {
			return writeError(ctx, tx, hostsTable, "updating", err, nil, hostReferences(h)...)
		}
		if err := updated(res, hostsTable); err != nil {
			return err
		}
		stored, err := getHost(ctx, tx, h.ID)
		if err != nil {
			return err
		}
		*h = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeleteHost(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, hostsTable, id)
}

// ListHostIPAddresses returns the addresses bound to a host.
func (ss *SQLiteStorage) ListHostIPAddresses(ctx context.Context, id string, page model.Page) ([]model.IPAddress, error) {
	page = page.Normalize()
	ips, err := listChildren(ctx, ss, hostsTable, id, scanIPAddress,
		`SELECT `+ipAddressColumns+` FROM ip_addresses WHERE host_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		id, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing host ip addresses: %w", err)
	}
	return ips, nil
}
