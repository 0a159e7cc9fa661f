package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const ipAddressColumns = `id, address, host_id, type, allocation, created_at, updated_at`

func scanIPAddress(row rowScanner) (model.IPAddress, error) {
	var ip model.IPAddress
	var hostID sql.NullString
	err := row.Scan(&ip.ID, &ip.Address, &hostID, &ip.Type, &ip.Allocation, &ip.CreatedAt, &ip.UpdatedAt)
	ip.HostID = fromNull(hostID)
	return ip, err
}

// ListIPAddresses returns one page of IP addresses.
func (ss *SQLiteStorage) ListIPAddresses(ctx context.Context, page model.Page) ([]model.IPAddress, error) {
	page = page.Normalize()
	ips, err := queryRows(ctx, ss.db, scanIPAddress,
		`SELECT `+ipAddressColumns+` FROM ip_addresses ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing ip addresses: %w", err)
	}
	return ips, nil
}

// GetIPAddress retrieves an IP address record by ID.
func (ss *SQLiteStorage) GetIPAddress(ctx context.Context, id string) (*model.IPAddress, error) {
	return getIPAddress(ctx, ss.db, id)
}

func getIPAddress(ctx context.Context, q querier, id string) (*model.IPAddress, error) {
	return getRow(ctx, q, ipAddressesTable, scanIPAddress,
		`SELECT `+ipAddressColumns+` FROM ip_addresses WHERE id = ?`, id)
}

// CreateIPAddress inserts ip. The address must be unused across the store.
func (ss *SQLiteStorage) CreateIPAddress(ctx context.Context, ip *model.IPAddress) error {
	if ip.ID == "" {
		ip.ID = generateID()
	}
	ip.HostID = optional(ip.HostID)
	ip.CreatedAt = now()
	ip.UpdatedAt = ip.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ip_addresses (id, address, host_id, type, allocation, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, ip.ID, ip.Address, nullString(ip.HostID), ip.Type, ip.Allocation, ip.CreatedAt, ip.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, ipAddressesTable, "creating", err,
				map[string]string{"id": ip.ID, "address": ip.Address},
				reference{"host_id", hostsTable, model.Deref(ip.HostID)})
		}
		return nil
	})
}

func (ss *SQLiteStorage) UpdateIPAddress(ctx context.Context, ip *model.IPAddress) error {
	ip.HostID = optional(ip.HostID)

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE ip_addresses
			SET address = ?, host_id = ?, type = ?, allocation = ?, updated_at = ?
			WHERE id = ?
		`, ip.Address, nullString(ip.HostID), ip.Type, ip.Allocation, now(), ip.ID)
		if err != nil {
			return writeError(ctx, tx, ipAddressesTable, "updating", err,
				map[string]string{"address": ip.Address},
				reference{"host_id", hostsTable, model.Deref(ip.HostID)})
		}
		if err := updated(res, ipAddressesTable); err != nil {
			return err
		}
		stored, err := getIPAddress(ctx, tx, ip.ID)
		if err != nil {
			return err
		}
		*ip = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeleteIPAddress(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, ipAddressesTable, id)
}
