package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const personColumns = `id, name, email, role, department, phone, created_at, updated_at`

func scanPerson(row rowScanner) (model.Person, error) {
	var p model.Person
	var phone sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.Department, &phone, &p.CreatedAt, &p.UpdatedAt)
	p.Phone = fromNull(phone)
	return p, err
}

// ListPersons returns one page of people.
func (ss *SQLiteStorage) ListPersons(ctx context.Context, page model.Page) ([]model.Person, error) {
	page = page.Normalize()
	persons, err := queryRows(ctx, ss.db, scanPerson,
		`SELECT `+personColumns+` FROM persons ORDER BY rowid LIMIT ? OFFSET ?`,
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	return persons, nil
}

// GetPerson retrieves a person by ID.
func (ss *SQLiteStorage) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	return getPerson(ctx, ss.db, id)
}

func getPerson(ctx context.Context, q querier, id string) (*model.Person, error) {
	return getRow(ctx, q, personsTable, scanPerson,
		`SELECT `+personColumns+` FROM persons WHERE id = ?`, id)
}

// CreatePerson inserts p. The email must be unused across the store.
func (ss *SQLiteStorage) CreatePerson(ctx context.Context, p *model.Person) error {
	if p.ID == "" {
		p.ID = generateID()
	}
	p.Phone = optional(p.Phone)
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO persons (id, name, email, role, department, phone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Email, p.Role, p.Department, nullString(p.Phone), p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return writeError(ctx, tx, personsTable, "creating", err,
				map[string]string{"id": p.ID, "email": p.Email})
		}
		return nil
	})
}

func (ss *SQLiteStorage) UpdatePerson(ctx context.Context, p *model.Person) error {
	p.Phone = optional(p.Phone)

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE persons
			SET name = ?, email = ?, role = ?, department = ?, phone = ?, updated_at = ?
			WHERE id = ?
		`, p.Name, p.Email, p.Role, p.Department, nullString(p.Phone), now(), p.ID)
		if err != nil {
			return writeError(ctx, tx, personsTable, "updating", err, map[string]string{"email": p.Email})
		}
		if err := updated(res, personsTable); err != nil {
			return err
		}
		stored, err := getPerson(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		*p = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeletePerson(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, personsTable, id)
}

// ListPersonAssignments returns the assignments held by a person.
func (ss *SQLiteStorage) ListPersonAssignments(ctx context.Context, id string, page model.Page) ([]model.Assignment, error) {
	page = page.Normalize()
	list, err := listChildren(ctx, ss, personsTable, id, scanAssignment,
		`SELECT `+assignmentColumns+` FROM assignments WHERE person_id = ? ORDER BY rowid LIMIT ? OFFSET ?`,
		id, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("listing person assignments: %w", err)
	}
	return list, nil
}
