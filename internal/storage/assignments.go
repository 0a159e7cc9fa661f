package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

const assignmentColumns = `id, person_id, entity_type, entity_id, role, created_at`

func scanAssignment(row rowScanner) (model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(&a.ID, &a.PersonID, &a.EntityType, &a.EntityID, &a.Role, &a.CreatedAt)
	return a, err
}

// ListAssignments returns one page of assignments, optionally narrowed to
// one entity type and/or entity ID.
func (ss *SQLiteStorage) ListAssignments(ctx context.Context, filter model.AssignmentFilter, page model.Page) ([]model.Assignment, error) {
	page = page.Normalize()

	var where []string
	var args []any
	if filter.EntityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		where = append(where, "entity_id = ?")
		args = append(args, filter.EntityID)
	}

	query := `SELECT ` + assignmentColumns + ` FROM assignments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Skip)

	list, err := queryRows(ctx, ss.db, scanAssignment, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return list, nil
}

// GetAssignment retrieves an assignment by ID.
func (ss *SQLiteStorage) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	return getAssignment(ctx, ss.db, id)
}

func getAssignment(ctx context.Context, q querier, id string) (*model.Assignment, error) {
	return getRow(ctx, q, assignmentsTable, scanAssignment,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
}

// CreateAssignment inserts a. Only person_id is checked; the
// (entity_type, entity_id) target is stored without resolving it.
func (ss *SQLiteStorage) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	if a.ID == "" {
		a.ID = generateID()
	}
	a.CreatedAt = now()

	return ss.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assignments (id, person_id, entity_type, entity_id, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, a.ID, a.PersonID, a.EntityType, a.EntityID, a.Role, a.CreatedAt)
		if err != nil {
			return writeError(ctx, tx, assignmentsTable, "creating", err,
				map[string]string{"id": a.ID},
				reference{"person_id", personsTable, a.PersonID})
		}
		return nil
	})
}

// UpdateAssignment replaces every writable field. Assignments carry no
// updated_at, so created_at is the only timestamp returned.
func (ss *SQLiteStorage) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	return ss.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE assignments
			SET person_id = ?, entity_type = ?, entity_id = ?, role = ?
			WHERE id = ?
		`, a.PersonID, a.EntityType, a.EntityID, a.Role, a.ID)
		if err != nil {
			return writeError(ctx, tx, assignmentsTable, "updating", err, nil,
				reference{"person_id", personsTable, a.PersonID})
		}
		if err := updated(res, assignmentsTable); err != nil {
			return err
		}
		stored, err := getAssignment(ctx, tx, a.ID)
		if err != nil {
			return err
		}
		*a = *stored
		return nil
	})
}

func (ss *SQLiteStorage) DeleteAssignment(ctx context.Context, id string) error {
	return ss.deleteRow(ctx, assignmentsTable, id)
}
