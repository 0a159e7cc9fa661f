package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintKind maps a driver error to ErrConflict, ErrReference or
// ErrInvalidValue. It returns nil for anything else.
func constraintKind(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrConflict
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrReference
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ErrInvalidValue
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrConflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrReference
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return ErrInvalidValue
	}
	return nil
}

// constraintColumn extracts the column from messages such as
// "constraint failed: UNIQUE constraint failed: persons.email (2067)" or
// "CHECK constraint failed: status IN ('online')". The driver may prefix its
// own "constraint failed: ", so the last occurrence is the one that matters.
func constraintColumn(err error) string {
	const marker = "constraint failed: "
	msg := err.Error()
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	rest := strings.TrimSpace(msg[i+len(marker):])
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !(r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if end >= 0 {
		rest = rest[:end]
	}
	if j := strings.LastIndex(rest, "."); j >= 0 {
		return rest[j+1:]
	}
	return rest
}

// reference is a foreign key value carried by a row being written.
type reference struct {
	field string
	to    *table
	id    string
}

// writeError turns a failed INSERT or UPDATE into a ConstraintError naming
// the offending field. Non-constraint errors are wrapped and returned.
func writeError(ctx context.Context, q querier, t *table, op string, err error, values map[string]string, refs ...reference) error {
	kind := constraintKind(err)
	if kind == nil {
		return fmt.Errorf("%s %s: %w", op, t.entity, err)
	}

	switch kind {
	case ErrConflict:
		field := constraintColumn(err)
		if field == "" {
			field = "id"
		}
		return &ConstraintError{
			Kind:    ErrConflict,
			Field:   field,
			Message: fmt.Sprintf("%s with %s %q already exists", t.entity, field, values[field]),
			Err:     err,
		}

	case ErrReference:
		for _, ref := range refs {
			if ref.id == "" {
				continue
			}
			ok, existsErr := exists(ctx, q, ref.to, ref.id)
			if existsErr != nil {
				return fmt.Errorf("%s %s: %w", op, t.entity, existsErr)
			}
			if !ok {
				return &ConstraintError{
					Kind:    ErrReference,
					Field:   ref.field,
					Message: fmt.Sprintf("%s references %s %q which does not exist", ref.field, ref.to.entity, ref.id),
					Err:     err,
				}
			}
		}
		return &ConstraintError{
			Kind:    ErrReference,
			Message: fmt.Sprintf("%s references a record that does not exist", t.entity),
			Err:     err,
		}

	default:
		field := constraintColumn(err)
		return &ConstraintError{
			Kind:    ErrInvalidValue,
			Field:   field,
			Message: fmt.Sprintf("%s has an invalid value for %s", t.entity, field),
			Err:     err,
		}
	}
}

// deleteError explains why a DELETE was blocked by child rows.
func deleteError(ctx context.Context, q querier, t *table, id string, err error) error {
	if constraintKind(err) != ErrReference {
		return fmt.Errorf("deleting %s: %w", t.entity, err)
	}

	var held []string
	for _, dep := range t.dependents {
		var n int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", dep.table, dep.column)
		if countErr := q.QueryRowContext(ctx, query, id).Scan(&n); countErr != nil {
			return fmt.Errorf("deleting %s: %w", t.entity, countErr)
		}
		if n > 0 {
			held = append(held, fmt.Sprintf("%d %s", n, dep.label))
		}
	}

	msg := fmt.Sprintf("%s %q is still referenced", t.entity, id)
	if len(held) > 0 {
		msg += " by " + strings.Join(held, ", ")
	}
	return &ConstraintError{Kind: ErrReference, Message: msg, Err: err}
}
