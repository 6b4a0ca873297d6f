package sqlite

import (
	"fmt"
	"strings"

	"github.com/msomdec/folio-cms/internal/domain"
)

// uniqueViolation reports whether err is a SQLite unique constraint violation
// and, if so, the offending column name.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := err.Error()
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	// e.g. "UNIQUE constraint failed: users.email (2067)"
	target := msg[i+len(marker):]
	if end := strings.IndexAny(target, " ,"); end >= 0 {
		target = target[:end]
	}
	if dot := strings.LastIndex(target, "."); dot >= 0 {
		target = target[dot+1:]
	}
	return target, true
}

// translateWriteError maps constraint violations on insert or update to
// domain.ErrConflict and wraps everything else with op.
func translateWriteError(err error, kind, op string) error {
	if column, ok := uniqueViolation(err); ok {
		return fmt.Errorf("%w: %s with this %s already exists", domain.ErrConflict, kind, column)
	}
	return fmt.Errorf("%s: %w", op, err)
}
