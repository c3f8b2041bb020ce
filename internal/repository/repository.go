package repository

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// uniqueViolation is the Postgres error code raised when an INSERT or UPDATE
// breaks a UNIQUE constraint. The constraints are the real enforcement point
// for the uniqueness invariants; service-level pre-checks only exist to give
// friendlier messages.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translateUnique converts a constraint race into a Conflict carrying the
// database's message, leaving other errors untouched.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, pqErr.Message)
	}
	return err
}

// translateConstraint additionally maps broken references to a validation
// error so a dangling group_id or contact_id surfaces as a 400, not a 500.
func translateConstraint(err error) error {
	if translated := translateUnique(err); translated != err {
		return translated
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, pqErr.Message)
	}
	return err
}
