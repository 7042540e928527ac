package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// lookupError maps a missing row to NotFound and anything else to Internal.
func lookupError(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return internalError(err, failure)
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
