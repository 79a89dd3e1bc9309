package timeentry

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-timetrack/internal/shared/apperror"
	timeentryerrors "go-timetrack/internal/timeentry/errors"
)

// mapRepoError translates driver-level failures into domain sentinels. The
// partial unique index is the backstop for the one-active-session rule, so a
// duplicate-key on it means another clock-in won the race.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrTimeEntryNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_time_entries_active_employee" {
				return timeentryerrors.ErrActiveEntryExists
			}
			return apperror.Wrap(err, apperror.CodeConflict, "time entry conflicts with existing data", 409)
		case "23503":
			return timeentryerrors.ErrTaskMissing
		}
	}
	return apperror.Wrap(err, apperror.CodeInternalError, "time entry storage failure", 500)
}
