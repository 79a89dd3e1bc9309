package task

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-timetrack/internal/shared/apperror"
	taskerrors "go-timetrack/internal/task/errors"
)

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign key, the referenced project is gone
			return taskerrors.ErrProjectMissing
		case "23505":
			return apperror.Wrap(err, apperror.CodeConflict, "task conflicts with existing data", 409)
		}
	}
	return apperror.Wrap(err, apperror.CodeInternalError, "task storage failure", 500)
}
