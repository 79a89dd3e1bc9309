package project

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	projecterrors "go-timetrack/internal/project/errors"
	"go-timetrack/internal/shared/apperror"
)

// mapRepoError translates driver-level failures into domain sentinels.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_projects_name" {
			return projecterrors.ErrProjectNameTaken
		}
		return apperror.Wrap(err, apperror.CodeConflict, "project conflicts with existing data", 409)
	}
	return apperror.Wrap(err, apperror.CodeInternalError, "project storage failure", 500)
}
