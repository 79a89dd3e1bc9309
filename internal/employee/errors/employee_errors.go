package employeeerrors

import (
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email is already taken",
		http.StatusConflict,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidActivationToken = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or already used activation token",
		http.StatusUnprocessableEntity,
	)
)

func ErrWeakPassword(reason string) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeInvalidInput,
		http.StatusUnprocessableEntity,
		"Password validation failed: %s", reason,
	)
}
