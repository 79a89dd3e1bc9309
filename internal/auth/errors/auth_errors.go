package autherrors

import (
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrAccountNotActivated = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials or account not activated",
		http.StatusUnauthorized,
	)

	ErrPasswordNotSet = apperror.New(
		apperror.CodeUnauthorized,
		"Account password not set. Please complete activation.",
		http.StatusUnauthorized,
	)

	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrTokenRevoked = apperror.New(
		apperror.CodeUnauthorized,
		"Token has been invalidated",
		http.StatusUnauthorized,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Employee not found or inactive",
		http.StatusUnauthorized,
	)

	ErrAccountDeactivated = apperror.New(
		apperror.CodeForbidden,
		"Employee account is deactivated",
		http.StatusForbidden,
	)

	ErrAccountNotOnboarded = apperror.New(
		apperror.CodeForbidden,
		"Employee account is not activated",
		http.StatusForbidden,
	)
)
