package projecterrors

import (
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)

	ErrProjectNameTaken = apperror.New(
		apperror.CodeConflict,
		"Project with this name already exists",
		http.StatusConflict,
	)

	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusUnprocessableEntity,
	)
)
