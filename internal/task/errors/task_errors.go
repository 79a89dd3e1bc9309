package taskerrors

import (
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)

	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task ID",
		http.StatusUnprocessableEntity,
	)

	// ErrProjectMissing rejects tasks pointing at a project that does not
	// exist. This is a client input problem, not a missing-resource lookup.
	ErrProjectMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Project does not exist",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidProjectFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID filter",
		http.StatusUnprocessableEntity,
	)
)
