package timeentryerrors

import (
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)

	ErrInvalidTimeEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time entry ID",
		http.StatusUnprocessableEntity,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Time entry belongs to another employee",
		http.StatusForbidden,
	)

	ErrAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"Time entry is already clocked out",
		http.StatusUnprocessableEntity,
	)

	ErrActiveEntryExists = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active time entry",
		http.StatusConflict,
	)

	ErrTaskMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Task does not exist",
		http.StatusUnprocessableEntity,
	)

	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidState,
		"End time must be after start time",
		http.StatusUnprocessableEntity,
	)
)
