package screenshoterrors

import (
	"fmt"
	"net/http"

	"go-timetrack/internal/shared/apperror"
)

var (
	ErrScreenshotNotFound = apperror.New(
		apperror.CodeNotFound,
		"Screenshot not found",
		http.StatusNotFound,
	)

	ErrInvalidScreenshotID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid screenshot ID",
		http.StatusUnprocessableEntity,
	)

	ErrMissingFile = apperror.New(
		apperror.CodeInvalidInput,
		"Screenshot file is required",
		http.StatusUnprocessableEntity,
	)

	ErrNotAnImage = apperror.New(
		apperror.CodeInvalidInput,
		"Uploaded file must be an image",
		http.StatusUnprocessableEntity,
	)

	ErrNotEntryOwner = apperror.New(
		apperror.CodeInvalidInput,
		"Screenshots can only be attached to your own time entries",
		http.StatusUnprocessableEntity,
	)

	ErrEntryMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Time entry does not exist",
		http.StatusUnprocessableEntity,
	)

	ErrEntryClosed = apperror.New(
		apperror.CodeInvalidState,
		"Time entry is already clocked out",
		http.StatusUnprocessableEntity,
	)

	ErrUploadFailed = apperror.New(
		apperror.CodeInternalError,
		"Screenshot storage failed",
		http.StatusInternalServerError,
	)
)

func ErrFileTooLarge(maxBytes int64) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeInvalidInput,
		http.StatusUnprocessableEntity,
		"Screenshot exceeds the %d byte limit", maxBytes,
	)
}

// ErrBadFormValue reports a malformed multipart field.
func ErrBadFormValue(field string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Invalid value for %s", field),
		http.StatusUnprocessableEntity,
	)
}
