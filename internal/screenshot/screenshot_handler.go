package screenshot

import (
	"io"
	"net/http"
	"strconv"
	"time"

	screenshoterrors "go-timetrack/internal/screenshot/errors"
	"go-timetrack/internal/shared/apperror"
	"go-timetrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("employee_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func optionalForm(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok && v != "" {
		return &v
	}
	return nil
}

// Upload accepts a multipart form: the image under "image" plus the capture
// metadata fields the desktop client reports.
func (h *Handler) Upload(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.FromError(c, screenshoterrors.ErrMissingFile)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.FromError(c, screenshoterrors.ErrMissingFile)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.FromError(c, apperror.ErrInternal)
		return
	}

	permission := true
	if v, ok := c.GetPostForm("permission"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.FromError(c, screenshoterrors.ErrBadFormValue("permission"))
			return
		}
		permission = parsed
	}

	req := UploadRequest{
		TimeEntryID: c.PostForm("time_entry_id"),
		EmployeeID:  c.PostForm("employee_id"),
		Permission:  permission,
		IPAddress:   optionalForm(c, "ip"),
		MACAddress:  optionalForm(c, "mac"),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	resp, err := h.service.Upload(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp)
}

// listQueryFromContext builds a ListQuery from pagination and date-range
// query parameters. A nil return means an error response was already written.
func listQueryFromContext(c *gin.Context) *ListQuery {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	q := ListQuery{Skip: skip, Limit: limit}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.FromError(c, screenshoterrors.ErrBadFormValue("from"))
			return nil
		}
		q.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.FromError(c, screenshoterrors.ErrBadFormValue("to"))
			return nil
		}
		q.To = &t
	}
	return &q
}

func (h *Handler) GetAll(c *gin.Context) {
	q := listQueryFromContext(c)
	if q == nil {
		return
	}
	q.EmployeeID = c.Query("employee_id")
	q.TimeEntryID = c.Query("time_entry_id")

	resp, err := h.service.GetAll(c.Request.Context(), *q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// ListByEmployee returns the screenshots taken for one employee, with an
// optional captured-at date range.
func (h *Handler) ListByEmployee(c *gin.Context) {
	q := listQueryFromContext(c)
	if q == nil {
		return
	}
	q.EmployeeID = c.Param("employee_id")

	resp, err := h.service.GetAll(c.Request.Context(), *q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// ListByTimeEntry returns the screenshots attached to one time entry.
func (h *Handler) ListByTimeEntry(c *gin.Context) {
	q := listQueryFromContext(c)
	if q == nil {
		return
	}
	q.TimeEntryID = c.Param("id")

	resp, err := h.service.GetAll(c.Request.Context(), *q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
