package timeentry

import (
	"net/http"
	"strconv"

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
	raw := c.GetString("employee_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), employeeID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) Stop(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Stop(c.Request.Context(), employeeID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))

	resp, err := h.service.GetAll(c.Request.Context(), ListQuery{
		EmployeeID: c.Query("employee_id"),
		TaskID:     c.Query("task_id"),
		ActiveOnly: activeOnly,
		Skip:       skip,
		Limit:      limit,
	})
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

func (h *Handler) Update(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), employeeID, c.Param("id"), req)
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
