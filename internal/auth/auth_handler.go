package auth

import (
	"net/http"

	"go-timetrack/internal/employee"
	"go-timetrack/internal/shared/apperror"
	"go-timetrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login is the OAuth2-compatible token endpoint: form-encoded email and
// password in, bearer token out.
func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" {
		response.FromError(c, apperror.RequiredField("Email"))
		return
	}
	if password == "" {
		response.FromError(c, apperror.RequiredField("Password"))
		return
	}

	accessToken, err := h.service.Login(c.Request.Context(), email, password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	v, ok := c.Get("current_employee")
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}
	empl, ok := v.(*employee.Employee)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), empl.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, LogoutResponse{Message: "Successfully logged out"})
}
