package middleware

import (
	"strings"

	"go-timetrack/internal/auth"
	autherrors "go-timetrack/internal/auth/errors"
	"go-timetrack/internal/employee"
	"go-timetrack/internal/shared/contextutil"
	"go-timetrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the bearer token to a live employee and stores the
// identity on both the gin context and the request context.
func Authenticate(authService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.AbortError(c, autherrors.ErrMissingToken)
			return
		}

		empl, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set("current_employee", empl)
		c.Set("employee_id", empl.ID.String())

		ctx := contextutil.WithEmployeeID(c.Request.Context(), empl.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireActivated distinguishes "token valid but account not usable" from
// "token invalid": deactivated or un-onboarded accounts get 403, not 401.
func RequireActivated() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("current_employee")
		if !ok {
			response.AbortError(c, autherrors.ErrMissingToken)
			return
		}
		empl, ok := v.(*employee.Employee)
		if !ok {
			response.AbortError(c, autherrors.ErrMissingToken)
			return
		}

		if !empl.IsActive {
			response.AbortError(c, autherrors.ErrAccountDeactivated)
			return
		}
		if !empl.IsActivated {
			response.AbortError(c, autherrors.ErrAccountNotOnboarded)
			return
		}

		c.Next()
	}
}
