package timeentry

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes time entries under the REST prefix and the
// product-compatible tracking alias. Clock-in gates on an activated
// account: tracking is the one surface an onboarding employee must not
// reach before setting a password.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn, activated gin.HandlerFunc) {
	for _, prefix := range []string{"/time_entries", "/time-tracking"} {
		g := r.Group(prefix)
		g.Use(authn)
		g.POST("", activated, h.ClockIn)
		g.POST("/:id/stop", activated, h.Stop)
		g.GET("", h.GetAll)
		g.GET("/:id", h.GetByID)
		g.PATCH("/:id", h.Update)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
