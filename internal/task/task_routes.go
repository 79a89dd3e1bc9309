package task

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes task CRUD under the plural prefix and the
// product-compatible singular alias.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc) {
	for _, prefix := range []string{"/tasks", "/task"} {
		g := r.Group(prefix)
		g.Use(authn)
		g.POST("", h.Create)
		g.GET("", h.GetAll)
		g.GET("/:id", h.GetByID)
		g.PATCH("/:id", h.Update)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
