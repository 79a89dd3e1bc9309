package project

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes project CRUD under the plural prefix and the
// product-compatible singular alias. All routes require a session.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc) {
	for _, prefix := range []string{"/projects", "/project"} {
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
