package employee

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes the employee CRUD under the plural prefix and the
// product-compatible singular alias. Activation is the only unauthenticated
// route: the activation token is the credential.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc) {
	for _, prefix := range []string{"/employees", "/employee"} {
		g := r.Group(prefix)
		g.POST("/activate", h.Activate)

		g.Use(authn)
		g.GET("/me", h.GetMe)
		g.POST("", h.Create)
		g.GET("", h.GetAll)
		g.GET("/:id", h.GetByID)
		g.PATCH("/:id", h.Update)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
