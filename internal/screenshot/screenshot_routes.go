package screenshot

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes screenshots under the plural prefix and the
// product-compatible singular alias. Uploads run behind the idempotency
// middleware so a retried capture does not store the image twice.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn, activated, idempotent gin.HandlerFunc) {
	for _, prefix := range []string{"/screenshots", "/screenshot"} {
		g := r.Group(prefix)
		g.Use(authn)
		g.POST("", activated, idempotent, h.Upload)
		g.GET("", h.GetAll)
		g.GET("/employee/:employee_id", h.ListByEmployee)
		g.GET("/time_entry/:id", h.ListByTimeEntry)
		g.GET("/:id", h.GetByID)
		g.DELETE("/:id", h.Delete)
	}
}
