package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn, loginLimit gin.HandlerFunc) {
	g := r.Group("/auth")
	{
		g.POST("/token", loginLimit, h.Login)
		g.POST("/logout", authn, h.Logout)
	}
}
