package http

import (
	"github.com/clipforge/clipforge-backend/internal/auth"
	"github.com/clipforge/clipforge-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapAuthRoutes(authGroup *echo.Group, h auth.Handler, mw *middleware.MiddlewareManager) {
	authGroup.POST("/register", h.Register())
	authGroup.POST("/login", h.Login())
	authGroup.POST("/logout", h.Logout())
	authGroup.GET("/me", h.GetMe(), mw.AuthJWTMiddleware())
}
