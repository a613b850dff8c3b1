package http

import (
	"github.com/clipforge/clipforge-backend/internal/middleware"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/labstack/echo/v4"
)

func MapVideoTaskRoutes(taskGroup *echo.Group, h videotasks.Handler, mw *middleware.MiddlewareManager) {
	taskGroup.Use(mw.AuthJWTMiddleware())
	taskGroup.POST("", h.SubmitTask())
	taskGroup.GET("", h.ListTasks())
	taskGroup.GET("/:task_id", h.GetTaskByID())
	taskGroup.POST("/:task_id/wait", h.WaitForTask())
	taskGroup.DELETE("/:task_id", h.DeleteTask())
}
