package videotasks

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitTask() echo.HandlerFunc
	GetTaskByID() echo.HandlerFunc
	WaitForTask() echo.HandlerFunc
	ListTasks() echo.HandlerFunc
	DeleteTask() echo.HandlerFunc
}
