package http

import (
	"errors"
	"net/http"

	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type videoTaskHandler struct {
	taskUC videotasks.UseCase
}

func NewVideoTaskHandler(taskUC videotasks.UseCase) videotasks.Handler {
	return &videoTaskHandler{
		taskUC: taskUC,
	}
}

func (h *videoTaskHandler) SubmitTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.SubmitTaskInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		task, err := h.taskUC.SubmitTask(c.Request().Context(), input)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func (h *videoTaskHandler) GetTaskByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		taskID, err := uuid.Parse(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid task id"})
		}
		task, err := h.taskUC.GetTask(c.Request().Context(), taskID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func (h *videoTaskHandler) WaitForTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		taskID, err := uuid.Parse(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid task id"})
		}
		opts := &models.WaitOptions{}
		if err := c.Bind(opts); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		task, err := h.taskUC.WaitForTask(c.Request().Context(), taskID, opts)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func (h *videoTaskHandler) ListTasks() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		tasks, err := h.taskUC.ListTasks(c.Request().Context(), pagination)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func (h *videoTaskHandler) DeleteTask() echo.HandlerFunc {
	return func(c echo.Context) error {
		taskID, err := uuid.Parse(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid task id"})
		}
		if err = h.taskUC.DeleteTask(c.Request().Context(), taskID); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted successfully"})
	}
}

// errorResponse maps the adapter and task error taxonomy onto HTTP statuses.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, videotasks.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engines.ErrUnknownEngine), errors.Is(err, engines.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engines.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, videotasks.ErrTaskNotTerminal):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, engines.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, videotasks.ErrPollingTimeout):
		return c.JSON(http.StatusRequestTimeout, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
