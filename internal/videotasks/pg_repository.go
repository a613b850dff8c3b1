package videotasks

import (
	"context"
	"time"

	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
)

type Repository interface {
	CreateTask(ctx context.Context, task *models.VideoTask) (*models.VideoTask, error)
	GetTaskByID(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error)
	GetTaskByExternalID(ctx context.Context, engine, externalTaskID string) (*models.VideoTask, error)
	GetTasks(ctx context.Context, userID uuid.UUID, pq *utils.Pagination) (*models.VideoTaskList, error)
	GetStaleTasks(ctx context.Context, updatedBefore time.Time, limit int) ([]*models.VideoTask, error)

	UpdateProgress(ctx context.Context, taskID uuid.UUID, status models.TaskStatus, progress int, etaSeconds *int) (*models.VideoTask, error)
	MarkCompleted(ctx context.Context, taskID uuid.UUID, videoURL, storagePath, durableURL string) (*models.VideoTask, error)
	MarkFailed(ctx context.Context, taskID uuid.UUID, errorMessage string) (*models.VideoTask, error)

	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
