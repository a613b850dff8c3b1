package videotasks

import (
	"context"

	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
)

type UseCase interface {
	// SubmitTask creates the remote job and persists the local record. No row
	// is written when the remote create fails; the remote job is cancelled
	// best effort when persistence fails after a successful create.
	SubmitTask(ctx context.Context, input *models.SubmitTaskInput) (*models.VideoTask, error)

	// GetTask performs at most one reconciliation step for non-terminal tasks
	// and always returns the freshest available row.
	GetTask(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error)

	// WaitForTask drives the task to a terminal state with backoff polling.
	WaitForTask(ctx context.Context, taskID uuid.UUID, opts *models.WaitOptions) (*models.VideoTask, error)

	ListTasks(ctx context.Context, pq *utils.Pagination) (*models.VideoTaskList, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error

	// SweepStaleTasks reconciles tasks that have gone quiet and fails those
	// older than the configured maximum age. Used by the sweeper binary.
	SweepStaleTasks(ctx context.Context) (int, error)
}
