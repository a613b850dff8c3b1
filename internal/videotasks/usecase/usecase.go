package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/clipforge/clipforge-backend/pkg/logger"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
)

const defaultMaxTaskAge = 6 * time.Hour

// errStillRunning drives the retry loop while the task stays non-terminal.
var errStillRunning = errors.New("task is still running")

// EngineProvider resolves an engine adapter by name.
type EngineProvider interface {
	Engine(name string) (engines.Adapter, error)
}

type videoTaskUC struct {
	cfg       *config.Config
	poller    config.PollerConfig
	taskRepo  videotasks.Repository
	redisRepo videotasks.RedisRepository
	awsRepo   videotasks.AWSRepository
	provider  EngineProvider
	logger    logger.Logger
}

func NewVideoTaskUseCase(
	cfg *config.Config,
	taskRepo videotasks.Repository,
	redisRepo videotasks.RedisRepository,
	awsRepo videotasks.AWSRepository,
	provider EngineProvider,
	log logger.Logger,
) videotasks.UseCase {
	return &videoTaskUC{
		cfg:       cfg,
		poller:    normalizePollerConfig(cfg.Poller),
		taskRepo:  taskRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		provider:  provider,
		logger:    log,
	}
}

func (u *videoTaskUC) SubmitTask(ctx context.Context, input *models.SubmitTaskInput) (*models.VideoTask, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		u.logger.Errorf("SubmitTask - GetUserFromCtx error: %v", err)
		return nil, err
	}
	if err = utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("SubmitTask - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("%w: %v", engines.ErrInvalidRequest, err)
	}

	adapter, err := u.provider.Engine(input.Engine)
	if err != nil {
		return nil, err
	}

	created, err := adapter.CreateTask(ctx, input.Prompt, &input.Config)
	if err != nil {
		u.logger.Errorf("SubmitTask - CreateTask error on %s: %v", input.Engine, err)
		return nil, err
	}

	task := &models.VideoTask{
		UserID:         user.UserID,
		DraftID:        input.DraftID,
		Engine:         adapter.Name(),
		ExternalTaskID: created.ExternalTaskID,
		Status:         models.TaskStatusPending,
		EtaSeconds:     created.EtaSeconds,
		Prompt:         input.Prompt,
		Config:         input.Config,
	}
	persisted, err := u.taskRepo.CreateTask(ctx, task)
	if err != nil {
		u.logger.Errorf("SubmitTask - CreateTask persist error: %v", err)
		// The remote job already exists and bills; cancel it best effort.
		if cancelErr := adapter.CancelTask(ctx, created.ExternalTaskID); cancelErr != nil {
			u.logger.Warnf("SubmitTask - CancelTask %s/%s after persist failure: %v",
				adapter.Name(), created.ExternalTaskID, cancelErr)
		}
		return nil, fmt.Errorf("failed to persist video task: %w", err)
	}
	u.logger.Infof("Submitted video task %s on %s (external %s)",
		persisted.TaskID, persisted.Engine, persisted.ExternalTaskID)
	return persisted, nil
}

func (u *videoTaskUC) GetTask(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error) {
	task, err := u.ownedTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.IsTerminal() {
		return task, nil
	}

	reconciled, err := u.reconcileOnce(ctx, task)
	if err != nil {
		// Stale-but-present data beats an error for a polling client.
		u.logger.Warnf("GetTask - reconciliation for %s failed, returning last known state: %v", taskID, err)
		return task, nil
	}
	return reconciled, nil
}

func (u *videoTaskUC) WaitForTask(ctx context.Context, taskID uuid.UUID, opts *models.WaitOptions) (*models.VideoTask, error) {
	task, err := u.ownedTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status.IsTerminal() {
		return task, nil
	}

	maxAttempts := u.poller.MaxAttempts
	if opts != nil {
		if err = utils.ValidateStruct(ctx, opts); err != nil {
			return nil, fmt.Errorf("%w: %v", engines.ErrInvalidRequest, err)
		}
		if opts.MaxAttempts > 0 {
			maxAttempts = opts.MaxAttempts
		}
	}

	operation := func() error {
		// Re-read first: a concurrent caller may already have finished the task.
		current, rerr := u.taskRepo.GetTaskByID(ctx, task.TaskID)
		if rerr != nil {
			return backoff.Permanent(rerr)
		}
		if current.Status.IsTerminal() {
			task = current
			return nil
		}

		current, rerr = u.reconcileOnce(ctx, current)
		if rerr != nil {
			if errors.Is(rerr, engines.ErrTransient) || errors.Is(rerr, engines.ErrRateLimited) {
				return rerr
			}
			return backoff.Permanent(rerr)
		}
		task = current
		if current.Status.IsTerminal() {
			return nil
		}
		return errStillRunning
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newPollBackOff(u.poller), uint64(maxAttempts-1)),
		ctx,
	)
	if err = backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, errStillRunning) {
			u.logger.Warnf("WaitForTask - %s still non-terminal after %d attempts", taskID, maxAttempts)
			return nil, videotasks.ErrPollingTimeout
		}
		return nil, err
	}
	return task, nil
}

func (u *videoTaskUC) ListTasks(ctx context.Context, pq *utils.Pagination) (*models.VideoTaskList, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		u.logger.Errorf("ListTasks - GetUserFromCtx error: %v", err)
		return nil, err
	}
	if pq == nil {
		pq = &utils.Pagination{Page: 1, Size: 10}
	}
	tasks, err := u.taskRepo.GetTasks(ctx, user.UserID, pq)
	if err != nil {
		u.logger.Errorf("ListTasks - GetTasks error for user %s: %v", user.UserID, err)
		return nil, fmt.Errorf("failed to fetch video tasks: %w", err)
	}
	return tasks, nil
}

func (u *videoTaskUC) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	task, err := u.ownedTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.Status.IsTerminal() {
		return videotasks.ErrTaskNotTerminal
	}
	if err = u.taskRepo.DeleteTask(ctx, task.UserID, task.TaskID); err != nil {
		u.logger.Errorf("DeleteTask - delete %s error: %v", taskID, err)
		return err
	}
	if task.StoragePath != nil {
		if err = u.awsRepo.RemoveObject(ctx, *task.StoragePath); err != nil {
			u.logger.Warnf("DeleteTask - failed to remove stored object %s: %v", *task.StoragePath, err)
		}
	}
	return nil
}

func (u *videoTaskUC) SweepStaleTasks(ctx context.Context) (int, error) {
	maxAge := u.cfg.Sweeper.MaxTaskAge
	if maxAge <= 0 {
		maxAge = defaultMaxTaskAge
	}
	batchSize := u.cfg.Sweeper.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	quietFor := time.Duration(u.cfg.Sweeper.IntervalSeconds) * time.Second
	if quietFor <= 0 {
		quietFor = time.Minute
	}

	stale, err := u.taskRepo.GetStaleTasks(ctx, time.Now().Add(-quietFor), batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale video tasks: %w", err)
	}

	swept := 0
	for _, task := range stale {
		if time.Since(task.CreatedAt) > maxAge {
			msg := fmt.Sprintf("task exceeded maximum age of %s without completing", maxAge)
			if _, ferr := u.taskRepo.MarkFailed(ctx, task.TaskID, msg); ferr != nil {
				u.logger.Errorf("SweepStaleTasks - MarkFailed %s error: %v", task.TaskID, ferr)
				continue
			}
			u.logger.Infof("Swept expired video task %s (created %s)", task.TaskID, task.CreatedAt)
			swept++
			continue
		}
		if _, rerr := u.reconcileOnce(ctx, task); rerr != nil {
			u.logger.Warnf("SweepStaleTasks - reconciliation for %s failed: %v", task.TaskID, rerr)
		}
	}
	return swept, nil
}

// ownedTask is the single ownership capability: it resolves the principal and
// loads the row, reporting other tenants' tasks as not found.
func (u *videoTaskUC) ownedTask(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	task, err := u.taskRepo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != user.UserID {
		u.logger.Warnf("User %s attempted to access task %s owned by %s", user.UserID, taskID, task.UserID)
		return nil, videotasks.ErrTaskNotFound
	}
	return task, nil
}

// reconcileOnce performs one status exchange with the remote engine, going
// through the cache, and persists any observed change. Re-applying the same
// remote observation is idempotent.
func (u *videoTaskUC) reconcileOnce(ctx context.Context, task *models.VideoTask) (*models.VideoTask, error) {
	if task.Status.IsTerminal() {
		return task, nil
	}
	adapter, err := u.provider.Engine(task.Engine)
	if err != nil {
		return nil, err
	}

	result, err := u.redisRepo.GetStatus(ctx, task.Engine, task.ExternalTaskID)
	if err != nil {
		u.logger.Warnf("reconcile - status cache read for %s failed: %v", task.TaskID, err)
		result = nil
	}
	if result == nil {
		result, err = adapter.GetStatus(ctx, task.ExternalTaskID)
		if err != nil {
			return nil, err
		}
		if cacheErr := u.redisRepo.SetStatus(ctx, task.Engine, task.ExternalTaskID, result); cacheErr != nil {
			u.logger.Warnf("reconcile - status cache write for %s failed: %v", task.TaskID, cacheErr)
		}
	}
	return u.applyStatus(ctx, task, result)
}

func (u *videoTaskUC) applyStatus(ctx context.Context, task *models.VideoTask, result *engines.StatusResult) (*models.VideoTask, error) {
	switch result.Status {
	case models.TaskStatusCompleted:
		if result.VideoURL == "" {
			msg := "asset transfer failed: provider reported completion without a video url"
			u.logger.Errorf("reconcile - %s: %s", task.TaskID, msg)
			return u.taskRepo.MarkFailed(ctx, task.TaskID, msg)
		}
		location, err := u.awsRepo.TransferAsset(ctx, result.VideoURL, task.UserID, task.TaskID)
		if err != nil {
			// Durability is a delivery requirement: a completed render we
			// cannot keep is a failed task.
			u.logger.Errorf("reconcile - asset transfer for %s failed: %v", task.TaskID, err)
			return u.taskRepo.MarkFailed(ctx, task.TaskID, fmt.Sprintf("asset transfer failed: %v", err))
		}
		u.logger.Infof("Video task %s completed, stored at %s", task.TaskID, location.StoragePath)
		return u.taskRepo.MarkCompleted(ctx, task.TaskID, result.VideoURL, location.StoragePath, location.DurableURL)

	case models.TaskStatusFailed:
		msg := result.ErrorMessage
		if msg == "" {
			msg = "video generation failed"
		}
		return u.taskRepo.MarkFailed(ctx, task.TaskID, msg)

	default:
		next := result.Status
		// Never step back from processing to pending; an unknown upstream
		// status maps to pending but the task is still alive.
		if task.Status == models.TaskStatusProcessing && next == models.TaskStatusPending {
			next = models.TaskStatusProcessing
		}
		if next == task.Status && result.Progress == task.Progress && equalEta(result.EtaSeconds, task.EtaSeconds) {
			return task, nil
		}
		return u.taskRepo.UpdateProgress(ctx, task.TaskID, next, result.Progress, result.EtaSeconds)
	}
}

func equalEta(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
