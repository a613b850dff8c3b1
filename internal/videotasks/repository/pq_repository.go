package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type taskRepo struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) videotasks.Repository {
	return &taskRepo{
		db: db,
	}
}

func (r *taskRepo) CreateTask(ctx context.Context, task *models.VideoTask) (*models.VideoTask, error) {
	created := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		createTaskQuery,
		task.UserID,
		task.DraftID,
		task.Engine,
		task.ExternalTaskID,
		task.Status,
		task.Progress,
		task.EtaSeconds,
		task.Prompt,
		task.Config,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create video task: %w", err)
	}
	return created, nil
}

func (r *taskRepo) GetTaskByID(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error) {
	task := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		getTaskByIDQuery,
		taskID,
	).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, videotasks.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get video task by id: %w", err)
	}
	return task, nil
}

func (r *taskRepo) GetTaskByExternalID(ctx context.Context, engine, externalTaskID string) (*models.VideoTask, error) {
	task := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		getTaskByExternalIDQuery,
		engine,
		externalTaskID,
	).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, videotasks.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get video task by external id: %w", err)
	}
	return task, nil
}

func (r *taskRepo) GetTasks(ctx context.Context, userID uuid.UUID, pq *utils.Pagination) (*models.VideoTaskList, error) {
	var totalCount int
	if err := r.db.GetContext(
		ctx,
		&totalCount,
		getTotalTasksByUserIDQuery,
		userID,
	); err != nil {
		return nil, fmt.Errorf("failed to get total tasks count: %w", err)
	}
	if totalCount == 0 {
		return &models.VideoTaskList{
			Tasks:      make([]*models.VideoTask, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}

	rows, err := r.db.QueryxContext(
		ctx,
		getTasksByUserIDQuery,
		userID,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get video tasks by user id: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.VideoTask, 0, pq.GetSize())
	for rows.Next() {
		var task models.VideoTask
		if err = rows.StructScan(&task); err != nil {
			return nil, fmt.Errorf("failed to scan video task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan video tasks: %w", err)
	}
	return &models.VideoTaskList{
		Tasks:      tasks,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (r *taskRepo) GetStaleTasks(ctx context.Context, updatedBefore time.Time, limit int) ([]*models.VideoTask, error) {
	rows, err := r.db.QueryxContext(
		ctx,
		getStaleTasksQuery,
		updatedBefore,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale video tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.VideoTask, 0, limit)
	for rows.Next() {
		var task models.VideoTask
		if err = rows.StructScan(&task); err != nil {
			return nil, fmt.Errorf("failed to scan stale video task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan stale video tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepo) UpdateProgress(ctx context.Context, taskID uuid.UUID, status models.TaskStatus, progress int, etaSeconds *int) (*models.VideoTask, error) {
	task := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateProgressQuery,
		taskID,
		status,
		progress,
		etaSeconds,
	).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Row is already terminal; return it as-is.
			return r.GetTaskByID(ctx, taskID)
		}
		return nil, fmt.Errorf("failed to update video task progress: %w", err)
	}
	return task, nil
}

func (r *taskRepo) MarkCompleted(ctx context.Context, taskID uuid.UUID, videoURL, storagePath, durableURL string) (*models.VideoTask, error) {
	task := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		markCompletedQuery,
		taskID,
		videoURL,
		storagePath,
		durableURL,
	).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.GetTaskByID(ctx, taskID)
		}
		return nil, fmt.Errorf("failed to mark video task completed: %w", err)
	}
	return task, nil
}

func (r *taskRepo) MarkFailed(ctx context.Context, taskID uuid.UUID, errorMessage string) (*models.VideoTask, error) {
	task := &models.VideoTask{}
	if err := r.db.QueryRowxContext(
		ctx,
		markFailedQuery,
		taskID,
		errorMessage,
	).StructScan(task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.GetTaskByID(ctx, taskID)
		}
		return nil, fmt.Errorf("failed to mark video task failed: %w", err)
	}
	return task, nil
}

func (r *taskRepo) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	res, err := r.db.ExecContext(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete video task: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return videotasks.ErrTaskNotFound
	}
	return nil
}
