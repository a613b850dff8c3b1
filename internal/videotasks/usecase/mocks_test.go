package usecase

import (
	"context"
	"time"

	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, task *models.VideoTask) (*models.VideoTask, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) GetTaskByID(ctx context.Context, taskID uuid.UUID) (*models.VideoTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) GetTaskByExternalID(ctx context.Context, engine, externalTaskID string) (*models.VideoTask, error) {
	args := m.Called(ctx, engine, externalTaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) GetTasks(ctx context.Context, userID uuid.UUID, pq *utils.Pagination) (*models.VideoTaskList, error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTaskList), args.Error(1)
}

func (m *mockTaskRepo) GetStaleTasks(ctx context.Context, updatedBefore time.Time, limit int) ([]*models.VideoTask, error) {
	args := m.Called(ctx, updatedBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) UpdateProgress(ctx context.Context, taskID uuid.UUID, status models.TaskStatus, progress int, etaSeconds *int) (*models.VideoTask, error) {
	args := m.Called(ctx, taskID, status, progress, etaSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) MarkCompleted(ctx context.Context, taskID uuid.UUID, videoURL, storagePath, durableURL string) (*models.VideoTask, error) {
	args := m.Called(ctx, taskID, videoURL, storagePath, durableURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) MarkFailed(ctx context.Context, taskID uuid.UUID, errorMessage string) (*models.VideoTask, error) {
	args := m.Called(ctx, taskID, errorMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoTask), args.Error(1)
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type mockStatusCache struct {
	mock.Mock
}

func (m *mockStatusCache) GetStatus(ctx context.Context, engine, externalTaskID string) (*engines.StatusResult, error) {
	args := m.Called(ctx, engine, externalTaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engines.StatusResult), args.Error(1)
}

func (m *mockStatusCache) SetStatus(ctx context.Context, engine, externalTaskID string, result *engines.StatusResult) error {
	args := m.Called(ctx, engine, externalTaskID, result)
	return args.Error(0)
}

func (m *mockStatusCache) DeleteStatus(ctx context.Context, engine, externalTaskID string) error {
	args := m.Called(ctx, engine, externalTaskID)
	return args.Error(0)
}

type mockAWSRepo struct {
	mock.Mock
}

func (m *mockAWSRepo) TransferAsset(ctx context.Context, remoteURL string, userID, taskID uuid.UUID) (*models.AssetLocation, error) {
	args := m.Called(ctx, remoteURL, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetLocation), args.Error(1)
}

func (m *mockAWSRepo) RemoveObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockAdapter struct {
	mock.Mock
	name string
}

func (m *mockAdapter) Name() string {
	return m.name
}

func (m *mockAdapter) ValidateConfig(cfg *models.EngineConfig) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *mockAdapter) CreateTask(ctx context.Context, prompt string, cfg *models.EngineConfig) (*engines.CreateResult, error) {
	args := m.Called(ctx, prompt, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engines.CreateResult), args.Error(1)
}

func (m *mockAdapter) GetStatus(ctx context.Context, externalTaskID string) (*engines.StatusResult, error) {
	args := m.Called(ctx, externalTaskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engines.StatusResult), args.Error(1)
}

func (m *mockAdapter) CancelTask(ctx context.Context, externalTaskID string) error {
	args := m.Called(ctx, externalTaskID)
	return args.Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Engine(name string) (engines.Adapter, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(engines.Adapter), args.Error(1)
}
