package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether no further transitions can happen.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

type VideoTask struct {
	TaskID         uuid.UUID    `json:"task_id" db:"task_id" redis:"task_id" validate:"omitempty"`
	UserID         uuid.UUID    `json:"user_id" db:"user_id" redis:"user_id" validate:"omitempty"`
	DraftID        *uuid.UUID   `json:"draft_id,omitempty" db:"draft_id" redis:"draft_id" validate:"omitempty"`
	Engine         string       `json:"engine" db:"engine" redis:"engine" validate:"required,lte=30"`
	ExternalTaskID string       `json:"external_task_id" db:"external_task_id" redis:"external_task_id" validate:"required,lte=255"`
	Status         TaskStatus   `json:"status" db:"status" redis:"status" validate:"omitempty"`
	Progress       int          `json:"progress" db:"progress" redis:"progress" validate:"omitempty,gte=0,lte=100"`
	EtaSeconds     *int         `json:"eta_seconds,omitempty" db:"eta_seconds" redis:"eta_seconds" validate:"omitempty"`
	Prompt         string       `json:"prompt" db:"prompt" redis:"prompt" validate:"required,lte=2000"`
	Config         EngineConfig `json:"config" db:"config" redis:"config" validate:"omitempty"`
	VideoURL       *string      `json:"video_url,omitempty" db:"video_url" redis:"video_url" validate:"omitempty"`
	StoragePath    *string      `json:"storage_path,omitempty" db:"storage_path" redis:"storage_path" validate:"omitempty"`
	DurableURL     *string      `json:"durable_url,omitempty" db:"durable_url" redis:"durable_url" validate:"omitempty"`
	ErrorMessage   *string      `json:"error_message,omitempty" db:"error_message" redis:"error_message" validate:"omitempty"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at" redis:"created_at" validate:"omitempty"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at" redis:"updated_at" validate:"omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty" db:"completed_at" redis:"completed_at" validate:"omitempty"`
}

type VideoTaskList struct {
	Tasks      []*VideoTask `json:"tasks"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	HasMore    bool         `json:"has_more"`
}

type SubmitTaskInput struct {
	Engine  string       `json:"engine" validate:"required,lte=30"`
	Prompt  string       `json:"prompt" validate:"required,lte=2000"`
	DraftID *uuid.UUID   `json:"draft_id,omitempty" validate:"omitempty"`
	Config  EngineConfig `json:"config"`
}

type EngineConfig struct {
	Model           string `json:"model,omitempty" validate:"omitempty,lte=60"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,gte=1,lte=60"`
	Width           int    `json:"width,omitempty" validate:"omitempty,gte=16,lte=4096"`
	Height          int    `json:"height,omitempty" validate:"omitempty,gte=16,lte=4096"`
	AspectRatio     string `json:"aspect_ratio,omitempty" validate:"omitempty,lte=10"`
	Seed            *int64 `json:"seed,omitempty" validate:"omitempty"`
}

type WaitOptions struct {
	MaxAttempts int `json:"max_attempts,omitempty" validate:"omitempty,gte=1,lte=120"`
}

// Value implements driver.Valuer so the config can be stored in a jsonb column.
func (c EngineConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for reading the jsonb column back.
func (c *EngineConfig) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported config column type %T", src)
	}
}

// AssetLocation points at a transferred video inside our own object storage.
type AssetLocation struct {
	StoragePath string `json:"storage_path"`
	DurableURL  string `json:"durable_url"`
}
