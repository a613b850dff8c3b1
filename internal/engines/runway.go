package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/models"
)

const (
	defaultRunwayBaseURL  = "https://api.dev.runwayml.com"
	defaultRunwayModel    = "gen3a_turbo"
	runwayAPIVersion      = "2024-11-06"
	runwayDefaultDuration = 10
)

var runwayStatusTable = map[string]models.TaskStatus{
	"PENDING":   models.TaskStatusPending,
	"THROTTLED": models.TaskStatusPending,
	"RUNNING":   models.TaskStatusProcessing,
	"SUCCEEDED": models.TaskStatusCompleted,
	"FAILED":    models.TaskStatusFailed,
	"CANCELLED": models.TaskStatusFailed,
}

var runwayRatios = map[string]struct{}{
	"1280:768": {},
	"768:1280": {},
}

type RunwayAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewRunwayAdapter(cfg config.EngineAPIConfig, httpClient *http.Client) *RunwayAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultRunwayBaseURL
	}
	return &RunwayAdapter{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (r *RunwayAdapter) Name() string {
	return EngineRunway
}

func (r *RunwayAdapter) ValidateConfig(cfg *models.EngineConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.DurationSeconds != 0 && cfg.DurationSeconds != 5 && cfg.DurationSeconds != 10 {
		return fmt.Errorf("%w: runway duration must be 5 or 10 seconds", ErrInvalidRequest)
	}
	if cfg.AspectRatio != "" {
		if _, ok := runwayRatios[cfg.AspectRatio]; !ok {
			return fmt.Errorf("%w: unsupported runway ratio %q", ErrInvalidRequest, cfg.AspectRatio)
		}
	}
	return nil
}

type runwayCreateRequest struct {
	Model      string `json:"model"`
	PromptText string `json:"promptText"`
	Duration   int    `json:"duration"`
	Ratio      string `json:"ratio,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

type runwayTaskResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Progress    float64  `json:"progress"`
	Output      []string `json:"output"`
	Failure     string   `json:"failure"`
	FailureCode string   `json:"failureCode"`
}

type runwayErrorResponse struct {
	Error string `json:"error"`
}

func (r *RunwayAdapter) CreateTask(ctx context.Context, prompt string, cfg *models.EngineConfig) (*CreateResult, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("%w: runway api key missing", ErrConfiguration)
	}
	if err := r.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	req := runwayCreateRequest{
		Model:      defaultRunwayModel,
		PromptText: prompt,
		Duration:   runwayDefaultDuration,
	}
	if cfg != nil {
		if cfg.Model != "" {
			req.Model = cfg.Model
		}
		if cfg.DurationSeconds != 0 {
			req.Duration = cfg.DurationSeconds
		}
		req.Ratio = cfg.AspectRatio
		req.Seed = cfg.Seed
	}

	var task runwayTaskResponse
	if err := r.do(ctx, http.MethodPost, r.baseURL+"/v1/text_to_video", req, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		return nil, fmt.Errorf("%w: runway returned no task id", ErrTransient)
	}
	return &CreateResult{
		ExternalTaskID: task.ID,
		Status:         mapStatus(runwayStatusTable, task.Status),
	}, nil
}

func (r *RunwayAdapter) GetStatus(ctx context.Context, externalTaskID string) (*StatusResult, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("%w: runway api key missing", ErrConfiguration)
	}
	if externalTaskID == "" {
		return nil, fmt.Errorf("%w: empty runway task id", ErrInvalidRequest)
	}
	var task runwayTaskResponse
	if err := r.do(ctx, http.MethodGet, r.baseURL+"/v1/tasks/"+externalTaskID, nil, &task); err != nil {
		return nil, err
	}

	result := &StatusResult{
		Status:   mapStatus(runwayStatusTable, task.Status),
		Progress: int(task.Progress * 100),
	}
	if result.Status == models.TaskStatusCompleted {
		result.Progress = 100
		if len(task.Output) > 0 {
			result.VideoURL = task.Output[0]
		}
	}
	if result.Status == models.TaskStatusFailed {
		result.ErrorMessage = task.Failure
		if result.ErrorMessage == "" {
			result.ErrorMessage = task.FailureCode
		}
	}
	return result, nil
}

func (r *RunwayAdapter) CancelTask(ctx context.Context, externalTaskID string) error {
	if r.apiKey == "" {
		return fmt.Errorf("%w: runway api key missing", ErrConfiguration)
	}
	return r.do(ctx, http.MethodDelete, r.baseURL+"/v1/tasks/"+externalTaskID, nil, nil)
}

func (r *RunwayAdapter) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal runway request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build runway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("X-Runway-Version", runwayAPIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := classifyStatusCode(resp, "runway"); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode runway response: %v", ErrTransient, err)
	}
	return nil
}

// classifyStatusCode maps provider HTTP status codes onto the adapter error
// taxonomy. Shared by both adapters.
func classifyStatusCode(resp *http.Response, engine string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr runwayErrorResponse
	_ = json.Unmarshal(raw, &apiErr)
	detail := apiErr.Error
	if detail == "" {
		detail = string(raw)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s: %s", ErrNotFound, engine, detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s: %s", ErrRateLimited, engine, detail)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", ErrConfiguration, engine, detail)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s returned %d: %s", ErrTransient, engine, resp.StatusCode, detail)
	default:
		return fmt.Errorf("%w: %s returned %d: %s", ErrInvalidRequest, engine, resp.StatusCode, detail)
	}
}

var _ Adapter = (*RunwayAdapter)(nil)
