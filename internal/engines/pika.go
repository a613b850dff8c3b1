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
	defaultPikaBaseURL  = "https://api.pika.art"
	defaultPikaModel    = "pika-1.5"
	pikaMaxDuration     = 10
	pikaDimensionFactor = 8
)

var pikaStatusTable = map[string]models.TaskStatus{
	"queued":     models.TaskStatusPending,
	"pending":    models.TaskStatusPending,
	"started":    models.TaskStatusProcessing,
	"processing": models.TaskStatusProcessing,
	"finished":   models.TaskStatusCompleted,
	"failed":     models.TaskStatusFailed,
}

var pikaAspectRatios = map[string]struct{}{
	"16:9": {},
	"9:16": {},
	"1:1":  {},
	"4:5":  {},
}

type PikaAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewPikaAdapter(cfg config.EngineAPIConfig, httpClient *http.Client) *PikaAdapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultPikaBaseURL
	}
	return &PikaAdapter{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (p *PikaAdapter) Name() string {
	return EnginePika
}

func (p *PikaAdapter) ValidateConfig(cfg *models.EngineConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.DurationSeconds < 0 || cfg.DurationSeconds > pikaMaxDuration {
		return fmt.Errorf("%w: pika duration must be between 1 and %d seconds", ErrInvalidRequest, pikaMaxDuration)
	}
	if cfg.AspectRatio != "" {
		if _, ok := pikaAspectRatios[cfg.AspectRatio]; !ok {
			return fmt.Errorf("%w: unsupported pika aspect ratio %q", ErrInvalidRequest, cfg.AspectRatio)
		}
	}
	if cfg.Width%pikaDimensionFactor != 0 || cfg.Height%pikaDimensionFactor != 0 {
		return fmt.Errorf("%w: pika dimensions must be multiples of %d", ErrInvalidRequest, pikaDimensionFactor)
	}
	return nil
}

type pikaGenerateRequest struct {
	PromptText string      `json:"promptText"`
	Model      string      `json:"model"`
	Options    pikaOptions `json:"options"`
}

type pikaOptions struct {
	Duration    int    `json:"duration,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}

type pikaVideoResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	EtaSeconds *int   `json:"etaSeconds"`
	ResultURL  string `json:"resultUrl"`
	Message    string `json:"message"`
}

func (p *PikaAdapter) CreateTask(ctx context.Context, prompt string, cfg *models.EngineConfig) (*CreateResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: pika api key missing", ErrConfiguration)
	}
	if err := p.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	req := pikaGenerateRequest{
		PromptText: prompt,
		Model:      defaultPikaModel,
	}
	if cfg != nil {
		if cfg.Model != "" {
			req.Model = cfg.Model
		}
		req.Options = pikaOptions{
			Duration:    cfg.DurationSeconds,
			AspectRatio: cfg.AspectRatio,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Seed:        cfg.Seed,
		}
	}

	var video pikaVideoResponse
	if err := p.do(ctx, http.MethodPost, p.baseURL+"/v1/generate", req, &video); err != nil {
		return nil, err
	}
	if video.ID == "" {
		return nil, fmt.Errorf("%w: pika returned no video id", ErrTransient)
	}
	return &CreateResult{
		ExternalTaskID: video.ID,
		Status:         mapStatus(pikaStatusTable, video.Status),
		EtaSeconds:     video.EtaSeconds,
	}, nil
}

func (p *PikaAdapter) GetStatus(ctx context.Context, externalTaskID string) (*StatusResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: pika api key missing", ErrConfiguration)
	}
	if externalTaskID == "" {
		return nil, fmt.Errorf("%w: empty pika video id", ErrInvalidRequest)
	}
	var video pikaVideoResponse
	if err := p.do(ctx, http.MethodGet, p.baseURL+"/v1/videos/"+externalTaskID, nil, &video); err != nil {
		return nil, err
	}

	result := &StatusResult{
		Status:     mapStatus(pikaStatusTable, video.Status),
		Progress:   video.Progress,
		EtaSeconds: video.EtaSeconds,
	}
	if result.Status == models.TaskStatusCompleted {
		result.Progress = 100
		result.VideoURL = video.ResultURL
	}
	if result.Status == models.TaskStatusFailed {
		result.ErrorMessage = video.Message
	}
	return result, nil
}

func (p *PikaAdapter) CancelTask(ctx context.Context, externalTaskID string) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: pika api key missing", ErrConfiguration)
	}
	return p.do(ctx, http.MethodPost, p.baseURL+"/v1/videos/"+externalTaskID+"/cancel", nil, nil)
}

func (p *PikaAdapter) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal pika request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build pika request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := classifyStatusCode(resp, "pika"); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode pika response: %v", ErrTransient, err)
	}
	return nil
}

var _ Adapter = (*PikaAdapter)(nil)
