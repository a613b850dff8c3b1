package engines

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/models"
)

const (
	EngineRunway = "runway"
	EnginePika   = "pika"
)

const defaultRequestTimeout = 30 * time.Second

// CreateResult is the normalized response of a remote job creation.
type CreateResult struct {
	ExternalTaskID string            `json:"external_task_id"`
	Status         models.TaskStatus `json:"status"`
	EtaSeconds     *int              `json:"eta_seconds,omitempty"`
}

// StatusResult is the normalized response of a remote status lookup.
type StatusResult struct {
	Status       models.TaskStatus `json:"status"`
	Progress     int               `json:"progress"`
	EtaSeconds   *int              `json:"eta_seconds,omitempty"`
	VideoURL     string            `json:"video_url,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// Adapter normalizes one third-party video-generation API.
type Adapter interface {
	Name() string
	ValidateConfig(cfg *models.EngineConfig) error
	CreateTask(ctx context.Context, prompt string, cfg *models.EngineConfig) (*CreateResult, error)
	GetStatus(ctx context.Context, externalTaskID string) (*StatusResult, error)
	// CancelTask is best effort, used to avoid orphaned paid jobs when local
	// persistence fails after a successful remote create.
	CancelTask(ctx context.Context, externalTaskID string) error
}

// Provider owns the configured adapters, keyed by engine name.
type Provider struct {
	adapters map[string]Adapter
}

func NewProvider(cfg *config.Config) *Provider {
	httpClient := &http.Client{Timeout: defaultRequestTimeout}
	return &Provider{
		adapters: map[string]Adapter{
			EngineRunway: NewRunwayAdapter(cfg.Engines.Runway, httpClient),
			EnginePika:   NewPikaAdapter(cfg.Engines.Pika, httpClient),
		},
	}
}

func (p *Provider) Engine(name string) (Adapter, error) {
	adapter, ok := p.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return adapter, nil
}

func (p *Provider) Engines() []string {
	names := make([]string, 0, len(p.adapters))
	for name := range p.adapters {
		names = append(names, name)
	}
	return names
}

// mapStatus resolves a provider status through a fixed lookup table. Anything
// unrecognized is reported as pending: unknown-but-alive must never become
// completed or failed.
func mapStatus(table map[string]models.TaskStatus, raw string) models.TaskStatus {
	if status, ok := table[raw]; ok {
		return status
	}
	return models.TaskStatusPending
}
