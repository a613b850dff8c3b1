package engines

import "github.com/pkg/errors"

// Static errors shared by every engine adapter. Callers match with errors.Is.
var (
	// ErrConfiguration means required credentials are absent. Fatal, never retried.
	ErrConfiguration = errors.New("engine credentials are not configured")
	// ErrInvalidRequest means the provider rejected the prompt or config.
	ErrInvalidRequest = errors.New("engine rejected the request")
	// ErrRateLimited maps provider 429 responses.
	ErrRateLimited = errors.New("engine rate limit exceeded")
	// ErrNotFound means the provider no longer recognizes the task id.
	ErrNotFound = errors.New("engine does not recognize the task")
	// ErrTransient covers network failures and provider 5xx. Safe to retry.
	ErrTransient = errors.New("engine temporarily unavailable")
	// ErrUnknownEngine is returned by the provider factory for unsupported names.
	ErrUnknownEngine = errors.New("unknown engine")
)
