package videotasks

import "github.com/pkg/errors"

var (
	// ErrTaskNotFound covers both unknown ids and rows owned by someone else,
	// so existence is never leaked across tenants.
	ErrTaskNotFound = errors.New("video task not found")
	// ErrPollingTimeout is surfaced when the active poll budget is exhausted
	// while the task is still non-terminal. The stored row is left untouched.
	ErrPollingTimeout = errors.New("polling attempts exhausted before task reached a terminal state")
	// ErrTransfer means downloading the provider video or writing it to durable
	// storage failed. It forces the task into the failed terminal state.
	ErrTransfer = errors.New("asset transfer failed")
	// ErrTaskNotTerminal guards deletes of still-running tasks.
	ErrTaskNotTerminal = errors.New("video task has not reached a terminal state")
)
