package engines

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestRunway(t *testing.T, handler http.HandlerFunc) *RunwayAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRunwayAdapter(config.EngineAPIConfig{APIKey: "test-key", BaseURL: srv.URL}, srv.Client())
}

func TestRunwayStatusTable(t *testing.T) {
	cases := map[string]models.TaskStatus{
		"PENDING":   models.TaskStatusPending,
		"THROTTLED": models.TaskStatusPending,
		"RUNNING":   models.TaskStatusProcessing,
		"SUCCEEDED": models.TaskStatusCompleted,
		"FAILED":    models.TaskStatusFailed,
		"CANCELLED": models.TaskStatusFailed,
		"SOMETHING": models.TaskStatusPending,
	}
	for raw, want := range cases {
		require.Equal(t, want, mapStatus(runwayStatusTable, raw), "raw status %q", raw)
	}
}

func TestRunwayCreateTask(t *testing.T) {
	adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/text_to_video", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, runwayAPIVersion, r.Header.Get("X-Runway-Version"))

		var req runwayCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a cat surfing", req.PromptText)
		require.Equal(t, 5, req.Duration)

		json.NewEncoder(w).Encode(runwayTaskResponse{ID: "task-1", Status: "PENDING"})
	})

	res, err := adapter.CreateTask(context.Background(), "a cat surfing", &models.EngineConfig{DurationSeconds: 5})
	require.NoError(t, err)
	require.Equal(t, "task-1", res.ExternalTaskID)
	require.Equal(t, models.TaskStatusPending, res.Status)
}

func TestRunwayCreateTaskMissingAPIKey(t *testing.T) {
	adapter := NewRunwayAdapter(config.EngineAPIConfig{}, http.DefaultClient)
	_, err := adapter.CreateTask(context.Background(), "prompt", nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestRunwayValidateConfig(t *testing.T) {
	adapter := NewRunwayAdapter(config.EngineAPIConfig{APIKey: "k"}, http.DefaultClient)

	require.NoError(t, adapter.ValidateConfig(nil))
	require.NoError(t, adapter.ValidateConfig(&models.EngineConfig{DurationSeconds: 10, AspectRatio: "1280:768"}))
	require.ErrorIs(t, adapter.ValidateConfig(&models.EngineConfig{DurationSeconds: 7}), ErrInvalidRequest)
	require.ErrorIs(t, adapter.ValidateConfig(&models.EngineConfig{AspectRatio: "21:9"}), ErrInvalidRequest)
}

func TestRunwayGetStatusCompleted(t *testing.T) {
	adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tasks/task-1", r.URL.Path)
		json.NewEncoder(w).Encode(runwayTaskResponse{
			ID:       "task-1",
			Status:   "SUCCEEDED",
			Progress: 1,
			Output:   []string{"https://cdn.example.com/out.mp4"},
		})
	})

	res, err := adapter.GetStatus(context.Background(), "task-1")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, res.Status)
	require.Equal(t, 100, res.Progress)
	require.Equal(t, "https://cdn.example.com/out.mp4", res.VideoURL)
}

func TestRunwayGetStatusFailed(t *testing.T) {
	adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(runwayTaskResponse{
			ID:          "task-1",
			Status:      "FAILED",
			FailureCode: "SAFETY.INPUT.TEXT",
		})
	})

	res, err := adapter.GetStatus(context.Background(), "task-1")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusFailed, res.Status)
	require.Equal(t, "SAFETY.INPUT.TEXT", res.ErrorMessage)
}

func TestRunwayGetStatusProgress(t *testing.T) {
	adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(runwayTaskResponse{ID: "task-1", Status: "RUNNING", Progress: 0.4})
	})

	res, err := adapter.GetStatus(context.Background(), "task-1")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusProcessing, res.Status)
	require.Equal(t, 40, res.Progress)
}

func TestRunwayErrorTaxonomy(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusUnauthorized, ErrConfiguration},
		{http.StatusForbidden, ErrConfiguration},
		{http.StatusInternalServerError, ErrTransient},
		{http.StatusBadGateway, ErrTransient},
		{http.StatusBadRequest, ErrInvalidRequest},
	}
	for _, tc := range cases {
		adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.code)
			json.NewEncoder(w).Encode(runwayErrorResponse{Error: "nope"})
		})
		_, err := adapter.GetStatus(context.Background(), "task-1")
		require.ErrorIs(t, err, tc.want, "status code %d", tc.code)
	}
}

func TestRunwayCancelTask(t *testing.T) {
	var gotMethod, gotPath string
	adapter := newTestRunway(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, adapter.CancelTask(context.Background(), "task-1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/v1/tasks/task-1", gotPath)
}
