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

func newTestPika(t *testing.T, handler http.HandlerFunc) *PikaAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPikaAdapter(config.EngineAPIConfig{APIKey: "test-key", BaseURL: srv.URL}, srv.Client())
}

func TestPikaStatusTable(t *testing.T) {
	cases := map[string]models.TaskStatus{
		"queued":     models.TaskStatusPending,
		"pending":    models.TaskStatusPending,
		"started":    models.TaskStatusProcessing,
		"processing": models.TaskStatusProcessing,
		"finished":   models.TaskStatusCompleted,
		"failed":     models.TaskStatusFailed,
		"paused":     models.TaskStatusPending,
	}
	for raw, want := range cases {
		require.Equal(t, want, mapStatus(pikaStatusTable, raw), "raw status %q", raw)
	}
}

func TestPikaCreateTask(t *testing.T) {
	eta := 42
	adapter := newTestPika(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/generate", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req pikaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a dog skiing", req.PromptText)
		require.Equal(t, "16:9", req.Options.AspectRatio)

		json.NewEncoder(w).Encode(pikaVideoResponse{ID: "vid-1", Status: "queued", EtaSeconds: &eta})
	})

	res, err := adapter.CreateTask(context.Background(), "a dog skiing", &models.EngineConfig{AspectRatio: "16:9"})
	require.NoError(t, err)
	require.Equal(t, "vid-1", res.ExternalTaskID)
	require.Equal(t, models.TaskStatusPending, res.Status)
	require.NotNil(t, res.EtaSeconds)
	require.Equal(t, 42, *res.EtaSeconds)
}

func TestPikaValidateConfig(t *testing.T) {
	adapter := NewPikaAdapter(config.EngineAPIConfig{APIKey: "k"}, http.DefaultClient)

	require.NoError(t, adapter.ValidateConfig(nil))
	require.NoError(t, adapter.ValidateConfig(&models.EngineConfig{DurationSeconds: 8, AspectRatio: "9:16", Width: 720, Height: 1280}))
	require.ErrorIs(t, adapter.ValidateConfig(&models.EngineConfig{DurationSeconds: 30}), ErrInvalidRequest)
	require.ErrorIs(t, adapter.ValidateConfig(&models.EngineConfig{AspectRatio: "3:2"}), ErrInvalidRequest)
	require.ErrorIs(t, adapter.ValidateConfig(&models.EngineConfig{Width: 721, Height: 1280}), ErrInvalidRequest)
}

func TestPikaGetStatusFinished(t *testing.T) {
	adapter := newTestPika(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/videos/vid-1", r.URL.Path)
		json.NewEncoder(w).Encode(pikaVideoResponse{
			ID:        "vid-1",
			Status:    "finished",
			Progress:  97,
			ResultURL: "https://cdn.pika.art/vid-1.mp4",
		})
	})

	res, err := adapter.GetStatus(context.Background(), "vid-1")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusCompleted, res.Status)
	require.Equal(t, 100, res.Progress)
	require.Equal(t, "https://cdn.pika.art/vid-1.mp4", res.VideoURL)
}

func TestPikaGetStatusFailed(t *testing.T) {
	adapter := newTestPika(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pikaVideoResponse{ID: "vid-1", Status: "failed", Message: "content policy"})
	})

	res, err := adapter.GetStatus(context.Background(), "vid-1")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusFailed, res.Status)
	require.Equal(t, "content policy", res.ErrorMessage)
}

func TestPikaCancelTask(t *testing.T) {
	var gotPath string
	adapter := newTestPika(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, adapter.CancelTask(context.Background(), "vid-1"))
	require.Equal(t, "/v1/videos/vid-1/cancel", gotPath)
}
