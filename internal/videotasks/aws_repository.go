package videotasks

import (
	"context"

	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/google/uuid"
)

type AWSRepository interface {
	// TransferAsset downloads the provider-hosted video and re-uploads it into
	// our own bucket, returning a stable system-controlled location.
	TransferAsset(ctx context.Context, remoteURL string, userID, taskID uuid.UUID) (*models.AssetLocation, error)
	RemoveObject(ctx context.Context, key string) error
}
