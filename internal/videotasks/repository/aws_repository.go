package repository

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/models"
	"github.com/clipforge/clipforge-backend/internal/videotasks"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	transferTimeout  = 5 * time.Minute
	videoContentType = "video/mp4"
)

type awsRepository struct {
	client     *s3.Client
	cfg        *config.Config
	httpClient *http.Client
}

func NewAwsRepository(awsClient *s3.Client, cfg *config.Config) videotasks.AWSRepository {
	return &awsRepository{
		client:     awsClient,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: transferTimeout},
	}
}

// TransferAsset streams the provider-hosted video straight into our bucket so
// the stored reference outlives the provider URL.
func (a *awsRepository) TransferAsset(ctx context.Context, remoteURL string, userID, taskID uuid.UUID) (*models.AssetLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return nil, errors.Wrap(videotasks.ErrTransfer, err.Error())
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(videotasks.ErrTransfer, "failed to download %s: %v", remoteURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(videotasks.ErrTransfer, "provider returned %d for %s", resp.StatusCode, remoteURL)
	}

	key := fmt.Sprintf("videos/%s/%s%s", userID, taskID, fileExtension(remoteURL))
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = videoContentType
	}

	input := &s3.PutObjectInput{
		Bucket:      &a.cfg.S3.VideoBucket,
		Key:         &key,
		Body:        resp.Body,
		ContentType: &contentType,
	}
	if resp.ContentLength > 0 {
		input.ContentLength = &resp.ContentLength
	}
	if _, err = a.client.PutObject(ctx, input); err != nil {
		return nil, errors.Wrapf(videotasks.ErrTransfer, "failed to upload %s: %v", key, err)
	}

	return &models.AssetLocation{
		StoragePath: key,
		DurableURL:  a.publicURL(key),
	}, nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &a.cfg.S3.VideoBucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

func (a *awsRepository) publicURL(key string) string {
	base := a.cfg.S3.PublicURL
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimSuffix(a.cfg.S3.Endpoint, "/"), a.cfg.S3.VideoBucket)
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}

func fileExtension(remoteURL string) string {
	ext := path.Ext(strings.SplitN(path.Base(remoteURL), "?", 2)[0])
	if ext == "" {
		return ".mp4"
	}
	return ext
}
