// Package photo implements store photo processing and persistence.
package photo

import (
	"context"
	"os"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"storemap/config"
	"storemap/internal/errors"
)

// NewUploadBucket opens the blob bucket backing store photo uploads.
// The bucket is closed when the application shuts down.
func NewUploadBucket(lc fx.Lifecycle, cfg *config.Config) (*blob.Bucket, error) {
	dir := "./public/uploads"
	if cfg.Uploads != nil && cfg.Uploads.Dir != "" {
		dir = cfg.Uploads.Dir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create uploads directory")
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open uploads bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return bucket, nil
}
