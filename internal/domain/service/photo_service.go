package service

import (
	"context"
	"io"
)

// PhotoService is the upload pipeline stage: it validates, resizes and
// persists one uploaded image and hands back the generated filename to
// attach to the record before it is saved.
type PhotoService interface {
	// Process decodes the image, resizes it to the configured width with
	// proportional height, stores it under a generated unique name and
	// returns that name. contentType is the client-declared MIME type;
	// non-image types are rejected.
	Process(ctx context.Context, r io.Reader, contentType string) (filename string, err error)
}
