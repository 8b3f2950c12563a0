package photo

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gocloud.dev/blob"

	"storemap/config"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/service"
	"storemap/internal/errors"
)

const defaultMaxWidth = 800

// mimeExtensions maps the accepted image MIME types to the file extension
// the stored object gets. Anything outside this table is rejected.
var mimeExtensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
}

// processor is a concrete implementation of the PhotoService interface.
// It resizes incoming images and writes them to the upload bucket.
type processor struct {
	bucket   *blob.Bucket
	maxWidth int
	logger   *slog.Logger
}

// NewProcessor is the constructor for processor.
func NewProcessor(cfg *config.Config, bucket *blob.Bucket, logger *slog.Logger) service.PhotoService {
	maxWidth := defaultMaxWidth
	if cfg.Uploads != nil && cfg.Uploads.MaxWidth > 0 {
		maxWidth = cfg.Uploads.MaxWidth
	}

	return &processor{
		bucket:   bucket,
		maxWidth: maxWidth,
		logger:   logger,
	}
}

// Process validates the upload is an image, resizes it to the configured
// width and stores it under a fresh unique name. It returns the stored
// filename for the caller to persist on the store record.
func (p *processor) Process(ctx context.Context, r io.Reader, contentType string) (string, error) {
	mimeType := contentType
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	ext, ok := mimeExtensions[strings.ToLower(mimeType)]
	if !ok {
		return "", domainerrors.ErrUnsupportedFileType
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", domainerrors.ErrUnsupportedFileType
	}

	// Height 0 keeps the aspect ratio. Images narrower than the limit
	// pass through untouched.
	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return "", domainerrors.ErrUnsupportedFileType
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", errors.Wrap(err, "encode photo")
	}

	filename := uuid.New().String() + "." + ext
	if err := p.bucket.WriteAll(ctx, filename, buf.Bytes(), &blob.WriterOptions{ContentType: mimeType}); err != nil {
		return "", errors.Wrap(err, "store photo")
	}

	p.logger.DebugContext(ctx, "photo stored",
		slog.String("filename", filename),
		slog.Int("width", img.Bounds().Dx()),
	)

	return filename, nil
}
