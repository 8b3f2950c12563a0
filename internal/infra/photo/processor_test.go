package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"storemap/config"
	domainerrors "storemap/internal/domain/errors"
)

func testImagePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return &buf
}

func TestProcessor_Process(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	proc := NewProcessor(&config.Config{}, bucket, slog.Default())

	filename, err := proc.Process(context.Background(), testImagePNG(t, 100, 60), "image/png")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".png"))

	// The stored object must survive a round trip through the bucket.
	data, err := bucket.ReadAll(context.Background(), filename)
	assert.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestProcessor_ResizesWideImages(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	cfg := &config.Config{Uploads: &config.UploadsConfig{MaxWidth: 800}}
	proc := NewProcessor(cfg, bucket, slog.Default())

	filename, err := proc.Process(context.Background(), testImagePNG(t, 1600, 400), "image/png")
	require.NoError(t, err)

	data, err := bucket.ReadAll(context.Background(), filename)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy()) // aspect ratio preserved
}

func TestProcessor_RejectsNonImages(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	proc := NewProcessor(&config.Config{}, bucket, slog.Default())

	_, err := proc.Process(context.Background(), strings.NewReader("%PDF-1.4"), "application/pdf")
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedFileType))

	// Claimed image type with garbage bytes is also rejected.
	_, err = proc.Process(context.Background(), strings.NewReader("not an image"), "image/png")
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedFileType))
}

func TestProcessor_ContentTypeParameters(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	proc := NewProcessor(&config.Config{}, bucket, slog.Default())

	filename, err := proc.Process(context.Background(), testImagePNG(t, 10, 10), "image/png; charset=binary")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".png"))
}
