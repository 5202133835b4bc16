package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_CreatesDirectories(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 4))
	img.Pix[7] = 200
	path := filepath.Join(t.TempDir(), "results", "binary", "erosion_3x3_rect_iter1.png")

	require.NoError(t, Save(img, path))

	loaded, err := NewImageCache().Load(path)
	require.NoError(t, err)
	gray, err := ToGray(loaded, GrayBT601)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, gray.Pix)
}

func TestSave_UnsupportedExtension(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	err := Save(image.NewGray(image.Rect(0, 0, 1, 1)), filepath.Join(dir, "out.xyz"))
	require.Error(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncodePNGBase64(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 7, 3))
	res, err := EncodePNGBase64(img)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, "image/png", res.MimeType)

	raw, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestBoundary(t *testing.T) {
	orig := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(orig.Pix, []uint8{255, 200, 10})
	eroded := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(eroded.Pix, []uint8{0, 200, 30})

	out, err := Boundary(orig, eroded)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0, 0}, out.Pix, "subtraction saturates at zero")
}

func TestBoundary_SizeMismatch(t *testing.T) {
	_, err := Boundary(image.NewGray(image.Rect(0, 0, 3, 3)), image.NewGray(image.Rect(0, 0, 3, 2)))
	require.Error(t, err)
}
