package generatepdfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the signature of a PNG file followed by an empty IHDR chunk.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectMIMEType_Extensions(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"modern.webp", "image/webp"},
		{"icon.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIMEType(tt.path))
		})
	}
}

func TestDetectMIMEType_UnknownMissingFile(t *testing.T) {
	assert.Equal(t, "application/octet-stream", DetectMIMEType("/nonexistent/blob.zzunknown"))
	assert.Equal(t, "application/octet-stream", DetectMIMEType("/nonexistent/noext"))
}

func TestDetectMIMEType_SniffsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.zzunknown")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	assert.Equal(t, "image/png", DetectMIMEType(path))
}

func TestDetectMIMEType_UnsniffableContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0xff, 0x13, 0x37, 0x00, 0x42}, 0o644))

	assert.Equal(t, "application/octet-stream", DetectMIMEType(path))
}
