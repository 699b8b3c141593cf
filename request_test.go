package generatepdfs

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.DiscardHandler)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestBuildHTMLRequest_HTMLOnly(t *testing.T) {
	html := writeFile(t, t.TempDir(), "index.html", "<h1>Hello</h1>")

	req, err := buildHTMLRequest(discardLogger, html, "", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, map[string]any{"html": b64("<h1>Hello</h1>")}, got)
}

func TestBuildHTMLRequest_EmptyHTMLFileStillSent(t *testing.T) {
	html := writeFile(t, t.TempDir(), "empty.html", "")

	req, err := buildHTMLRequest(discardLogger, html, "", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"html":""}`, string(raw))
}

func TestBuildHTMLRequest_MissingHTML(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.html")

	_, err := buildHTMLRequest(discardLogger, missing, "", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "HTML file not found or not readable: "+missing)
}

func TestBuildHTMLRequest_DirectoryAsHTML(t *testing.T) {
	dir := t.TempDir()

	_, err := buildHTMLRequest(discardLogger, dir, "", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), dir)
}

func TestBuildHTMLRequest_CSS(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "index.html", "<p>x</p>")
	css := writeFile(t, dir, "style.css", "p { color: red; }")

	req, err := buildHTMLRequest(discardLogger, html, css, nil)
	require.NoError(t, err)
	require.NotNil(t, req.CSS)
	assert.Equal(t, b64("p { color: red; }"), *req.CSS)
}

func TestBuildHTMLRequest_MissingCSS(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "index.html", "<p>x</p>")
	missing := filepath.Join(dir, "missing.css")

	_, err := buildHTMLRequest(discardLogger, html, missing, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "CSS file not found or not readable: "+missing)
}

func TestBuildHTMLRequest_SkipsInvalidImages(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "index.html", "<img src=\"logo.png\">")
	logo := writeFile(t, dir, "logo.png", "png-bytes")

	req, err := buildHTMLRequest(discardLogger, html, "", []Image{
		{Name: "logo.png", Path: logo},
		{Name: "missing.png", Path: filepath.Join(dir, "missing.png")},
		{Name: "", Path: logo},
		{Name: "nopath.png"},
	})
	require.NoError(t, err)
	require.Len(t, req.Images, 1)
	assert.Equal(t, imagePayload{
		Name:     "logo.png",
		Content:  b64("png-bytes"),
		MIMEType: "image/png",
	}, req.Images[0])
}

func TestBuildHTMLRequest_ImageMIMEOverride(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "index.html", "<p>x</p>")
	img := writeFile(t, dir, "chart.bin", "data")

	req, err := buildHTMLRequest(discardLogger, html, "", []Image{
		{Name: "chart", Path: img, MIMEType: "image/avif"},
	})
	require.NoError(t, err)
	require.Len(t, req.Images, 1)
	assert.Equal(t, "image/avif", req.Images[0].MIMEType)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mimeType":"image/avif"`)
}

func TestBuildHTMLRequest_NoImagesOmitsKey(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "index.html", "<p>x</p>")

	for name, images := range map[string][]Image{
		"nil":         nil,
		"empty":       {},
		"all skipped": {{Name: "a.png", Path: filepath.Join(dir, "a.png")}},
	} {
		t.Run(name, func(t *testing.T) {
			req, err := buildHTMLRequest(discardLogger, html, "", images)
			require.NoError(t, err)

			raw, err := json.Marshal(req)
			require.NoError(t, err)
			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.NotContains(t, got, "images")
		})
	}
}

func TestBuildURLRequest(t *testing.T) {
	req, err := buildURLRequest("https://example.com")
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://example.com"}`, string(raw))
}

func TestBuildURLRequest_Invalid(t *testing.T) {
	for _, u := range []string{
		"",
		"example.com",
		"not a url",
		"ftp://example.com/file",
		"file:///etc/passwd",
		"http://",
		"://missing-scheme",
		"http://[::1",
	} {
		t.Run(u, func(t *testing.T) {
			_, err := buildURLRequest(u)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), `"`+u+`"`)
		})
	}
}
