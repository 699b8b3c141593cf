package generatepdfs

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/url"
	"os"
)

// Image is a local image made available to the HTML being rendered.
// The HTML references it by Name.
type Image struct {
	Name string
	Path string
	// MIMEType overrides detection when non-empty.
	MIMEType string
}

// generateRequest is the JSON body of POST /pdfs/generate.
type generateRequest struct {
	HTML   *string        `json:"html,omitempty"`
	CSS    *string        `json:"css,omitempty"`
	Images []imagePayload `json:"images,omitempty"`
	URL    string         `json:"url,omitempty"`
}

type imagePayload struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	MIMEType string `json:"mimeType"`
}

// buildHTMLRequest reads and encodes the HTML, optional CSS and images.
// Images that are incomplete or unreadable are skipped rather than failing
// the whole request.
func buildHTMLRequest(log *slog.Logger, htmlPath, cssPath string, images []Image) (*generateRequest, error) {
	html, err := readLocalFile(htmlPath)
	if err != nil {
		return nil, invalidArgument("HTML file not found or not readable: %s", htmlPath)
	}
	req := &generateRequest{HTML: encode(html)}

	if cssPath != "" {
		css, err := readLocalFile(cssPath)
		if err != nil {
			return nil, invalidArgument("CSS file not found or not readable: %s", cssPath)
		}
		req.CSS = encode(css)
	}

	for _, img := range images {
		if img.Name == "" || img.Path == "" {
			log.Debug("skipping incomplete image", "name", img.Name, "path", img.Path)
			continue
		}
		content, err := readLocalFile(img.Path)
		if err != nil {
			log.Debug("skipping unreadable image", "name", img.Name, "path", img.Path, "error", err)
			continue
		}
		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = DetectMIMEType(img.Path)
		}
		req.Images = append(req.Images, imagePayload{
			Name:     img.Name,
			Content:  base64.StdEncoding.EncodeToString(content),
			MIMEType: mimeType,
		})
	}
	return req, nil
}

// buildURLRequest accepts only absolute http and https URLs.
func buildURLRequest(rawURL string) (*generateRequest, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalidArgument("invalid URL: %q", rawURL)
	}
	return &generateRequest{URL: rawURL}, nil
}

// readLocalFile reads a regular file fully into memory.
func readLocalFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("not a regular file")
	}
	return os.ReadFile(path)
}

func encode(b []byte) *string {
	s := base64.StdEncoding.EncodeToString(b)
	return &s
}
