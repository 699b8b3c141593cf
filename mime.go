package generatepdfs

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// fallbackTypes covers image formats some system MIME tables lack.
var fallbackTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
}

// DetectMIMEType returns a best-guess content type for the file at path.
//
// The extension is looked up in the system MIME table first, then in a
// built-in table of common image types. When neither knows the extension
// and the file exists, its content is sniffed. The result is never empty:
// unknown files are reported as application/octet-stream.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		if t, ok := fallbackTypes[strings.TrimPrefix(ext, ".")]; ok {
			return t
		}
	}

	if m, err := mimetype.DetectFile(path); err == nil && m.String() != octetStream {
		return m.String()
	}
	return octetStream
}
