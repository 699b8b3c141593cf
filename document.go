package generatepdfs

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Status is the server-side lifecycle state of a Document.
type Status string

// Known statuses. The server may report others; they are kept verbatim.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Document describes a PDF generation job and its result.
//
// A Document is a snapshot: it never changes after it is returned. Use
// [Document.Refresh] to fetch the current server state as a new Document.
// It is safe to share between goroutines.
type Document struct {
	id          int64
	name        string
	status      Status
	downloadURL string
	createdAt   time.Time

	// client is used for Download and Refresh; the Document does not own it.
	client *Client
}

// ID returns the server-assigned identifier.
func (d *Document) ID() int64 { return d.id }

// Name returns the server-assigned file name.
func (d *Document) Name() string { return d.name }

// Status returns the status at the time the Document was fetched.
func (d *Document) Status() Status { return d.status }

// DownloadURL returns the URL the PDF can be fetched from. It may change
// between refreshes.
func (d *Document) DownloadURL() string { return d.downloadURL }

// CreatedAt returns the creation timestamp reported by the server.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// IsReady reports whether the PDF has been generated and can be downloaded.
func (d *Document) IsReady() bool {
	return d.status == StatusCompleted
}

// Download returns the PDF content. It fails with [ErrRuntime] when the
// Document is not ready.
func (d *Document) Download(ctx context.Context) ([]byte, error) {
	if !d.IsReady() {
		return nil, fmt.Errorf("%w: PDF is not ready yet. Current status: %s", ErrRuntime, d.status)
	}
	return d.client.DownloadPDF(ctx, d.downloadURL)
}

// DownloadToFile downloads the PDF and writes it to path, creating or
// truncating the file.
func (d *Document) DownloadToFile(ctx context.Context, path string) error {
	data, err := d.Download(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to save PDF to %s: %w", ErrRuntime, path, err)
	}
	return nil
}

// Refresh fetches the current state of the job. The receiver is left
// unchanged.
func (d *Document) Refresh(ctx context.Context) (*Document, error) {
	return d.client.GetPDF(ctx, d.id)
}

func (d *Document) String() string {
	return fmt.Sprintf("%s (id=%d, status=%s)", d.name, d.id, d.status)
}
