// Package generatepdfs is a client for the GeneratePDFs web service, which
// renders HTML documents and public web pages to PDF.
//
// # Generating a PDF
//
// Create a [Client] with an API token, then submit a local HTML file or a URL:
//
//	c, err := generatepdfs.NewClient(os.Getenv("GENERATEPDFS_API_TOKEN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := c.GenerateFromHTML(ctx, "invoice.html", "invoice.css", []generatepdfs.Image{
//	    {Name: "logo.png", Path: "assets/logo.png"},
//	})
//	doc, err  = c.GenerateFromURL(ctx, "https://example.com")
//
// Images are referenced from the HTML by Name. Their MIME type is detected
// from the file unless [Image.MIMEType] is set. Images whose file cannot be
// read are left out of the request instead of failing it.
//
// # Documents
//
// Generation is asynchronous on the server. A [Document] is a snapshot of
// the job; call [Document.Refresh] to obtain a new snapshot and
// [Document.IsReady] to check whether the PDF can be downloaded:
//
//	for !doc.IsReady() {
//	    time.Sleep(time.Second)
//	    if doc, err = doc.Refresh(ctx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	pdf, err := doc.Download(ctx)          // []byte
//	err = doc.DownloadToFile(ctx, "out.pdf") // write to disk
//
// # Errors
//
// Every error matches either [ErrInvalidArgument] (bad local input or a
// malformed API response) or [ErrRuntime] (HTTP failures, documents that
// are not ready, failed writes). HTTP failures are reported as [*APIError]:
//
//	var apiErr *generatepdfs.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
//	    // ...
//	}
//
// The library never retries a request.
package generatepdfs
