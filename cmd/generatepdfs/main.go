// generatepdfs submits HTML files or web pages to the GeneratePDFs API and
// downloads the resulting PDFs.
//
// Usage:
//
//	generatepdfs html [options] <file.html>
//	generatepdfs url [options] <url>
//	generatepdfs get <id>
//	generatepdfs download [-o <file>] <id>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	generatepdfs "github.com/porticus-lab/generatepdfs-go"
	"github.com/porticus-lab/generatepdfs-go/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cmd, os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`generatepdfs - GeneratePDFs API client

Usage:
  generatepdfs html [options] <file.html>
  generatepdfs url [-o <file>] <url>
  generatepdfs get <id>
  generatepdfs download [-o <file>] <id>

Commands:
  html       Generate a PDF from a local HTML file
  url        Generate a PDF from a web page
  get        Show the current state of a PDF
  download   Download a completed PDF

HTML options:
  -css <file>          Stylesheet to apply
  -img <name>=<path>   Image referenced by name from the HTML; append
                       ,<mime-type> to override detection. Repeatable.
  -o <file>            Save the PDF when it is already complete

Environment:
  GENERATEPDFS_API_TOKEN        API token (required)
  GENERATEPDFS_BASE_URL         API endpoint (default https://api.generatepdfs.com)
  GENERATEPDFS_TIMEOUT_SECONDS  Request timeout (default 30)
  GENERATEPDFS_RATE_LIMIT       Max requests per second, 0 for none
  LOG_LEVEL, LOG_FORMAT         debug|info|warn|error, text|json

Examples:
  generatepdfs html -css style.css -img logo.png=assets/logo.png invoice.html
  generatepdfs url https://example.com
  generatepdfs download -o invoice.pdf 123
`)
}

// run dispatches a subcommand. Configuration is loaded only for known
// commands so usage errors do not require a token.
func run(ctx context.Context, cmd string, args []string, out io.Writer) error {
	var exec func(context.Context, *generatepdfs.Client, []string, io.Writer) error
	switch cmd {
	case "html":
		exec = runHTML
	case "url":
		exec = runURL
	case "get":
		exec = runGet
	case "download":
		exec = runDownload
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return exec(ctx, client, args, out)
}

func newClient(cfg *config.Config) (*generatepdfs.Client, error) {
	opts := []generatepdfs.Option{
		generatepdfs.WithBaseURL(cfg.BaseURL),
		generatepdfs.WithTimeout(cfg.Timeout),
		generatepdfs.WithLogger(cfg.Logger(os.Stderr)),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, generatepdfs.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	return generatepdfs.NewClient(cfg.APIToken, opts...)
}

// runHTML implements the "html" command.
func runHTML(ctx context.Context, c *generatepdfs.Client, args []string, out io.Writer) error {
	var (
		cssFile    string
		outputFile string
		inputFile  string
		images     []generatepdfs.Image
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-css":
			i++
			if i >= len(args) {
				return fmt.Errorf("-css requires an argument")
			}
			cssFile = args[i]
		case "-img":
			i++
			if i >= len(args) {
				return fmt.Errorf("-img requires an argument")
			}
			img, err := parseImage(args[i])
			if err != nil {
				return err
			}
			images = append(images, img)
		case "-o":
			i++
			if i >= len(args) {
				return fmt.Errorf("-o requires an argument")
			}
			outputFile = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown option: %s", args[i])
			}
			inputFile = args[i]
		}
	}
	if inputFile == "" {
		return fmt.Errorf("no input file specified")
	}

	doc, err := c.GenerateFromHTML(ctx, inputFile, cssFile, images)
	if err != nil {
		return err
	}
	return report(ctx, doc, outputFile, out)
}

// runURL implements the "url" command.
func runURL(ctx context.Context, c *generatepdfs.Client, args []string, out io.Writer) error {
	outputFile, rest, err := parseOutput(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("expected exactly one URL")
	}

	doc, err := c.GenerateFromURL(ctx, rest[0])
	if err != nil {
		return err
	}
	return report(ctx, doc, outputFile, out)
}

// runGet implements the "get" command.
func runGet(ctx context.Context, c *generatepdfs.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one PDF ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	doc, err := c.GetPDF(ctx, id)
	if err != nil {
		return err
	}
	return report(ctx, doc, "", out)
}

// runDownload implements the "download" command.
func runDownload(ctx context.Context, c *generatepdfs.Client, args []string, out io.Writer) error {
	outputFile, rest, err := parseOutput(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("expected exactly one PDF ID")
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}

	doc, err := c.GetPDF(ctx, id)
	if err != nil {
		return err
	}
	if outputFile == "" {
		if outputFile, err = localName(doc.Name()); err != nil {
			return err
		}
	}
	if err := doc.DownloadToFile(ctx, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s to %s\n", doc.Name(), outputFile)
	return nil
}

// report prints the document and saves it when outputFile is set and the
// PDF is already complete.
func report(ctx context.Context, doc *generatepdfs.Document, outputFile string, out io.Writer) error {
	fmt.Fprintf(out, "ID:       %d\n", doc.ID())
	fmt.Fprintf(out, "Name:     %s\n", doc.Name())
	fmt.Fprintf(out, "Status:   %s\n", doc.Status())
	fmt.Fprintf(out, "Created:  %s\n", doc.CreatedAt().Format("2006-01-02 15:04:05 MST"))

	if outputFile == "" {
		return nil
	}
	if !doc.IsReady() {
		fmt.Fprintf(out, "\nNot ready yet; run `generatepdfs download -o %s %d` later.\n", outputFile, doc.ID())
		return nil
	}
	if err := doc.DownloadToFile(ctx, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSaved to %s\n", outputFile)
	return nil
}

// parseOutput extracts a "-o <file>" option and returns the remaining arguments.
func parseOutput(args []string) (string, []string, error) {
	var (
		outputFile string
		rest       []string
	)
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-o":
			i++
			if i >= len(args) {
				return "", nil, fmt.Errorf("-o requires an argument")
			}
			outputFile = args[i]
		case strings.HasPrefix(args[i], "-"):
			return "", nil, fmt.Errorf("unknown option: %s", args[i])
		default:
			rest = append(rest, args[i])
		}
	}
	return outputFile, rest, nil
}

// parseImage parses "name=path" or "name=path,mime/type".
func parseImage(s string) (generatepdfs.Image, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return generatepdfs.Image{}, fmt.Errorf("invalid image %q, want name=path", s)
	}
	img := generatepdfs.Image{Name: name, Path: path}
	if i := strings.LastIndex(path, ","); i > 0 && strings.Contains(path[i+1:], "/") {
		img.Path = path[:i]
		img.MIMEType = path[i+1:]
	}
	return img, nil
}

// localName reduces a server-supplied file name to a plain name in the
// working directory.
func localName(name string) (string, error) {
	base := filepath.Base(filepath.Clean(strings.ReplaceAll(name, "\\", "/")))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", fmt.Errorf("unusable file name %q from server, pass -o", name)
	}
	return base, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF ID: %s", s)
	}
	return id, nil
}
