// Package vision wraps Google Document AI as an optional cloud OCR
// provider. Credentials and processor identity come from configuration;
// nothing here is hard-coded.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	Location        string // e.g. "eu" or "us"
	ProcessorID     string
	CredentialsFile string
}

type Client struct {
	cfg Config
	log *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Location == "" {
		cfg.Location = "eu"
	}
	return &Client{cfg: cfg, log: log}
}

// Configured reports whether enough settings are present to attempt a call.
func (c *Client) Configured() bool {
	return c.cfg.ProjectID != "" && c.cfg.ProcessorID != ""
}

// ExtractText sends the file to Document AI and returns the full text of
// the processed document.
func (c *Client) ExtractText(ctx context.Context, path string) (string, int, error) {
	if !c.Configured() {
		return "", 0, fmt.Errorf("document AI not configured")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read document: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", c.cfg.Location)
	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if c.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.cfg.CredentialsFile))
	}
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return "", 0, fmt.Errorf("create document AI client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		c.cfg.ProjectID, c.cfg.Location, c.cfg.ProcessorID)

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return "", 0, fmt.Errorf("process document: %w", err)
	}

	doc := resp.GetDocument()
	pages := len(doc.GetPages())
	c.log.Debug("vision.process.ok", "path", path, "pages", pages, "bytes", len(doc.GetText()))
	return doc.GetText(), pages, nil
}
