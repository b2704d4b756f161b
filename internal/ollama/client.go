// Package ollama talks to a local Ollama instance for AI-assisted parsing
// of OCR text. The service is optional: callers probe Available first and
// silently degrade when it is unreachable or the model is not pulled.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	URL          string
	Model        string
	ProbeTimeout time.Duration // bounded; an unreachable optional service must not stall extraction
	Timeout      time.Duration
	Temperature  float32
}

type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.URL == "" {
		cfg.URL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	if cfg.ProbeTimeout <= 0 || cfg.ProbeTimeout > 2*time.Second {
		cfg.ProbeTimeout = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Available probes /api/tags and checks the configured model is loaded.
// Any failure within the probe timeout reads as "not available".
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.cfg.URL, "/")+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("ollama.probe.unreachable", "url", c.cfg.URL, "error", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if strings.Contains(m.Name, c.cfg.Model) {
			return true
		}
	}
	c.log.Debug("ollama.probe.model_missing", "model", c.cfg.Model)
	return false
}

// generate posts to /api/generate with format=json and returns the raw
// model response string.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
		"options": map[string]any{
			"temperature": c.cfg.Temperature,
		},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	url := strings.TrimRight(c.cfg.URL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("ollama.generate.request", "req_id", reqID, "model", c.cfg.Model, "prompt_len", len(prompt))

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("ollama.generate.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	c.log.Info("ollama.generate.response", "req_id", reqID, "status", resp.StatusCode,
		"bytes", len(raw), "elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}

	var gen struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return gen.Response, nil
}
