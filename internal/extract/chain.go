package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reflectall/leasegen/constants"
)

// Chain runs the backend fallback policy: preferred backend first, then
// the baseline. Attempts are strictly sequential; the local backends share
// an external model-serving process that is not safe to race.
type Chain struct {
	primary  Backend
	baseline Backend
	timeout  time.Duration // per-backend invocation; 0 = no limit
	log      *slog.Logger
}

func NewChain(primary, baseline Backend, timeout time.Duration, log *slog.Logger) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{primary: primary, baseline: baseline, timeout: timeout, log: log}
}

// ExtractText resolves one document to text. Pre-decoded text documents
// short-circuit the chain entirely. Never returns an error: a total
// failure comes back as Success=false with a descriptive Error.
func (c *Chain) ExtractText(ctx context.Context, doc RawDocument) ExtractionResult {
	start := time.Now()

	if doc.Text != "" {
		return ExtractionResult{
			Text:        doc.Text,
			Success:     true,
			BackendUsed: constants.BackendText,
			Pages:       1,
			Method:      "text",
			Confidence:  1.0,
			Duration:    time.Since(start),
		}
	}

	attempts := c.order(doc)
	var failures []string
	for _, b := range attempts {
		if b == nil {
			continue
		}
		res, err := c.attempt(ctx, b, doc)
		if err == nil && strings.TrimSpace(res.Text) != "" {
			res.Success = true
			res.BackendUsed = b.Name()
			res.Duration = time.Since(start)
			c.log.Debug("extract.chain.ok",
				"document_id", doc.ID, "backend", b.Name(), "bytes", len(res.Text))
			return res
		}
		reason := "empty result"
		if err != nil {
			reason = err.Error()
		}
		failures = append(failures, fmt.Sprintf("%s: %s", b.Name(), reason))
		c.log.Warn("extract.chain.fallback",
			"document_id", doc.ID, "backend", b.Name(), "reason", reason)

		if ctx.Err() != nil {
			// caller abandoned the session; stop burning backends
			break
		}
	}

	return ExtractionResult{
		Success:  false,
		Duration: time.Since(start),
		Error:    "all backends failed: " + strings.Join(failures, "; "),
	}
}

func (c *Chain) order(doc RawDocument) []Backend {
	primary := c.primary
	if doc.PreferredBackend != "" && c.baseline != nil && doc.PreferredBackend == c.baseline.Name() {
		primary = nil
	}
	if primary == nil || (c.baseline != nil && primary.Name() == c.baseline.Name()) {
		return []Backend{c.baseline}
	}
	return []Backend{primary, c.baseline}
}

// attempt runs one backend under the configured timeout, converting panics
// and timeouts into plain errors so the chain can keep going.
func (c *Chain) attempt(ctx context.Context, b Backend, doc RawDocument) (res ExtractionResult, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend %s panicked: %v", b.Name(), r)
		}
	}()
	res, err = b.Extract(ctx, doc)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return res, err
}
