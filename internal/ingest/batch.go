package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/extract"
)

// FileResult is the per-file ingest outcome.
type FileResult struct {
	SourcePath   string
	Deduplicated bool
	HashHex      string
	FileExt      string
	Kind         constants.DocumentKind
	Err          string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Batcher collects incoming files into one drafting session's worth of
// documents, deduplicating identical content by hash. A re-dropped copy
// of a statement must not produce a second merge contribution.
type Batcher struct {
	log  *slog.Logger
	seen map[string]struct{} // content hashes already admitted
	docs []extract.RawDocument
}

func NewBatcher(log *slog.Logger) *Batcher {
	if log == nil {
		log = slog.Default()
	}
	return &Batcher{log: log, seen: make(map[string]struct{})}
}

// Add hashes and admits one file. Text files are read up front so they
// bypass the OCR chain; everything else stays a path.
func (b *Batcher) Add(path string) (FileResult, error) {
	var out FileResult

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, err
	}
	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !AllowedExt(ext) {
		return out, errors.New("unsupported or missing extension")
	}

	f, err := os.Open(abs)
	if err != nil {
		return out, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return out, err
	}
	sum := hex.EncodeToString(h.Sum(nil))

	kind := constants.InferKind(abs)
	out = FileResult{SourcePath: abs, HashHex: sum, FileExt: ext, Kind: kind}
	if _, dup := b.seen[sum]; dup {
		out.Deduplicated = true
		b.log.Debug("ingest.batch.dedup", "path", abs, "hash", sum)
		return out, nil
	}
	b.seen[sum] = struct{}{}

	doc := extract.NewFileDocument(abs, kind)
	if constants.IsTextExt(ext) {
		raw, err := os.ReadFile(abs)
		if err != nil {
			return out, err
		}
		doc.Text = string(raw)
	}
	b.docs = append(b.docs, doc)
	b.log.Info("ingest.batch.added", "path", abs, "kind", kind, "ext", ext)
	return out, nil
}

// Drain returns the batch in arrival order and resets for the next one.
// Hash memory is kept so a file cannot re-enter a later batch.
func (b *Batcher) Drain() []extract.RawDocument {
	docs := b.docs
	b.docs = nil
	return docs
}

// Len reports the number of documents waiting in the batch.
func (b *Batcher) Len() int { return len(b.docs) }

// ScanDirectory walks root and adds all matching files to the batcher.
func (b *Batcher) ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			return nil
		}
		stats.Matched++

		r, err := b.Add(path)
		if err != nil {
			results = append(results, FileResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})
	if err != nil {
		return results, stats, err
	}
	return results, stats, nil
}

// CollectBatch blocks until the event stream goes quiet for the settle
// window, then drains whatever arrived. Returns nil when ctx ends first.
func (b *Batcher) CollectBatch(ctx context.Context, events <-chan string, settle time.Duration) []extract.RawDocument {
	timer := time.NewTimer(settle)
	defer timer.Stop()
	armed := b.Len() > 0

	for {
		select {
		case <-ctx.Done():
			return b.Drain()
		case path, ok := <-events:
			if !ok {
				return b.Drain()
			}
			if _, err := b.Add(path); err != nil {
				b.log.Warn("ingest.batch.rejected", "path", path, "error", err)
				continue
			}
			armed = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(settle)
		case <-timer.C:
			if armed && b.Len() > 0 {
				return b.Drain()
			}
			timer.Reset(settle)
		}
	}
}
