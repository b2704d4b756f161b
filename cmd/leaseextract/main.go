// leaseextract processes one batch of lease documents from a directory and
// writes the merged record plus diagnostics to JSON and XLSX.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reflectall/leasegen/internal/common"
	"github.com/reflectall/leasegen/internal/docparse"
	"github.com/reflectall/leasegen/internal/export"
	"github.com/reflectall/leasegen/internal/extract"
	"github.com/reflectall/leasegen/internal/ingest"
	"github.com/reflectall/leasegen/internal/pipeline"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// setFlags collects repeated -set key=value pairs of explicit field input.
type setFlags map[string]string

func (s setFlags) String() string { return "" }

func (s setFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	s[strings.TrimSpace(key)] = strings.TrimSpace(value)
	return nil
}

func main() {
	explicit := setFlags{}
	var (
		dir      = flag.String("dir", "", "directory of lease documents to process (required)")
		out      = flag.String("out", "", "output directory (defaults to -dir)")
		patterns = flag.String("patterns", "", "YAML pattern override file (optional)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Var(explicit, "set", "explicit field value as key=value; repeatable, beats extracted values")
	flag.Parse()

	if *dir == "" {
		printError("Error: -dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = *dir
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *patterns != "" {
		if err := docparse.LoadOverrides(*patterns); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("patterns.overrides.loaded", "path", *patterns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = common.WithSessionID(ctx, uuid.NewString())

	batcher := ingest.NewBatcher(logger)
	results, stats, err := batcher.ScanDirectory(ctx, *dir, true)
	if err != nil {
		logger.Error("ingest.scan.failed", "dir", *dir, "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		if r.Err != "" {
			logger.Warn("ingest.file.failed", "path", r.SourcePath, "error", r.Err)
		}
	}
	logger.Info("ingest.scan.done",
		"scanned", stats.Scanned, "matched", stats.Matched,
		"succeeded", stats.Succeeded, "deduplicated", stats.Deduplicated, "failed", stats.Failed)

	docs := batcher.Drain()
	if len(docs) == 0 {
		printError("Error: no processable documents under %s\n", *dir)
		os.Exit(1)
	}

	chain := extract.NewChainFromConfig(cfg, logger)
	proc := pipeline.NewProcessor(chain, logger)
	res := proc.Run(ctx, docs, explicit)

	svc := export.NewService(logger)
	jsonBytes, err := svc.RecordJSON(res.Record, res.Diagnostics)
	if err != nil {
		logger.Error("export.json.failed", "error", err)
		os.Exit(1)
	}
	xlsxBytes, err := svc.RecordXLSX(res.Record, res.Diagnostics)
	if err != nil {
		logger.Error("export.xlsx.failed", "error", err)
		os.Exit(1)
	}

	jsonPath := filepath.Join(*out, "lease-data.json")
	xlsxPath := filepath.Join(*out, "lease-data.xlsx")
	if err := os.WriteFile(jsonPath, jsonBytes, 0o644); err != nil {
		logger.Error("export.write.failed", "path", jsonPath, "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(xlsxPath, xlsxBytes, 0o644); err != nil {
		logger.Error("export.write.failed", "path", xlsxPath, "error", err)
		os.Exit(1)
	}

	logger.Info("leaseextract.done",
		"documents", len(docs),
		"diagnostics", len(res.Diagnostics.Items),
		"unset", len(res.Diagnostics.Unset),
		"json", jsonPath,
		"xlsx", xlsxPath)
}
