// leasegend watches an inbox directory for lease-document drops. Each
// debounced batch becomes one drafting session; results land in the
// outbox as JSON and XLSX named by session ID.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reflectall/leasegen/internal/common"
	"github.com/reflectall/leasegen/internal/export"
	"github.com/reflectall/leasegen/internal/extract"
	"github.com/reflectall/leasegen/internal/ingest"
	"github.com/reflectall/leasegen/internal/pipeline"
)

func main() {
	zlog, _ := zap.NewProduction()
	defer func() { _ = zlog.Sync() }()
	log := zlog.Sugar()

	// internals log through slog
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := os.MkdirAll(cfg.Ingest.InboxDir, 0o755); err != nil {
		log.Fatalf("create inbox: %v", err)
	}
	if err := os.MkdirAll(cfg.Ingest.OutboxDir, 0o755); err != nil {
		log.Fatalf("create outbox: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Ingest.InboxDir},
		InitialScan: true,
		Debounce:    cfg.Ingest.Debounce,
	}, slogger)
	if err != nil {
		log.Fatalf("start watcher: %v", err)
	}
	go func() {
		for werr := range errs {
			log.Warnw("watcher error", "error", werr)
		}
	}()

	chain := extract.NewChainFromConfig(cfg, slogger)
	proc := pipeline.NewProcessor(chain, slogger)
	svc := export.NewService(slogger)
	batcher := ingest.NewBatcher(slogger)

	log.Infow("watching inbox",
		"inbox", cfg.Ingest.InboxDir,
		"outbox", cfg.Ingest.OutboxDir,
		"backend", cfg.OCR.DefaultBackend)

	for {
		docs := batcher.CollectBatch(ctx, events, cfg.Ingest.Debounce)
		if ctx.Err() != nil {
			break
		}
		if len(docs) == 0 {
			continue
		}

		sessionID := uuid.NewString()
		sctx := common.WithSessionID(ctx, sessionID)
		log.Infow("session start", "session_id", sessionID, "documents", len(docs))

		res := proc.Run(sctx, docs, nil)
		if err := writeOutputs(svc, cfg.Ingest.OutboxDir, sessionID, res); err != nil {
			log.Errorw("session export failed", "session_id", sessionID, "error", err)
			continue
		}
		log.Infow("session done",
			"session_id", sessionID,
			"diagnostics", len(res.Diagnostics.Items),
			"unset", len(res.Diagnostics.Unset))
	}

	log.Info("shutting down...")
	fmt.Println("stopped.")
}

func writeOutputs(svc *export.Service, outbox, sessionID string, res pipeline.Result) error {
	jsonBytes, err := svc.RecordJSON(res.Record, res.Diagnostics)
	if err != nil {
		return err
	}
	xlsxBytes, err := svc.RecordXLSX(res.Record, res.Diagnostics)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(outbox, sessionID+".json")
	if err := os.WriteFile(jsonPath, jsonBytes, 0o644); err != nil {
		return err
	}
	xlsxPath := filepath.Join(outbox, sessionID+".xlsx")
	return os.WriteFile(xlsxPath, xlsxBytes, 0o644)
}
