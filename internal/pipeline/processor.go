// Package pipeline coordinates a drafting session: extract text from every
// uploaded document concurrently, parse each into a partial field set, then
// reconcile the sets with any explicit input into one lease record.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/common"
	"github.com/reflectall/leasegen/internal/docparse"
	"github.com/reflectall/leasegen/internal/extract"
	"github.com/reflectall/leasegen/internal/lease"
	"github.com/reflectall/leasegen/internal/merge"
)

// Processor runs the extract→parse→merge pipeline for one session at a
// time. Safe for concurrent sessions; all per-session state is local.
type Processor struct {
	extractor extract.TextExtractor
	log       *slog.Logger
}

func NewProcessor(extractor extract.TextExtractor, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{extractor: extractor, log: log}
}

// Result is everything a session produces: the merged record plus the
// diagnostics the operator reviews before generating documents.
type Result struct {
	Record      *lease.Record
	Diagnostics *lease.Diagnostics
}

// docOutcome carries one document's extraction and parse through the
// fan-in, keeping input order for deterministic merging.
type docOutcome struct {
	doc    extract.RawDocument
	res    extract.ExtractionResult
	fields []docparse.PartialFieldSet
}

// Run processes a session: documents fan out across goroutines for
// extraction and parsing, then fold back in input order so the merge is
// deterministic regardless of which finishes first.
func (p *Processor) Run(ctx context.Context, docs []extract.RawDocument, explicit map[string]string) Result {
	sessionID := common.SessionIDFromContext(ctx)
	if sessionID == "" {
		sessionID = uuid.NewString()
		ctx = common.WithSessionID(ctx, sessionID)
	}
	diags := lease.NewDiagnostics(sessionID)
	log := p.log.With("session_id", sessionID)

	outcomes := make([]docOutcome, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc extract.RawDocument) {
			defer wg.Done()
			outcomes[i] = p.processOne(common.WithDocumentID(ctx, doc.ID.String()), doc, log)
		}(i, doc)
	}
	wg.Wait()

	merger := merge.New(log)
	for _, o := range outcomes {
		docID := o.doc.ID.String()
		if o.res.BackendUsed != "" {
			diags.Backends[docID] = string(o.res.BackendUsed)
		}
		for _, w := range o.res.Warnings {
			diags.Add(lease.DiagExtraction, "", docID, w)
		}
		if !o.res.Success {
			diags.Add(lease.DiagExtraction, "", docID, o.res.Error)
			continue
		}
		for _, fs := range o.fields {
			merger.AddDocument(fs, diags)
		}
	}

	// Explicit input goes in last but wins on tier, not on order.
	merger.AddExplicit(explicit, diags)

	rec := merger.Resolve(diags)
	log.Info("pipeline.session.done",
		"documents", len(docs),
		"diagnostics", len(diags.Items),
		"unset", len(diags.Unset))
	return Result{Record: rec, Diagnostics: diags}
}

// processOne extracts and parses a single document. Failures never escape;
// they come back inside the outcome for the fold to report.
func (p *Processor) processOne(ctx context.Context, doc extract.RawDocument, log *slog.Logger) docOutcome {
	out := docOutcome{doc: doc}
	out.res = p.extractor.ExtractText(ctx, doc)
	if !out.res.Success {
		log.Warn("pipeline.extract.failed", "document_id", doc.ID, "error", out.res.Error)
		return out
	}
	log.Debug("pipeline.extract.ok",
		"document_id", doc.ID,
		"backend", out.res.BackendUsed,
		"method", out.res.Method,
		"confidence", out.res.Confidence)

	if ext := docparse.ForKind(doc.Kind); ext != nil {
		fs := ext.Parse(out.res.Text)
		fs.SourceID = doc.ID.String()
		out.fields = append(out.fields, fs)
	} else if doc.Kind == constants.KindUnknown {
		log.Warn("pipeline.parse.skipped", "document_id", doc.ID, "reason", "unknown document kind")
	}

	// Structured fields from an AI-assisted backend merge as a second set
	// of the same kind, so tiering treats them like the pattern output.
	if len(out.res.Fields) > 0 {
		out.fields = append(out.fields, docparse.PartialFieldSet{
			Kind:     doc.Kind,
			SourceID: doc.ID.String() + "/model",
			Fields:   out.res.Fields,
		})
	}
	return out
}
