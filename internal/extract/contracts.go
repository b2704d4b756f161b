package extract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reflectall/leasegen/constants"
)

// RawDocument is one immutable input to the extraction engine: either a
// file on disk (image/PDF) or already-decoded text. Created per upload,
// never mutated.
type RawDocument struct {
	ID               uuid.UUID
	Path             string // file path; empty when Text is supplied directly
	Text             string // pre-decoded text; bypasses the backend chain
	Kind             constants.DocumentKind
	PreferredBackend constants.OCRBackend // zero value defers to configuration
}

// NewFileDocument builds a RawDocument for an on-disk file, inferring the
// kind from the filename when the caller passes constants.KindUnknown.
func NewFileDocument(path string, kind constants.DocumentKind) RawDocument {
	if kind == constants.KindUnknown || kind == "" {
		kind = constants.InferKind(path)
	}
	return RawDocument{ID: uuid.New(), Path: path, Kind: kind}
}

// NewTextDocument builds a RawDocument from pasted/pre-extracted text.
func NewTextDocument(text string, kind constants.DocumentKind) RawDocument {
	return RawDocument{ID: uuid.New(), Text: text, Kind: kind}
}

// ExtractionResult is the outcome of the backend chain for one document.
// Success=false means every backend in the chain failed; the chain never
// returns an error past this boundary.
type ExtractionResult struct {
	Text        string
	Success     bool
	BackendUsed constants.OCRBackend
	Pages       int
	Method      string // "pdf-text" | "pdf-ocr" | "image-ocr" | "text" | "cloud"
	Confidence  float32
	Duration    time.Duration
	Warnings    []string
	Error       string // descriptive, set only when Success=false

	// Fields carries structured output from AI-assisted backends, keyed by
	// canonical field name. Plain OCR backends leave it nil.
	Fields map[string]string
}

// Backend is one text-extraction strategy.
type Backend interface {
	Name() constants.OCRBackend
	// Extract returns text for the document. An error (or empty text)
	// makes the chain move on to the next backend.
	Extract(ctx context.Context, doc RawDocument) (ExtractionResult, error)
}

// TextExtractor is what the pipeline depends on: document in, normalized
// outcome out, no panics, no errors.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc RawDocument) ExtractionResult
}
