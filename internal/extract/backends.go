package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/common"
	"github.com/reflectall/leasegen/internal/ocr"
	"github.com/reflectall/leasegen/internal/ollama"
	"github.com/reflectall/leasegen/internal/vision"
)

// TesseractBackend adapts the baseline local OCR extractor to the chain.
type TesseractBackend struct {
	e *ocr.Extractor
}

func NewTesseractBackend(e *ocr.Extractor) *TesseractBackend {
	return &TesseractBackend{e: e}
}

func (b *TesseractBackend) Name() constants.OCRBackend { return constants.BackendTesseract }

func (b *TesseractBackend) Extract(ctx context.Context, doc RawDocument) (ExtractionResult, error) {
	r, err := b.e.Extract(ctx, doc.Path)
	return ExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		Method:     r.Method,
		Confidence: r.Confidence,
		Warnings:   r.Warnings,
	}, err
}

// OllamaBackend is the AI-assisted local pipeline: baseline OCR for the
// text, then a structured parse of identity documents by the local model.
// When the model service is unreachable the backend reports failure and
// the chain degrades to the plain baseline.
type OllamaBackend struct {
	ocr    *ocr.Extractor
	client *ollama.Client
}

func NewOllamaBackend(e *ocr.Extractor, c *ollama.Client) *OllamaBackend {
	return &OllamaBackend{ocr: e, client: c}
}

func (b *OllamaBackend) Name() constants.OCRBackend { return constants.BackendOllama }

func (b *OllamaBackend) Extract(ctx context.Context, doc RawDocument) (ExtractionResult, error) {
	if !b.client.Available(ctx) {
		return ExtractionResult{}, fmt.Errorf("ollama: %w", common.ErrBackendUnavailable)
	}

	r, err := b.ocr.Extract(ctx, doc.Path)
	if err != nil {
		return ExtractionResult{}, err
	}

	res := ExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		Method:     r.Method,
		Confidence: r.Confidence,
		Warnings:   r.Warnings,
	}

	// Structured assist only pays off for identity paperwork; invoices and
	// statements go through the pattern tables on text alone.
	if doc.Kind == constants.KindIdentityFICA && r.Text != "" {
		fields, ferr := b.client.ParseIdentityFields(ctx, r.Text)
		if ferr != nil {
			res.Warnings = append(res.Warnings, ferr.Error())
		} else {
			res.Fields = fields
		}
	}
	return res, nil
}

// VisionBackend adapts the cloud OCR provider to the chain.
type VisionBackend struct {
	client *vision.Client
}

func NewVisionBackend(c *vision.Client) *VisionBackend {
	return &VisionBackend{client: c}
}

func (b *VisionBackend) Name() constants.OCRBackend { return constants.BackendGDocAI }

func (b *VisionBackend) Extract(ctx context.Context, doc RawDocument) (ExtractionResult, error) {
	text, pages, err := b.client.ExtractText(ctx, doc.Path)
	if err != nil {
		return ExtractionResult{}, err
	}
	return ExtractionResult{
		Text:       ocr.Normalize(text),
		Pages:      pages,
		Method:     "cloud",
		Confidence: 0.9,
	}, nil
}

// NewChainFromConfig wires the configured default backend plus the
// baseline local OCR into a fallback chain.
func NewChainFromConfig(cfg *common.Config, log *slog.Logger) *Chain {
	base := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	})
	baseline := NewTesseractBackend(base)

	var primary Backend
	switch constants.ParseBackend(cfg.OCR.DefaultBackend) {
	case constants.BackendOllama:
		client := ollama.NewClient(ollama.Config{
			URL:          cfg.Ollama.URL,
			Model:        cfg.Ollama.Model,
			ProbeTimeout: cfg.Ollama.ProbeTimeout,
			Timeout:      cfg.Ollama.Timeout,
			Temperature:  cfg.Ollama.Temperature,
		}, log)
		primary = NewOllamaBackend(base, client)
	case constants.BackendGDocAI:
		client := vision.NewClient(vision.Config{
			ProjectID:       cfg.Vision.ProjectID,
			Location:        cfg.Vision.Location,
			ProcessorID:     cfg.Vision.ProcessorID,
			CredentialsFile: cfg.Vision.CredentialsFile,
		}, log)
		primary = NewVisionBackend(client)
	default:
		primary = baseline
	}

	return NewChain(primary, baseline, cfg.OCR.ExtractTimeout, log)
}
