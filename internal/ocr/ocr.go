package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reflectall/leasegen/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir         string
	EnableTSVConfidence bool

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE | constants.TXT
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr" | "text"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Extractor is the baseline local OCR backend: poppler for digital PDFs,
// pdftoppm + tesseract for scanned ones and plain images.
type Extractor struct {
	cfg    Config
	runner Runner
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// minDigitalTextLen decides when a pdftotext result is too thin to trust
// and the PDF is treated as scanned.
const minDigitalTextLen = 64

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.TXT:
		b, err := os.ReadFile(path)
		if err != nil {
			return Result{SourceType: constants.TXT}, err
		}
		return Result{
			Text:       Normalize(string(b)),
			Pages:      1,
			SourceType: constants.TXT,
			Method:     "text",
			Confidence: 1.0,
			Duration:   time.Since(start),
		}, nil
	default:
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

// extractPDF prefers the embedded text layer and falls back to
// rasterize-and-OCR when the layer is missing or too thin.
func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && len(strings.TrimSpace(text)) >= minDigitalTextLen {
		txt := Normalize(text)
		return Result{
			Text:       txt,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.TesseractLang,
			Warnings:   warns,
			Confidence: 0.95,
		}, nil
	}
	if err != nil {
		warns = append(warns, err.Error())
	}

	text, pages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return Result{SourceType: constants.PDF, Warnings: warns}, err
	}
	txt := Normalize(text)
	return Result{
		Text:       txt,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
		Confidence: heuristicConfidence(txt),
	}, nil
}
