package constants

import "strings"

// OCRBackend identifies one text-extraction strategy in the fallback chain.
type OCRBackend string

const (
	BackendTesseract OCRBackend = "TESSERACT" // baseline local OCR
	BackendOllama    OCRBackend = "OLLAMA"    // AI-assisted local pipeline
	BackendGDocAI    OCRBackend = "GDOCAI"    // Google Document AI
	BackendText      OCRBackend = "TEXT"      // already-decoded text, no OCR
)

// ParseBackend canonicalizes a backend name from configuration.
// Unrecognized input falls back to the baseline.
func ParseBackend(s string) OCRBackend {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OLLAMA", "AI":
		return BackendOllama
	case "GDOCAI", "GOOGLE", "DOCUMENTAI":
		return BackendGDocAI
	default:
		return BackendTesseract
	}
}
