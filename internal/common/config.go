package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR    OCRConfig
	Ollama OllamaConfig
	Vision VisionConfig
	Ingest IngestConfig
}

// OCRConfig holds baseline OCR configuration
type OCRConfig struct {
	DefaultBackend   string // TESSERACT | OLLAMA | GDOCAI
	Pdftotext        string
	Pdftoppm         string
	Tesseract        string
	TesseractLang    string
	DPI              int
	MaxPages         int
	TessdataDir      string
	ExtractTimeout   time.Duration // per-backend invocation timeout
	ArtifactCacheDir string
}

// OllamaConfig holds settings for the optional AI-assisted pipeline
type OllamaConfig struct {
	URL          string
	Model        string
	ProbeTimeout time.Duration // availability probe; keep this short
	Timeout      time.Duration // generate call
	Temperature  float32
}

// VisionConfig holds settings for the optional cloud OCR provider
type VisionConfig struct {
	ProjectID       string
	Location        string
	ProcessorID     string
	CredentialsFile string
}

// IngestConfig holds watch-folder settings for the daemon
type IngestConfig struct {
	InboxDir  string
	OutboxDir string
	Debounce  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			DefaultBackend:   getEnv("OCR_BACKEND", "TESSERACT"),
			Pdftotext:        getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:         getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:        getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang:    getEnv("TESSERACT_LANG", "eng"),
			DPI:              getEnvAsInt("OCR_DPI", 300),
			MaxPages:         getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			ExtractTimeout:   getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
		},
		Ollama: OllamaConfig{
			URL:          getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:        getEnv("OLLAMA_MODEL", "llama3"),
			ProbeTimeout: getEnvAsDuration("OLLAMA_PROBE_TIMEOUT", 2*time.Second),
			Timeout:      getEnvAsDuration("OLLAMA_TIMEOUT", 30*time.Second),
			Temperature:  getEnvAsFloat32("OLLAMA_TEMPERATURE", 0.0),
		},
		Vision: VisionConfig{
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT_ID", ""),
			Location:        getEnv("GOOGLE_CLOUD_LOCATION", "eu"),
			ProcessorID:     getEnv("GOOGLE_CLOUD_PROCESSOR_ID", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Ingest: IngestConfig{
			InboxDir:  getEnv("INBOX_DIR", "./inbox"),
			OutboxDir: getEnv("OUTBOX_DIR", "./outbox"),
			Debounce:  getEnvAsDuration("INGEST_DEBOUNCE", 2*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.OCR.DefaultBackend {
	case "TESSERACT", "OLLAMA", "GDOCAI":
	default:
		return NewAppError("CONFIG_ERROR", "OCR_BACKEND must be one of TESSERACT|OLLAMA|GDOCAI", ErrInvalidInput)
	}
	if c.OCR.DefaultBackend == "GDOCAI" {
		if c.Vision.ProjectID == "" || c.Vision.ProcessorID == "" {
			return NewAppError("CONFIG_ERROR", "GDOCAI backend requires GOOGLE_CLOUD_PROJECT_ID and GOOGLE_CLOUD_PROCESSOR_ID", ErrInvalidInput)
		}
	}
	if c.Ollama.ProbeTimeout > 2*time.Second {
		// an unreachable optional service must never stall the pipeline
		c.Ollama.ProbeTimeout = 2 * time.Second
	}
	return nil
}
