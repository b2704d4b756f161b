package constants

import "strings"

// Document source formats for extraction.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	TXT   = "TXT"
)

// AllowedExtensions holds the default allowed file extensions for document ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a source format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tif", "tiff":
		return IMAGE
	case "txt", "text":
		return TXT
	default:
		return ""
	}
}

// IsTextExt reports whether the extension denotes an already-decoded text file
// (pasted compliance-form text and the like), which bypasses OCR entirely.
func IsTextExt(ext string) bool {
	return MapExtToFormat(ext) == TXT
}
