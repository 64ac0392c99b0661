package mime

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// extMimeMap refines content-detected "text/plain" using the extension, for
// the file types an HTML5 game package actually ships.
var extMimeMap = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".md":   "text/markdown",
	".csv":  "text/csv",
}

// DetectMimeType detects the MIME type from file content, refining by
// extension where content sniffing alone cannot distinguish text formats.
func DetectMimeType(content []byte, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	contentType := mimetype.Detect(content).String()
	if strings.HasPrefix(contentType, "text/plain") {
		if refined, ok := extMimeMap[ext]; ok {
			return strings.Replace(contentType, "text/plain", refined, 1)
		}
	}
	return contentType
}

// IsImage reports whether the buffer holds a decodable image.
func IsImage(content []byte) bool {
	return strings.HasPrefix(mimetype.Detect(content).String(), "image/")
}

// IsZip reports whether the buffer holds a zip archive.
func IsZip(content []byte) bool {
	return mimetype.Detect(content).Is("application/zip")
}
