package contextgen

import (
	"path/filepath"
	"strings"
)

// languageTag infers the fenced-code-block language tag from a file's
// extension. Unrecognized extensions fall back to plain text.
func languageTag(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "python"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}
