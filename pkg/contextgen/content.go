package contextgen

import (
	"bytes"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

// binaryPlaceholder replaces the content of files that cannot be rendered as
// text. The file still counts as included; only its bytes are withheld.
const binaryPlaceholder = "[Content not included: File is not UTF-8 encoded, likely binary]"

// loadFileContent reads a file and returns its text and fenced-block language
// tag. Non-text content is substituted with a placeholder and a plain-text
// tag. The returned error is non-nil only when the file cannot be read at
// all, e.g. it disappeared after enumeration.
func loadFileContent(absPath, relPath string, logger *zap.Logger) (string, string, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", err
	}

	if isBinaryContent(data) {
		logger.Debug("Substituting placeholder for non-text file", zap.String("filePath", relPath))
		return binaryPlaceholder, "text", nil
	}
	return string(data), languageTag(relPath), nil
}

// isBinaryContent checks whether data is likely binary: a null byte or a
// high ratio of non-printable characters within the first 512 bytes, or
// bytes that do not form valid UTF-8.
func isBinaryContent(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	if !utf8.Valid(data) {
		return true
	}
	if len(sample) == 0 {
		return false
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	// More than 30% non-printable characters means likely binary.
	return float64(nonPrintable)/float64(len(sample)) > 0.3
}

// isPrintable checks if a byte represents a printable ASCII character.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}
