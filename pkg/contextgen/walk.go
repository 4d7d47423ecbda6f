package contextgen

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"contextgen/pkg/ignore"

	"go.uber.org/zap"
)

// collectEligibleFiles walks the project root and returns the sorted,
// forward-slash relative paths of every file that survives filtering.
// Excluded directories are pruned before descending into them; per-entry
// errors are logged and skipped, never fatal.
func collectEligibleFiles(root string, matcher *ignore.Matcher, skip map[string]struct{}, outputStem string, logger *zap.Logger, verbose bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.Excluded(rel) || matcher.Excluded(rel+"/") {
				if verbose {
					logger.Debug("Skipping ignored directory during traversal", zap.String("directory", rel))
				}
				return filepath.SkipDir
			}
			return nil
		}

		if _, isPreamble := skip[rel]; isPreamble {
			return nil
		}
		// Never re-ingest previously generated context output.
		if outputStem != "" && strings.Contains(rel, outputStem) {
			return nil
		}
		if matcher.Excluded(rel) {
			if verbose {
				logger.Debug("Skipping ignored file during traversal", zap.String("filePath", rel))
			}
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return files, err
	}

	sort.Strings(files)
	logger.Debug("Completed file traversal and collection", zap.Int("eligibleFiles", len(files)))
	return files, nil
}
