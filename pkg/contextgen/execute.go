package contextgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contextgen/pkg/ignore"

	"go.uber.org/zap"
)

// Run executes one context-generation pass: load ignore rules, collect
// eligible files, assemble budget-bounded parts, and write them under the
// project root. All recoverable conditions (missing docs, unreadable or
// vanished files, malformed patterns) are substituted or annotated in the
// output; the returned error covers only the inability to walk the root or
// write a part.
func Run(cfg Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.applyDefaults()

	startTime := time.Now()
	logger.Info("Starting context generation", zap.String("directory", cfg.Root))

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		logger.Error("Failed to resolve directory path", zap.Error(err))
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	preamble := buildPreamble(root, &cfg, time.Now(), logger)

	matcher := ignore.NewMatcher(logger)
	if err := matcher.CompileFile(filepath.Join(root, ".gitignore")); err != nil {
		logger.Warn("Failed to load .gitignore, continuing without it", zap.Error(err))
	}
	matcher.CompileLines(cfg.IgnorePatterns...)
	matcher.SetExcludeFiles(cfg.ExcludeFiles...)
	matcher.SetExcludeFolders(cfg.ExcludeFolders...)

	outputBase := filepath.Base(cfg.OutputFilename)
	outputStem := strings.TrimSuffix(outputBase, filepath.Ext(outputBase))

	eligible, err := collectEligibleFiles(root, matcher, preamble.Skip, outputStem, logger, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	logger.Info("Collected eligible files", zap.Int("count", len(eligible)))

	asm := NewAssembler(preamble.InitialHeader, preamble.ContinuationHeader,
		cfg.MaxOutputCharacters, cfg.SplitIfTruncated, logger)

	for _, rel := range eligible {
		absPath := filepath.Join(root, filepath.FromSlash(rel))
		content, lang, loadErr := loadFileContent(absPath, rel, logger)
		if loadErr != nil {
			if !asm.AppendMissing(rel) {
				break
			}
			continue
		}
		if !asm.AppendFile(rel, content, lang) {
			break
		}
	}

	parts := asm.Finish(len(eligible))

	result := &Result{
		DocsIncluded:  preamble.Docs,
		EligibleFiles: len(eligible),
		IncludedFiles: asm.Included(),
	}

	for _, part := range parts {
		name := PartFilename(cfg.OutputFilename, part.Number, len(parts))
		fullPath := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			logger.Error("Failed to create output directory", zap.String("path", fullPath), zap.Error(err))
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(fullPath, []byte(part.Text), 0o644); err != nil {
			logger.Error("Failed to write output part", zap.String("path", fullPath), zap.Error(err))
			return nil, fmt.Errorf("failed to write output part: %w", err)
		}
		logger.Info("Wrote context part",
			zap.String("file", name),
			zap.Int("codeFiles", part.FileCount),
			zap.Int("characters", charCount(part.Text)),
			zap.Bool("truncated", part.Truncated))
		result.Parts = append(result.Parts, PartInfo{
			Name:       name,
			FileCount:  part.FileCount,
			Characters: charCount(part.Text),
			Truncated:  part.Truncated,
		})
	}

	logger.Info("Context generation completed",
		zap.Int("parts", len(result.Parts)),
		zap.Int("includedFiles", len(result.IncludedFiles)),
		zap.Int("eligibleFiles", result.EligibleFiles),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}
