package contextgen

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Preamble carries the rendered document headers plus the set of files that
// must not reappear as codebase blocks.
type Preamble struct {
	InitialHeader      string              // Full header for part 1: overview, instructions, supplemental docs.
	ContinuationHeader string              // Short header for parts 2+.
	Docs               []string            // Supplemental doc paths included, sorted.
	Skip               map[string]struct{} // Preamble files, keyed by normalized relative path.
}

// buildPreamble assembles the part-1 and continuation headers from the
// project's documentation files. Missing README or AI-instructions files are
// substituted with placeholder notices; the run always continues.
func buildPreamble(root string, cfg *Config, now time.Time, logger *zap.Logger) *Preamble {
	readmeContent := readDocOrPlaceholder(root, cfg.ReadmeFilename,
		fmt.Sprintf("## Project Overview\n\n`%s` not found. Please create one with project description.", cfg.ReadmeFilename),
		logger)

	aiContent := readDocOrPlaceholder(root, cfg.AIInstructionsFilename,
		fmt.Sprintf("## Instructions for AI Assistant\n\n`%s` not found. Please create one with instructions for the AI assistant.", cfg.AIInstructionsFilename),
		logger)

	docs := gatherDocPaths(root, cfg, logger)

	var docsSection strings.Builder
	var included []string
	for _, docPath := range docs {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(docPath)))
		if err != nil {
			logger.Warn("Skipping unreadable supplemental doc", zap.String("docPath", docPath), zap.Error(err))
			continue
		}
		docsSection.WriteString(fmt.Sprintf("## %s\n\n", docTitle(docPath)))
		docsSection.Write(content)
		docsSection.WriteString("\n\n")
		included = append(included, docPath)
	}

	timestamp := now.Format("2006-01-02 15:04:05")

	initial := fmt.Sprintf(`
# Project Context for AI Assistant - %s

**Generated On:** %s

This document consolidates all necessary information for an AI assistant to understand the "%s" project. It includes the project overview, AI instructions, supplemental documentation (if any), and the full current codebase.

%s

%s

%s## Current Codebase Files

`, cfg.ProjectName, timestamp, cfg.ProjectName, readmeContent, aiContent, docsSection.String())

	continuation := fmt.Sprintf(`
# Project Context for AI Assistant - %s (Continued)

**Generated On:** %s

This document is a continuation of the project codebase. Please ensure all parts have been provided.

## Current Codebase Files (Continued)

`, cfg.ProjectName, timestamp)

	skip := map[string]struct{}{
		filepath.ToSlash(cfg.ReadmeFilename):         {},
		filepath.ToSlash(cfg.AIInstructionsFilename): {},
	}
	for _, docPath := range docs {
		skip[docPath] = struct{}{}
	}

	return &Preamble{
		InitialHeader:      initial,
		ContinuationHeader: continuation,
		Docs:               included,
		Skip:               skip,
	}
}

// readDocOrPlaceholder returns the file's content, or the placeholder notice
// when the file does not exist or cannot be read.
func readDocOrPlaceholder(root, relPath, placeholder string, logger *zap.Logger) string {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		logger.Debug("Documentation file not found, using placeholder", zap.String("filePath", relPath), zap.Error(err))
		return placeholder
	}
	return string(content)
}

// gatherDocPaths merges the explicit doc list with a recursive Markdown scan
// of each doc folder, deduplicated and sorted for deterministic output.
func gatherDocPaths(root string, cfg *Config, logger *zap.Logger) []string {
	seen := map[string]struct{}{}
	for _, docPath := range cfg.OptionalDocs {
		seen[filepath.ToSlash(docPath)] = struct{}{}
	}

	for _, folder := range cfg.DocFolders {
		folderAbs := filepath.Join(root, filepath.FromSlash(folder))
		info, err := os.Stat(folderAbs)
		if err != nil || !info.IsDir() {
			logger.Warn("Doc folder missing or not a directory", zap.String("folder", folder))
			continue
		}
		walkErr := filepath.WalkDir(folderAbs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("Error scanning doc folder", zap.String("path", path), zap.Error(err))
				return nil
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			seen[filepath.ToSlash(rel)] = struct{}{}
			return nil
		})
		if walkErr != nil {
			logger.Warn("Failed to scan doc folder", zap.String("folder", folder), zap.Error(walkErr))
		}
	}

	docs := make([]string, 0, len(seen))
	for docPath := range seen {
		docs = append(docs, docPath)
	}
	sort.Strings(docs)
	return docs
}

// docTitle derives a section title from a doc file's stem:
// "docs/style_guide.md" becomes "Style Guide".
func docTitle(docPath string) string {
	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
