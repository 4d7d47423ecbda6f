// Package ignore implements gitignore-style path exclusion: pattern lines are
// compiled into ordered rules with negation, and a path's final verdict is the
// last rule that matched it. The pattern grammar is a deliberate approximation
// of gitignore, not a full reimplementation.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Rule is one compiled ignore-pattern line.
type Rule struct {
	Line   string // Original pattern line.
	LineNo int    // Line number in the source (1-based).
	Negate bool   // Indicates if the pattern is a negation (starts with '!').

	tokens       []token
	anchored     bool // Pattern started with '/': matches only from the path root.
	dirOnly      bool // Pattern ended with '/': matches the directory and anything below it.
	hasSeparator bool // Pattern stem contains '/'; tracked at compile time, never inferred later.
}

// token is one matchable unit of a compiled pattern: a literal rune, '*'
// (any run of characters), or '?' (exactly one character).
type token struct {
	star bool
	any  bool
	lit  rune
}

// Matcher holds an ordered rule list plus static file/folder exclusion sets.
type Matcher struct {
	Rules []*Rule

	excludeFiles   map[string]struct{}
	excludeFolders []string
	logger         *zap.Logger
}

// NewMatcher initializes a Matcher with an optional logger.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		excludeFiles: map[string]struct{}{},
		logger:       logger,
	}
}

// SetExcludeFiles registers exact relative paths that are always excluded,
// before any pattern rule is consulted.
func (m *Matcher) SetExcludeFiles(paths ...string) {
	for _, p := range paths {
		m.excludeFiles[normalizePath(p)] = struct{}{}
	}
}

// SetExcludeFolders registers folders whose entire subtree is always excluded.
func (m *Matcher) SetExcludeFolders(paths ...string) {
	for _, p := range paths {
		folder := strings.TrimSuffix(normalizePath(p), "/")
		if folder != "" {
			m.excludeFolders = append(m.excludeFolders, folder)
		}
	}
}

// CompileLines compiles a set of ignore pattern lines and appends them to the
// rule list. Blank lines and comments are skipped; a malformed line compiles
// to a rule that matches nothing rather than failing the run.
func (m *Matcher) CompileLines(lines ...string) {
	for i, line := range lines {
		// Line numbers follow the source: skipped lines still count.
		rule := parsePatternLine(line, i+1)
		if rule == nil {
			continue
		}
		m.Rules = append(m.Rules, rule)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", rule.LineNo),
			zap.String("pattern", rule.Line),
			zap.Bool("negate", rule.Negate))
	}
}

// CompileFile reads an ignore file and compiles its lines. A missing file is
// not an error: the matcher simply gains no rules from it.
func (m *Matcher) CompileFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", fpath))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", fpath), zap.Error(err))
		return err
	}

	lines := strings.Split(string(content), "\n")
	m.CompileLines(lines...)
	m.logger.Debug("Compiled ignore patterns", zap.String("filePath", fpath), zap.Int("lineCount", len(lines)))
	return nil
}

// Excluded reports whether the given relative path should be excluded.
// It is total: any string input, including the empty string, yields a verdict.
func (m *Matcher) Excluded(path string) bool {
	excluded, _ := m.ExcludedWithRule(path)
	return excluded
}

// ExcludedWithRule reports whether the path is excluded and returns the rule
// that decided the verdict. Static file/folder exclusions are checked first
// and short-circuit with a nil rule; otherwise every pattern rule is
// evaluated in order and the last match wins, so a later negation rescues a
// previously excluded path.
func (m *Matcher) ExcludedWithRule(path string) (bool, *Rule) {
	normalized := normalizePath(path)

	if m.staticallyExcluded(normalized) {
		return true, nil
	}

	base := normalized
	if idx := strings.LastIndex(normalized, "/"); idx >= 0 {
		base = normalized[idx+1:]
	}

	excluded := false
	var decided *Rule
	for _, rule := range m.Rules {
		if rule.Matches(normalized) {
			excluded = !rule.Negate
			decided = rule
		}
		if !rule.hasSeparator && !rule.anchored && rule.matchesSegment(base) {
			excluded = !rule.Negate
			decided = rule
		}
	}
	return excluded, decided
}

// staticallyExcluded checks the explicit exclusion sets: an exact file match,
// an exact folder match, or an excluded folder as ancestor.
func (m *Matcher) staticallyExcluded(path string) bool {
	if _, ok := m.excludeFiles[path]; ok {
		return true
	}
	for _, folder := range m.excludeFolders {
		if path == folder || strings.HasPrefix(path, folder+"/") {
			return true
		}
	}
	return false
}

// Matches reports whether the rule applies to the full relative path.
// Anchored rules match only from the start; separator-free rules may also
// match immediately after any '/'.
func (r *Rule) Matches(path string) bool {
	if r.matchSubtree(path) {
		return true
	}
	if r.anchored || r.hasSeparator {
		return false
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '/' && r.matchSubtree(path[i+1:]) {
			return true
		}
	}
	return false
}

// matchSubtree matches the tokens against p, or against any directory prefix
// of p for non-directory rules: a rule that excludes "dist" also excludes
// everything nested below "dist/".
func (r *Rule) matchSubtree(p string) bool {
	if matchTokens(r.tokens, p) {
		return true
	}
	if r.dirOnly {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && matchTokens(r.tokens, p[:i]) {
			return true
		}
	}
	return false
}

// matchesSegment tests the final path segment alone.
func (r *Rule) matchesSegment(base string) bool {
	return matchTokens(r.tokens, base)
}

// parsePatternLine compiles a single pattern line into a Rule.
// Returns nil for empty lines and comments.
func parsePatternLine(line string, lineNo int) *Rule {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	// Handle negation.
	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Handle escaped leading '#' and '!'.
	if strings.HasPrefix(trimmed, "\\#") || strings.HasPrefix(trimmed, "\\!") {
		trimmed = trimmed[1:]
	}

	// Root-relative patterns are anchored after stripping the separator.
	anchored := strings.HasPrefix(trimmed, "/")
	core := strings.TrimPrefix(trimmed, "/")

	dirOnly := strings.HasSuffix(core, "/")
	stem := strings.TrimSuffix(core, "/")

	rule := &Rule{
		Line:         line,
		LineNo:       lineNo,
		Negate:       negate,
		anchored:     anchored,
		dirOnly:      dirOnly,
		hasSeparator: strings.Contains(stem, "/"),
	}

	for _, ch := range core {
		switch ch {
		case '*':
			rule.tokens = append(rule.tokens, token{star: true})
		case '?':
			rule.tokens = append(rule.tokens, token{any: true})
		default:
			rule.tokens = append(rule.tokens, token{lit: ch})
		}
	}
	if dirOnly {
		// The directory itself and anything nested below it.
		rule.tokens = append(rule.tokens, token{star: true})
	}

	return rule
}

// matchTokens reports whether tokens match the whole of s. '*' matches any
// run of characters including separators; '?' matches exactly one character.
func matchTokens(tokens []token, s string) bool {
	runes := []rune(s)
	ti, si := 0, 0
	starTi, starSi := -1, 0

	for si < len(runes) {
		switch {
		case ti < len(tokens) && tokens[ti].star:
			starTi, starSi = ti, si
			ti++
		case ti < len(tokens) && (tokens[ti].any || tokens[ti].lit == runes[si]):
			ti++
			si++
		case starTi >= 0:
			// Backtrack: let the last '*' consume one more character.
			starSi++
			ti = starTi + 1
			si = starSi
		default:
			return false
		}
	}
	for ti < len(tokens) && tokens[ti].star {
		ti++
	}
	return ti == len(tokens)
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(path)
}
