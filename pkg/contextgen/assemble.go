package contextgen

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Assembler turns an ordered sequence of eligible (path, content) pairs into
// one or more character-bounded output parts. The budget is checked before a
// block is committed: in split mode an overflowing block finalizes the
// current part and opens the next one; otherwise it stops the run early.
// Budget overflow is a normal control path, never an error.
type Assembler struct {
	budget int
	split  bool

	initialHeader      string
	continuationHeader string

	partNumber int
	blocks     []string
	length     int // running character count, current header included
	partFiles  int

	pending  []pendingPart
	included []string
	stopped  bool

	logger *zap.Logger
}

// pendingPart is a finalized part awaiting its trailing notices; the
// "Part X of Y" text can only be stamped once the total is known.
type pendingPart struct {
	number    int
	body      string
	fileCount int
	truncated bool
}

// Part is a finalized output part ready for the sink.
type Part struct {
	Number    int
	Text      string
	FileCount int
	Truncated bool
}

// NewAssembler creates an Assembler for one run. The part-1 running length
// starts at the initial header's size so the first file block is budgeted
// against the space the preamble already consumed.
func NewAssembler(initialHeader, continuationHeader string, budget int, split bool, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		budget:             budget,
		split:              split,
		initialHeader:      initialHeader,
		continuationHeader: continuationHeader,
		partNumber:         1,
		length:             charCount(initialHeader),
		logger:             logger,
	}
}

// AppendFile appends one file's formatted block. It returns false once the
// assembler has stopped (non-split mode, budget exceeded); the caller must
// not offer further files after that.
func (a *Assembler) AppendFile(path, content, lang string) bool {
	if !a.push(fileBlock(path, content, lang)) {
		return false
	}
	a.included = append(a.included, path)
	a.partFiles++
	return true
}

// AppendMissing records a file that disappeared between enumeration and
// reading. The error block counts toward the running length like any other
// block but not toward the included-file count.
func (a *Assembler) AppendMissing(path string) bool {
	a.logger.Warn("File disappeared after scan", zap.String("filePath", path))
	return a.push(missingBlock(path))
}

// Included returns the files whose content was appended, in output order.
func (a *Assembler) Included() []string {
	return a.included
}

// Stopped reports whether non-split mode hit the budget and stopped early.
func (a *Assembler) Stopped() bool {
	return a.stopped
}

// push commits one block to the current part, rolling over or stopping first
// when the block would exceed the budget. A block that exactly fills the
// remaining budget is committed to the current part.
func (a *Assembler) push(block string) bool {
	if a.stopped {
		return false
	}

	size := charCount(block)
	if a.length+size > a.budget {
		if !a.split {
			a.stopped = true
			a.logger.Info("Character limit reached, stopping content generation",
				zap.Int("maxCharacters", a.budget),
				zap.Int("filesInPart", a.partFiles))
			return false
		}
		a.rollover()
	}

	a.blocks = append(a.blocks, block)
	a.length += size
	return true
}

// rollover finalizes the current part as truncated and opens the next one,
// resetting the running length to the continuation header's size.
func (a *Assembler) rollover() {
	a.finalizePart(true)
	a.partNumber++
	a.blocks = nil
	a.partFiles = 0
	a.length = charCount(a.continuationHeader)
	a.logger.Debug("Rolled over to new output part", zap.Int("partNumber", a.partNumber))
}

func (a *Assembler) finalizePart(truncated bool) {
	header := a.initialHeader
	if a.partNumber > 1 {
		header = a.continuationHeader
	}
	a.pending = append(a.pending, pendingPart{
		number:    a.partNumber,
		body:      header + strings.Join(a.blocks, ""),
		fileCount: a.partFiles,
		truncated: truncated,
	})
}

// Finish flushes the in-progress part if it holds any blocks and renders all
// parts with their trailing warnings and position notices. The final part is
// truncated only when non-split mode stopped before reaching every eligible
// file; totalEligible feeds the single-part truncation warning.
func (a *Assembler) Finish(totalEligible int) []Part {
	if len(a.blocks) > 0 {
		a.finalizePart(a.stopped)
	}

	totalParts := len(a.pending)
	parts := make([]Part, 0, totalParts)
	for _, p := range a.pending {
		text := p.body
		if p.truncated {
			text += a.truncationWarning(p.fileCount, totalEligible, totalParts)
		}
		if totalParts > 1 {
			text += positionNotice(p.number, totalParts)
		}
		parts = append(parts, Part{
			Number:    p.number,
			Text:      strings.TrimSpace(text),
			FileCount: p.fileCount,
			Truncated: p.truncated,
		})
	}
	return parts
}

// fileBlock renders one file as a labeled, fenced Markdown block.
func fileBlock(path, content, lang string) string {
	return fmt.Sprintf("### File: `%s`\n\n```%s\n%s\n```\n\n", path, lang, content)
}

// missingBlock renders the visible error block for a vanished file.
func missingBlock(path string) string {
	return fmt.Sprintf("### File: `%s` - NOT FOUND (Error: File disappeared after scan)\n\n", path)
}

func (a *Assembler) truncationWarning(filesInPart, totalEligible, totalParts int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n---\n**WARNING: Not all code files could be included in this part due to the maximum character limit (%d characters).**\n", a.budget)
	fmt.Fprintf(&b, "Only %d code files are present in this part.\n", filesInPart)
	if totalParts == 1 {
		fmt.Fprintf(&b, "The project has a total of %d eligible code files.\n", totalEligible)
	}
	b.WriteString("Consider increasing the character limit or enabling split output.\n---\n")
	return b.String()
}

func positionNotice(partNumber, totalParts int) string {
	return fmt.Sprintf("\n---\n**This is Part %d of %d of the project context.** Please ensure you provide *all* parts to the AI for complete context. Start with Part 1.\n---\n", partNumber, totalParts)
}

// PartFilename returns the output name for a part: the base name itself for
// single-part runs, otherwise "_part_<k>" inserted before the extension.
func PartFilename(base string, partNumber, totalParts int) string {
	if totalParts <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_part_%d%s", strings.TrimSuffix(base, ext), partNumber, ext)
}

// charCount measures budget consumption in characters rather than bytes so
// multi-byte content does not skew the limit.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
