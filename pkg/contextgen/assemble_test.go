package contextgen

import (
	"strings"
	"testing"
)

const (
	testInitialHeader      = "INITIAL HEADER\n\n"
	testContinuationHeader = "CONT\n\n"
)

func testBlockSize(path, content string) int {
	return charCount(fileBlock(path, content, "text"))
}

func TestAssemblerSingleFitsInOnePart(t *testing.T) {
	budget := charCount(testInitialHeader) + testBlockSize("a.txt", "hello") + 100
	asm := NewAssembler(testInitialHeader, testContinuationHeader, budget, false, nil)

	if !asm.AppendFile("a.txt", "hello", "text") {
		t.Fatal("AppendFile() = false, want true")
	}
	parts := asm.Finish(1)

	if len(parts) != 1 {
		t.Fatalf("len(parts) = %d, want 1", len(parts))
	}
	p := parts[0]
	if p.Truncated {
		t.Error("Truncated = true, want false")
	}
	if p.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", p.FileCount)
	}
	if !strings.Contains(p.Text, "### File: `a.txt`") {
		t.Error("part text missing file block")
	}
	if strings.Contains(p.Text, "This is Part") {
		t.Error("single-part output must not carry a position notice")
	}
}

func TestAssemblerExactFitIncluded(t *testing.T) {
	content := "0123456789"
	budget := charCount(testInitialHeader) + testBlockSize("a.txt", content)
	asm := NewAssembler(testInitialHeader, testContinuationHeader, budget, false, nil)

	if !asm.AppendFile("a.txt", content, "text") {
		t.Fatal("block exactly filling the remaining budget must be committed")
	}
	parts := asm.Finish(1)
	if len(parts) != 1 || parts[0].Truncated {
		t.Fatalf("parts = %+v, want one untruncated part", parts)
	}
}

func TestAssemblerNonSplitTruncation(t *testing.T) {
	content := strings.Repeat("x", 50)
	blockSize := testBlockSize("f1.txt", content)
	budget := charCount(testInitialHeader) + blockSize + 5

	asm := NewAssembler(testInitialHeader, testContinuationHeader, budget, false, nil)

	if !asm.AppendFile("f1.txt", content, "text") {
		t.Fatal("first file must fit")
	}
	if asm.AppendFile("f2.txt", content, "text") {
		t.Fatal("second file must trigger the early stop")
	}
	if !asm.Stopped() {
		t.Fatal("Stopped() = false, want true")
	}
	// Subsequent files are never appended.
	if asm.AppendFile("f3.txt", content, "text") {
		t.Fatal("no file may be appended after the stop")
	}

	parts := asm.Finish(3)
	if len(parts) != 1 {
		t.Fatalf("len(parts) = %d, want 1", len(parts))
	}
	p := parts[0]
	if !p.Truncated {
		t.Error("Truncated = false, want true")
	}
	if p.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", p.FileCount)
	}
	if !strings.Contains(p.Text, "Only 1 code files are present in this part.") {
		t.Error("truncation warning missing per-part file count")
	}
	if !strings.Contains(p.Text, "The project has a total of 3 eligible code files.") {
		t.Error("single-part truncation warning missing total eligible count")
	}
	if strings.Contains(p.Text, "f2.txt") || strings.Contains(p.Text, "f3.txt") {
		t.Error("files past the stop must not appear in the output")
	}
}

func TestAssemblerSplitMode(t *testing.T) {
	content := strings.Repeat("y", 100)
	blockSize := testBlockSize("f1.txt", content)
	budget := charCount(testInitialHeader) + blockSize + 5

	asm := NewAssembler(testInitialHeader, testContinuationHeader, budget, true, nil)

	files := []string{"f1.txt", "f2.txt", "f3.txt"}
	for _, f := range files {
		if !asm.AppendFile(f, content, "text") {
			t.Fatalf("AppendFile(%q) = false in split mode", f)
		}
	}
	parts := asm.Finish(len(files))

	if len(parts) != 3 {
		t.Fatalf("len(parts) = %d, want 3", len(parts))
	}

	// Every file appears exactly once, in order, across the parts.
	for i, f := range files {
		marker := "### File: `" + f + "`"
		count := 0
		for _, p := range parts {
			count += strings.Count(p.Text, marker)
		}
		if count != 1 {
			t.Errorf("file %q appears %d times across parts, want 1", f, count)
		}
		if !strings.Contains(parts[i].Text, marker) {
			t.Errorf("file %q not in part %d", f, i+1)
		}
	}

	// Rolled-over parts are truncated; the final part is not.
	for i, p := range parts {
		wantTruncated := i < len(parts)-1
		if p.Truncated != wantTruncated {
			t.Errorf("parts[%d].Truncated = %v, want %v", i, p.Truncated, wantTruncated)
		}
	}

	// Position notices carry the true final total.
	if !strings.Contains(parts[0].Text, "This is Part 1 of 3 of the project context.") {
		t.Error("part 1 missing correct position notice")
	}
	if !strings.Contains(parts[2].Text, "This is Part 3 of 3 of the project context.") {
		t.Error("part 3 missing correct position notice")
	}

	// Continuation parts use the short header.
	if !strings.HasPrefix(parts[0].Text, strings.TrimSpace(testInitialHeader)) {
		t.Error("part 1 must start with the initial header")
	}
	if !strings.HasPrefix(parts[1].Text, strings.TrimSpace(testContinuationHeader)) {
		t.Error("part 2 must start with the continuation header")
	}
}

func TestAssemblerIdempotence(t *testing.T) {
	content := strings.Repeat("z", 80)
	budget := charCount(testInitialHeader) + testBlockSize("f1.txt", content) + 10
	files := []string{"f1.txt", "f2.txt", "f3.txt", "f4.txt"}

	run := func() []Part {
		asm := NewAssembler(testInitialHeader, testContinuationHeader, budget, true, nil)
		for _, f := range files {
			asm.AppendFile(f, content, "text")
		}
		return asm.Finish(len(files))
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("part counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].FileCount != second[i].FileCount {
			t.Errorf("parts[%d].FileCount differs: %d vs %d", i, first[i].FileCount, second[i].FileCount)
		}
		if first[i].Text != second[i].Text {
			t.Errorf("parts[%d].Text differs between runs", i)
		}
	}
}

func TestAssemblerMissingFileBlock(t *testing.T) {
	asm := NewAssembler(testInitialHeader, testContinuationHeader, 100000, false, nil)

	if !asm.AppendMissing("gone.txt") {
		t.Fatal("AppendMissing() = false, want true")
	}
	if !asm.AppendFile("a.txt", "hi", "text") {
		t.Fatal("AppendFile() = false, want true")
	}
	parts := asm.Finish(2)

	if len(parts) != 1 {
		t.Fatalf("len(parts) = %d, want 1", len(parts))
	}
	if !strings.Contains(parts[0].Text, "### File: `gone.txt` - NOT FOUND (Error: File disappeared after scan)") {
		t.Error("missing-file error block not rendered")
	}
	if parts[0].FileCount != 1 {
		t.Errorf("FileCount = %d, want 1: error blocks are not included files", parts[0].FileCount)
	}
	if len(asm.Included()) != 1 || asm.Included()[0] != "a.txt" {
		t.Errorf("Included() = %v, want [a.txt]", asm.Included())
	}
}

func TestAssemblerEmptyInput(t *testing.T) {
	asm := NewAssembler(testInitialHeader, testContinuationHeader, 1000, false, nil)
	if parts := asm.Finish(0); len(parts) != 0 {
		t.Errorf("len(parts) = %d, want 0 for empty input", len(parts))
	}
}

func TestPartFilename(t *testing.T) {
	tests := []struct {
		base       string
		partNumber int
		totalParts int
		want       string
	}{
		{"output/project_context.md", 1, 1, "output/project_context.md"},
		{"output/project_context.md", 1, 3, "output/project_context_part_1.md"},
		{"output/project_context.md", 2, 3, "output/project_context_part_2.md"},
		{"context.txt", 2, 2, "context_part_2.txt"},
		{"context", 2, 2, "context_part_2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := PartFilename(tt.base, tt.partNumber, tt.totalParts); got != tt.want {
				t.Errorf("PartFilename(%q, %d, %d) = %q, want %q", tt.base, tt.partNumber, tt.totalParts, got, tt.want)
			}
		})
	}
}
