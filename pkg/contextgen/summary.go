package contextgen

import (
	"fmt"
	"io"
)

// WriteSummary prints the human-readable run report. Console only: nothing
// here is persisted, the Markdown parts carry their own warnings.
func WriteSummary(w io.Writer, res *Result) {
	fmt.Fprintln(w, "\n--- Summary of Generated Context ---")

	fmt.Fprintf(w, "\n--- Documentation Files Included in Preamble (%d) ---\n", len(res.DocsIncluded))
	if len(res.DocsIncluded) > 0 {
		for _, docPath := range res.DocsIncluded {
			fmt.Fprintf(w, "- %s\n", docPath)
		}
	} else {
		fmt.Fprintln(w, "No optional documentation files were found or included.")
	}
	fmt.Fprintln(w, "------------------------------------------")

	fmt.Fprintf(w, "\n--- Codebase Files Included (%d/%d) ---\n", len(res.IncludedFiles), res.EligibleFiles)
	if len(res.IncludedFiles) > 0 {
		for _, filePath := range res.IncludedFiles {
			fmt.Fprintf(w, "- %s\n", filePath)
		}
		if omitted := res.EligibleFiles - len(res.IncludedFiles); omitted > 0 {
			fmt.Fprintf(w, "... and %d more files were omitted due to character limit.\n", omitted)
		}
	} else {
		fmt.Fprintln(w, "No codebase files were included (either none found or all filtered/truncated).")
	}
	fmt.Fprintln(w, "------------------------------------------")

	fmt.Fprintln(w, "\nPlease review the content.")
	if len(res.Parts) > 1 {
		first := res.Parts[0].Name
		last := res.Parts[len(res.Parts)-1].Name
		fmt.Fprintf(w, "\nIMPORTANT: Multiple files were generated: %s through %s.\n", first, last)
		fmt.Fprintln(w, "When starting a new conversation with an AI, you MUST copy the *entire content* of ALL generated parts, one after the other, into the prompt.")
		fmt.Fprintln(w, "Start with Part 1, then Part 2, and so on.")
	} else if len(res.Parts) == 1 {
		fmt.Fprintln(w, "\nWhen starting a new conversation with an AI, copy the *entire content* of this file into the prompt.")
	}
}
