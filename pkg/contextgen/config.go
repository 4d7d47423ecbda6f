package contextgen

// Config holds the options for one context-generation run.
type Config struct {
	Root                   string   // Project directory to process.
	OutputFilename         string   // Base name of the output Markdown file(s), relative to Root.
	ProjectName            string   // Display name used in the document headers.
	ReadmeFilename         string   // Relative path of the project's README.
	AIInstructionsFilename string   // Relative path of the AI-assistant instructions document.
	OptionalDocs           []string // Specific Markdown files to include in the preamble.
	DocFolders             []string // Folders scanned recursively for .md files to include in the preamble.
	ExcludeFiles           []string // Exact relative paths always excluded from the codebase section.
	ExcludeFolders         []string // Folders whose subtree is always excluded from the codebase section.
	IgnorePatterns         []string // Extra ignore-pattern lines applied after the project's .gitignore.
	MaxOutputCharacters    int      // Approximate character limit per output part.
	SplitIfTruncated       bool     // Split into numbered parts instead of truncating a single file.
	Verbose                bool     // Enables per-file debug logging.
}

// Default values applied by Run for zero-valued Config fields.
const (
	DefaultOutputFilename         = "output/project_context.md"
	DefaultProjectName            = "Unnamed Project"
	DefaultReadmeFilename         = "README.md"
	DefaultAIInstructionsFilename = "docs/ai_instructions.md"
	DefaultMaxOutputCharacters    = 500000
)

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.OutputFilename == "" {
		c.OutputFilename = DefaultOutputFilename
	}
	if c.ProjectName == "" {
		c.ProjectName = DefaultProjectName
	}
	if c.ReadmeFilename == "" {
		c.ReadmeFilename = DefaultReadmeFilename
	}
	if c.AIInstructionsFilename == "" {
		c.AIInstructionsFilename = DefaultAIInstructionsFilename
	}
	if c.MaxOutputCharacters <= 0 {
		c.MaxOutputCharacters = DefaultMaxOutputCharacters
	}
}

// PartInfo describes one written output part.
type PartInfo struct {
	Name       string // Output file name, relative to the project root.
	FileCount  int    // Number of code files included in this part.
	Characters int    // Character count of the written text.
	Truncated  bool   // Whether this part carries a truncation warning.
}

// Result summarizes a completed run.
type Result struct {
	Parts         []PartInfo // Written parts, in order.
	DocsIncluded  []string   // Supplemental documentation files included in the preamble.
	EligibleFiles int        // Total number of files that survived filtering.
	IncludedFiles []string   // Files whose content made it into some part, in output order.
}
