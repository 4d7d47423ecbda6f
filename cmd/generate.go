package cmd

import (
	"fmt"
	"os"

	"contextgen/pkg/contextgen"
	"contextgen/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCfg contextgen.Config

// generateCmd runs one context-generation pass over a project directory.
var generateCmd = &cobra.Command{
	Use:   "generate [directory]",
	Short: "Generate AI context Markdown from a project directory",
	Long: `Generate walks the given project directory (default "."), filters files
through the project's .gitignore and any explicit exclusions, and writes the
surviving files into one or more Markdown context documents bounded by a
character limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			generateCfg.Root = args[0]
		}

		logger := logging.L()
		result, err := contextgen.Run(generateCfg, logger)
		if err != nil {
			logger.Error("Context generation failed", zap.Error(err))
			return fmt.Errorf("context generation failed: %w", err)
		}

		contextgen.WriteSummary(os.Stdout, result)
		return nil
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&generateCfg.OutputFilename, "output", "o", contextgen.DefaultOutputFilename, "Base name of the output Markdown file(s), relative to the project root")
	flags.StringVarP(&generateCfg.ProjectName, "name", "n", contextgen.DefaultProjectName, "Project display name used in document headers")
	flags.StringVar(&generateCfg.ReadmeFilename, "readme", contextgen.DefaultReadmeFilename, "Relative path of the project README")
	flags.StringVar(&generateCfg.AIInstructionsFilename, "ai-instructions", contextgen.DefaultAIInstructionsFilename, "Relative path of the AI-assistant instructions document")
	flags.StringArrayVar(&generateCfg.OptionalDocs, "doc", nil, "Markdown file to include in the preamble (repeatable)")
	flags.StringArrayVar(&generateCfg.DocFolders, "doc-folder", nil, "Folder scanned recursively for .md files to include in the preamble (repeatable)")
	flags.StringArrayVar(&generateCfg.ExcludeFiles, "exclude-file", nil, "Relative file path to always exclude (repeatable)")
	flags.StringArrayVar(&generateCfg.ExcludeFolders, "exclude-folder", nil, "Relative folder path to always exclude, subtree included (repeatable)")
	flags.StringArrayVar(&generateCfg.IgnorePatterns, "ignore-pattern", nil, "Extra gitignore-style pattern applied after .gitignore (repeatable)")
	flags.IntVar(&generateCfg.MaxOutputCharacters, "max-chars", contextgen.DefaultMaxOutputCharacters, "Approximate character limit per output part")
	flags.BoolVar(&generateCfg.SplitIfTruncated, "split", false, "Split into numbered parts instead of truncating a single file")
	flags.BoolVarP(&generateCfg.Verbose, "verbose", "v", false, "Log every skipped file")

	RootCmd.AddCommand(generateCmd)
}
