package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylic/internal/diagfmt"
	"stylic/internal/driver"
	"stylic/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.jsx",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks down a source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(filepath.Dir(filePath))
	id, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	tokens, bag := driver.TokenizeFile(fileSet.Get(id), maxDiagnostics)

	// Диагностика идёт в stderr, токены в stdout
	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:      useColorFor(cmd, os.Stderr),
			ShowSource: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
