package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylic/internal/diagfmt"
	"stylic/internal/driver"
	"stylic/internal/printer"
	"stylic/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.jsx",
	Short: "Parse a source file and print the normalized form",
	Long: `Parse analyzes a source file and reprints it from the syntax tree,
which makes parser drift visible without running the extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(filepath.Dir(filePath))
	id, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	parsed, bag := driver.ParseOnly(fileSet.Get(id), maxDiagnostics)

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:      useColorFor(cmd, os.Stderr),
			ShowSource: true,
		})
	}
	if bag.HasErrors() {
		return fmt.Errorf("parsing failed")
	}

	if !quiet {
		if _, err := fmt.Fprint(os.Stdout, printer.PrintFile(parsed)); err != nil {
			return err
		}
	}
	return nil
}
