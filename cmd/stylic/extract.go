package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylic/internal/diag"
	"stylic/internal/diagfmt"
	"stylic/internal/driver"
	"stylic/internal/observ"
	"stylic/internal/prof"
	"stylic/internal/project"
	"stylic/internal/source"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <file.jsx|directory>",
	Short: "Extract static styles and rewrite components",
	Long: `Extract finds styled-component declarations with statically evaluable
style descriptors, rewrites their usages into plain elements with precomputed
class names, and emits the corresponding stylesheet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("write", false, "write rewritten sources back in place")
	extractCmd.Flags().String("stylesheet", "", "output path for the generated stylesheet (overrides stylic.toml)")
	extractCmd.Flags().String("config", "", "explicit path to stylic.toml")
	extractCmd.Flags().Bool("static", false, "treat every fallback as an error")
	extractCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	extractCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	extractCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	extractCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	extractCmd.Flags().String("cpuprofile", "", "write a CPU profile to the given path")
	extractCmd.Flags().String("memprofile", "", "write a heap profile to the given path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if cpuPath, _ := cmd.Flags().GetString("cpuprofile"); cpuPath != "" {
		if err := prof.StartCPU(cpuPath); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer prof.StopCPU()
	}
	if memPath, _ := cmd.Flags().GetString("memprofile"); memPath != "" {
		defer func() {
			if err := prof.WriteMem(memPath); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}()
	}

	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cfg, err := resolveConfig(cmd, target, st.IsDir())
	if err != nil {
		return err
	}
	if static, _ := cmd.Flags().GetBool("static"); static {
		cfg.Extract.Static = true
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	write, _ := cmd.Flags().GetBool("write")
	format, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		// Недоступный кеш не повод падать.
		if cache, cacheErr := driver.OpenDiskCache("stylic"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	if !st.IsDir() {
		return extractSingleFile(cmd, target, opts, format, write, quiet)
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	extractPhase := timer.Begin("extract")

	var fileSet *source.FileSet
	var results []driver.ExtractResult
	if shouldUseTUI(mode) && format == "pretty" {
		fileSet, results, err = runExtractWithUI(cmd.Context(), "extracting "+target, target, opts)
	} else {
		fileSet, results, err = driver.ExtractDir(cmd.Context(), target, opts, driver.NopSink{})
	}
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	timer.End(extractPhase, fmt.Sprintf("%d file(s)", len(results)))

	merged := diag.NewBag(maxDiagnostics)
	files, rewritten, dropped := 0, 0, 0
	for i := range results {
		files++
		rewritten += results[i].Rewritten
		dropped += results[i].Dropped
		if results[i].Bag != nil {
			merged.Merge(results[i].Bag)
		}
	}
	merged.Sort()

	if err := emitDiagnostics(cmd, merged, fileSet, format); err != nil {
		return err
	}

	if write {
		writePhase := timer.Begin("write")
		sheet := stylesheetPath(cmd, target, cfg)
		if err := driver.WriteOutputs(results, sheet); err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
		timer.End(writePhase, "")
	}

	errors := countErrors(merged)
	if !quiet && format == "pretty" {
		diagfmt.Summary(os.Stdout, files, rewritten, dropped, errors, useColorFor(cmd, os.Stdout))
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if errors > 0 {
		return fmt.Errorf("extraction finished with %d error(s)", errors)
	}
	return nil
}

func extractSingleFile(cmd *cobra.Command, path string, opts driver.Options, format string, write, quiet bool) error {
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	res := driver.ExtractFile(fileSet.Get(id), opts)
	res.Bag.Sort()

	if err := emitDiagnostics(cmd, res.Bag, fileSet, format); err != nil {
		return err
	}

	if write {
		sheet := stylesheetPath(cmd, filepath.Dir(path), opts.Config)
		if err := driver.WriteOutputs([]driver.ExtractResult{res}, sheet); err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
	} else if format == "pretty" {
		// Без --write переписанный исходник идёт в stdout.
		if _, err := fmt.Fprint(os.Stdout, res.Output); err != nil {
			return err
		}
	}

	errors := countErrors(res.Bag)
	if !quiet && format == "pretty" && write {
		diagfmt.Summary(os.Stdout, 1, res.Rewritten, res.Dropped, errors, useColorFor(cmd, os.Stdout))
	}
	if errors > 0 {
		return fmt.Errorf("extraction finished with %d error(s)", errors)
	}
	return nil
}

// resolveConfig picks up stylic.toml next to the target or above it,
// honoring an explicit --config path.
func resolveConfig(cmd *cobra.Command, target string, isDir bool) (project.Config, error) {
	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		return project.LoadConfig(explicit)
	}
	startDir := target
	if !isDir {
		startDir = filepath.Dir(target)
	}
	manifestPath, ok, err := project.FindStylicToml(startDir)
	if err != nil {
		return project.Config{}, err
	}
	if !ok {
		return project.DefaultConfig(), nil
	}
	return project.LoadConfig(manifestPath)
}

func stylesheetPath(cmd *cobra.Command, baseDir string, cfg project.Config) string {
	if flagged, _ := cmd.Flags().GetString("stylesheet"); flagged != "" {
		return flagged
	}
	if cfg.Extract.Stylesheet == "" {
		return ""
	}
	if filepath.IsAbs(cfg.Extract.Stylesheet) {
		return cfg.Extract.Stylesheet
	}
	return filepath.Join(baseDir, cfg.Extract.Stylesheet)
}

func emitDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string) error {
	if format == "json" {
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	}
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:      useColorFor(cmd, os.Stderr),
			ShowNotes:  true,
			ShowSource: true,
		})
	}
	return nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
