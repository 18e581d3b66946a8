package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a stylic project",
	Long: `Initialize a stylic project by creating a stylic.toml manifest with the
default configuration. If [path] is omitted, initializes the current
directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultManifest = `# stylic.toml

[primitive]
source = "@stylic/core"
name = "styled"

[attributes]
css = "css"
class = "className"

[extract]
# static = true makes every extraction fallback an error
static = false
stylesheet = "stylic.css"
class_prefix = "sc"
`

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if filepath.IsAbs(arg) {
			target = arg
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %q: %w", target, err)
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, "stylic.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %q: %w", manifestPath, err)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", manifestPath, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "created %s\n", manifestPath)
	return nil
}
