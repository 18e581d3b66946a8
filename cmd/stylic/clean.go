package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylic/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the stylic extraction cache",
	Long:  "Remove every cached extraction result from the on-disk cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("stylic")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	return nil
}
