package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/matjam/crossfade"
)

// NewGenManCmd writes one man page per command of rootCmd into a directory,
// creating it if needed.
func NewGenManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "genman [output-dir]",
		Short: "Generate man pages for the crossfade CLI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Clean(args[0])
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			header := &doc.GenManHeader{
				Title:   "CROSSFADE",
				Section: "1",
				Source:  "crossfade " + strings.TrimSpace(crossfade.Version),
				Manual:  "Crossfade Manual",
			}
			if err := doc.GenManTree(rootCmd, header, dir); err != nil {
				return err
			}
			log.Infof("Man pages written to %s", dir)
			return nil
		},
	}
}
