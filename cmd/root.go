// Package cmd implements the clipforge command line interface. Each edit
// operation is a subcommand; shared flags live on the root command.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	dryRun     bool
	outputName string
	upload     bool
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "clipforge",
	Short: "Declarative video and audio editing on top of ffmpeg",
	Long: `Clipforge compiles declarative edit requests into ffmpeg execution plans
and runs them against a local clip library.

Operations:
  - Container conversion with optional codec overrides
  - Playback speed changes with pitch-preserving audio
  - Muting, audio replacement with looped tracks
  - Generic edits: filters, resizing, fades, volume
  - Stitching multiple clips into one output

Clips are looked up by name in the configured media directory
(CLIPFORGE_MEDIA_DIR). Use --dry-run to print the ffmpeg command a
request compiles to without running it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the engine command instead of running it")
	rootCmd.PersistentFlags().StringVarP(&outputName, "output", "o", "", "Output file name or path (default: generated)")
	rootCmd.PersistentFlags().BoolVar(&upload, "upload", false, "Publish the finished output to S3 and print its URL")

	// Add subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(speedCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(stitchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
