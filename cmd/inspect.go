package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <clip>",
	Short: "Show container and stream metadata for a library clip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		path, err := rt.deps.Library.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		result, err := rt.deps.Prober.Inspect(cmd.Context(), path)
		if err != nil {
			return err
		}

		if inspectJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("File:      %s\n", result.Format.Filename)
		fmt.Printf("Container: %s\n", result.Format.FormatName)
		fmt.Printf("Duration:  %.3fs\n", result.Format.Duration)
		fmt.Printf("Size:      %d bytes\n", result.Format.Size)
		for _, v := range result.Video {
			fmt.Printf("Video #%d:  %s %dx%d", v.Index, v.Codec, v.Width, v.Height)
			if v.AvgFrameRate != "" {
				fmt.Printf(" %s fps", v.AvgFrameRate)
			}
			fmt.Println()
		}
		for _, a := range result.Audio {
			fmt.Printf("Audio #%d:  %s %d ch %d Hz\n", a.Index, a.Codec, a.Channels, a.SampleRate)
		}

		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output metadata as JSON")
}
