package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var (
	convertVideoCodec string
	convertAudioCodec string
)

var convertCmd = &cobra.Command{
	Use:   "convert <clip> <format>",
	Short: "Rewrap a clip into another container format",
	Long: `Convert a library clip to a different container format, optionally
overriding the output codecs. Without codec overrides the engine picks
defaults appropriate for the target container.

Example:
  clipforge convert talk.mp4 gif
  clipforge convert talk.mp4 webm --video-codec libvpx-vp9`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		out, err := rt.resolveOutput("", args[1])
		if err != nil {
			return err
		}

		req := compile.ConvertRequest{
			Filename:   args[0],
			Format:     args[1],
			VideoCodec: convertVideoCodec,
			AudioCodec: convertAudioCodec,
			Output:     out,
		}

		plan, err := rt.deps.Compiler.CompileConvert(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertVideoCodec, "video-codec", "", "Override the output video codec")
	convertCmd.Flags().StringVar(&convertAudioCodec, "audio-codec", "", "Override the output audio codec")
}
