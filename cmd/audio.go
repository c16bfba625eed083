package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var audioCmd = &cobra.Command{
	Use:   "audio <clip> <track>",
	Short: "Replace a clip's audio with a separate track",
	Long: `Replace a clip's audio stream with an audio track from the library.
The track is looped so a short track covers the whole video, and the
output is clamped to the video's duration.

Example:
  clipforge audio talk.mp4 music.mp3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		out, err := rt.resolveOutput("", "")
		if err != nil {
			return err
		}

		req := compile.ReplaceAudioRequest{
			Filename: args[0],
			Track:    args[1],
			Output:   out,
		}

		plan, err := rt.deps.Compiler.CompileReplaceAudio(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}
