package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var muteCmd = &cobra.Command{
	Use:   "mute <clip>",
	Short: "Strip the audio stream from a clip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		out, err := rt.resolveOutput("", "")
		if err != nil {
			return err
		}

		req := compile.MuteRequest{
			Filename: args[0],
			Output:   out,
		}

		plan, err := rt.deps.Compiler.CompileMute(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}
