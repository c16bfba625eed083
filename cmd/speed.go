package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/compile"
)

var speedCmd = &cobra.Command{
	Use:   "speed <clip> <factor>",
	Short: "Change a clip's playback speed",
	Long: `Speed a clip up or slow it down while preserving audio pitch. The
factor must be greater than 0.1 and at most 10: 2 plays twice as fast,
0.5 at half speed.

Example:
  clipforge speed talk.mp4 1.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		factor, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid speed factor %q", args[1])
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}

		out, err := rt.resolveOutput("", "")
		if err != nil {
			return err
		}

		req := compile.SpeedRequest{
			Filename: args[0],
			Factor:   factor,
			Output:   out,
		}

		plan, err := rt.deps.Compiler.CompileSpeed(cmd.Context(), req)
		if err != nil {
			return err
		}
		return rt.execute(cmd.Context(), plan)
	},
}
