// Package engine translates compiled plans into ffmpeg invocations and
// runs them. Everything the engine needs is already decided at compile
// time; this package only renders and executes.
package engine

import (
	"strconv"

	"github.com/clipforge/clipforge/internal/compile"
)

// Args renders a compiled plan as the engine's argument vector. The
// layout is fixed: overwrite flag, inputs each preceded by their loop
// flag, the filter graph, stream maps, output options, output path.
// Identical plans always render identical vectors.
func Args(plan *compile.Plan) []string {
	args := []string{"-y"}

	for _, in := range plan.Inputs {
		if in.Loop != compile.LoopNone {
			args = append(args, "-stream_loop", strconv.Itoa(int(in.Loop)))
		}
		args = append(args, "-i", in.Path)
	}

	if !plan.Graph.Empty() {
		args = append(args, "-filter_complex", plan.Graph.String())
	}

	for _, m := range plan.Maps {
		args = append(args, "-map", m.Directive())
	}

	if plan.Output.Shortest {
		args = append(args, "-shortest")
	}
	if plan.Output.DurationSeconds > 0 {
		args = append(args, "-t", formatSeconds(plan.Output.DurationSeconds))
	}
	if plan.Output.VideoCodec != "" {
		args = append(args, "-c:v", plan.Output.VideoCodec)
	}
	if plan.Output.AudioCodec != "" {
		args = append(args, "-c:a", plan.Output.AudioCodec)
	}
	if plan.Output.Format != "" {
		args = append(args, "-f", plan.Output.Format)
	}

	return append(args, plan.OutputPath)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
