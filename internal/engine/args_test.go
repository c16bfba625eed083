package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clipforge/internal/compile"
	"github.com/clipforge/clipforge/internal/filtergraph"
)

func TestArgs_RemuxOnly(t *testing.T) {
	plan := &compile.Plan{
		Inputs:     []compile.Input{{Path: "/media/main.mp4"}},
		Output:     compile.OutputOptions{Format: "webm"},
		OutputPath: "/out/main.webm",
	}

	want := []string{"-y", "-i", "/media/main.mp4", "-f", "webm", "/out/main.webm"}
	assert.Equal(t, want, Args(plan))
}

func TestArgs_GraphAndMaps(t *testing.T) {
	g := filtergraph.Graph{VideoOut: "v"}
	g.Add(filtergraph.Chain{
		Inputs:  []string{"0:v"},
		Exprs:   []filtergraph.Expr{filtergraph.NewExpr("setpts", filtergraph.Val("0.5*PTS"))},
		Outputs: []string{"v"},
	})

	plan := &compile.Plan{
		Inputs: []compile.Input{{Path: "/media/main.mp4"}},
		Graph:  g,
		Maps: []compile.StreamMap{
			compile.GraphMap("v"),
			compile.InputMap(0, compile.StreamAudio),
		},
		OutputPath: "/out/fast.mp4",
	}

	want := []string{
		"-y",
		"-i", "/media/main.mp4",
		"-filter_complex", "[0:v]setpts=0.5*PTS[v]",
		"-map", "[v]",
		"-map", "0:a",
		"/out/fast.mp4",
	}
	assert.Equal(t, want, Args(plan))
}

func TestArgs_LoopedInputAndClamp(t *testing.T) {
	plan := &compile.Plan{
		Inputs: []compile.Input{
			{Path: "/media/main.mp4"},
			{Path: "/media/music.mp3", Loop: compile.LoopInfinite},
		},
		Maps: []compile.StreamMap{
			compile.InputMap(0, compile.StreamVideo),
			compile.InputMap(1, compile.StreamAudio),
		},
		Output:     compile.OutputOptions{DurationSeconds: 12.5},
		OutputPath: "/out/scored.mp4",
	}

	want := []string{
		"-y",
		"-i", "/media/main.mp4",
		"-stream_loop", "-1", "-i", "/media/music.mp3",
		"-map", "0:v",
		"-map", "1:a",
		"-t", "12.5",
		"/out/scored.mp4",
	}
	assert.Equal(t, want, Args(plan))
}

func TestArgs_ShortestAndCodecs(t *testing.T) {
	plan := &compile.Plan{
		Inputs: []compile.Input{
			{Path: "/media/a.mp4"},
			{Path: "/media/b.mp4"},
			{Path: "/media/music.mp3", Loop: compile.LoopBounded},
		},
		Output: compile.OutputOptions{
			Shortest:   true,
			VideoCodec: "libx264",
			AudioCodec: "aac",
			Format:     "mp4",
		},
		OutputPath: "/out/joined.mp4",
	}

	got := Args(plan)
	assert.Equal(t, []string{
		"-y",
		"-i", "/media/a.mp4",
		"-i", "/media/b.mp4",
		"-stream_loop", "1000", "-i", "/media/music.mp3",
		"-shortest",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-f", "mp4",
		"/out/joined.mp4",
	}, got)
}

func TestRunner_MissingBinary(t *testing.T) {
	r := NewRunner("/nonexistent/ffmpeg-binary")

	plan := &compile.Plan{
		Inputs:     []compile.Input{{Path: "/media/main.mp4"}},
		OutputPath: "/out/x.mp4",
	}

	err := r.Run(context.Background(), plan)
	require.Error(t, err)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, Args(plan), engErr.Args)
}
