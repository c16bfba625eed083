package compile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileStitch_OriginalAudio(t *testing.T) {
	c, _, prober := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"intro.mp4", "main.mp4"},
		Output:    "/out/joined.mp4",
	})
	require.NoError(t, err)

	// One combined concat node carries video and audio pairs in clip
	// order and emits both terminals.
	want := "[0:v][0:a][1:v][1:a]concat=n=2:v=1:a=1[v][a]"
	assert.Equal(t, want, plan.Graph.String())
	assert.Equal(t, []string{"[v]", "[a]"}, mapDirectives(plan))

	require.Len(t, plan.Inputs, 2)
	assert.Equal(t, "/media/intro.mp4", plan.Inputs[0].Path)
	assert.Equal(t, "/media/main.mp4", plan.Inputs[1].Path)
	assert.False(t, plan.Output.Shortest)
	assert.Zero(t, prober.calls, "stitching never probes")
}

func TestCompileStitch_NormalizesClipSizes(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames:  []string{"intro.mp4", "main.mp4"},
		Resolution: "1280:720",
		ResizeMode: "stretch",
		Output:     "/out/joined.mp4",
	})
	require.NoError(t, err)

	want := "[0:v]scale=1280:720,setsar=1[v0];" +
		"[1:v]scale=1280:720,setsar=1[v1];" +
		"[v0][0:a][v1][1:a]concat=n=2:v=1:a=1[v][a]"
	assert.Equal(t, want, plan.Graph.String())
}

func TestCompileStitch_CoverResizeKeepsAudio(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames:  []string{"intro.mp4", "main.mp4"},
		Resolution: "640:480",
		ResizeMode: "cover",
		Output:     "/out/joined.mp4",
	})
	require.NoError(t, err)

	want := "[0:v]scale=640:480:force_original_aspect_ratio=increase,crop=640:480,setsar=1[v0];" +
		"[1:v]scale=640:480:force_original_aspect_ratio=increase,crop=640:480,setsar=1[v1];" +
		"[v0][0:a][v1][1:a]concat=n=2:v=1:a=1[v][a]"
	assert.Equal(t, want, plan.Graph.String())
	assert.Equal(t, []string{"[v]", "[a]"}, mapDirectives(plan))
}

func TestCompileStitch_Muted(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"intro.mp4", "main.mp4", "outro.mp4"},
		Mute:      true,
		Output:    "/out/joined.mp4",
	})
	require.NoError(t, err)

	want := "[0:v][1:v][2:v]concat=n=3:v=1:a=0[v]"
	assert.Equal(t, want, plan.Graph.String())
	assert.Equal(t, []string{"[v]"}, mapDirectives(plan), "video is the only mapped stream")
	assert.Len(t, plan.Inputs, 3)
}

func TestCompileStitch_ReplacementTrack(t *testing.T) {
	c, _, prober := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"intro.mp4", "main.mp4", "outro.mp4"},
		Track:     "music.mp3",
		Output:    "/out/joined.mp4",
	})
	require.NoError(t, err)

	// Video-only concat plus the track appended as one extra input.
	want := "[0:v][1:v][2:v]concat=n=3:v=1:a=0[v]"
	assert.Equal(t, want, plan.Graph.String())

	require.Len(t, plan.Inputs, 4, "clip count plus one")
	assert.Equal(t, Input{Path: "/media/music.mp3", Loop: LoopBounded}, plan.Inputs[3])
	assert.Equal(t, []string{"[v]", "3:a"}, mapDirectives(plan))

	// The total length is unknown without probing, so the loop is bounded
	// by the shortest-stream option rather than a duration clamp.
	assert.True(t, plan.Output.Shortest)
	assert.Zero(t, plan.Output.DurationSeconds)
	assert.Zero(t, prober.calls)
}

func TestCompileStitch_TooFewClips(t *testing.T) {
	c, resolver, prober := newTestCompiler(t)

	_, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"main.mp4"},
		Output:    "/out/joined.mp4",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "filenames", verr.Field)
	assert.Zero(t, resolver.calls, "rejected before resolution")
	assert.Zero(t, prober.calls, "rejected before probing")
}

func TestCompileStitch_MuteAndTrackRejected(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	_, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"intro.mp4", "main.mp4"},
		Mute:      true,
		Track:     "music.mp3",
		Output:    "/out/joined.mp4",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "audio", verr.Field)
}

func TestCompileStitch_UnknownClip(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	_, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"intro.mp4", "ghost.mp4"},
		Output:    "/out/joined.mp4",
	})
	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "ghost.mp4", rerr.Name)
}

func TestCompileStitch_KeepsClipOrder(t *testing.T) {
	c, _, _ := newTestCompiler(t)

	plan, err := c.CompileStitch(context.Background(), StitchRequest{
		Filenames: []string{"outro.mp4", "intro.mp4", "main.mp4"},
		Output:    "/out/joined.mp4",
	})
	require.NoError(t, err)

	got := make([]string, len(plan.Inputs))
	for i, in := range plan.Inputs {
		got[i] = in.Path
	}
	assert.Equal(t, []string{"/media/outro.mp4", "/media/intro.mp4", "/media/main.mp4"}, got)
}
