package compile

import (
	"context"
	"strconv"

	"github.com/clipforge/clipforge/internal/filtergraph"
)

// CompileStitch plans the concatenation of two or more clips into one
// output. Clips are concatenated in request order. When a resolution is
// given every clip is normalized through its own scale chain first, since
// the concat node requires uniform frame sizes.
//
// Stitching never probes: the combined duration is unknown until the
// engine runs, so a replacement track is bounded by a finite loop count
// and a stop-at-shortest output option instead of a duration clamp.
func (c *Compiler) CompileStitch(ctx context.Context, req StitchRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	audio, err := resolveAudioPolicy(req.Mute, req.Track)
	if err != nil {
		return nil, err
	}
	resize, err := ParseResize(req.Resolution, req.ResizeMode)
	if err != nil {
		return nil, err
	}

	inputs := make([]Input, 0, len(req.Filenames)+1)
	for _, name := range req.Filenames {
		path, err := c.resolveClip(ctx, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Path: path})
	}

	g := filtergraph.Graph{}
	scaleExprs := ScaleExprs(resize)

	// Per-clip video labels feeding the concat node.
	videoLabels := make([]string, len(req.Filenames))
	for i := range req.Filenames {
		if len(scaleExprs) == 0 {
			videoLabels[i] = filtergraph.InputVideo(i)
			continue
		}
		g.Add(filtergraph.VideoChain(i, scaleExprs))
		videoLabels[i] = filtergraph.ClipVideo(i)
	}

	clipCount := len(req.Filenames)
	withAudio := audio.Kind() == AudioOriginal

	// With original audio each clip's audio stream is interleaved after
	// its video label, and the concat node emits both terminals. Muted or
	// replaced audio concatenates video only.
	var concatIn []string
	for i, vl := range videoLabels {
		concatIn = append(concatIn, vl)
		if withAudio {
			concatIn = append(concatIn, filtergraph.InputAudio(i))
		}
	}
	concatOut := []string{labelVideo}
	audioFlag := "0"
	if withAudio {
		concatOut = append(concatOut, labelAudio)
		audioFlag = "1"
	}

	g.Add(filtergraph.Chain{
		Inputs: concatIn,
		Exprs: []filtergraph.Expr{filtergraph.NewExpr("concat",
			filtergraph.KV("n", strconv.Itoa(clipCount)),
			filtergraph.KV("v", "1"),
			filtergraph.KV("a", audioFlag),
		)},
		Outputs: concatOut,
	})
	g.VideoOut = labelVideo

	maps := []StreamMap{GraphMap(labelVideo)}
	out := OutputOptions{
		Format:     req.Format,
		VideoCodec: req.VideoCodec,
		AudioCodec: req.AudioCodec,
	}

	switch audio.Kind() {
	case AudioOriginal:
		g.AudioOut = labelAudio
		maps = append(maps, GraphMap(labelAudio))

	case AudioMuted:
		// Video stays the only mapped stream.

	case AudioReplaced:
		trackPath, err := c.resolveClip(ctx, audio.Track())
		if err != nil {
			return nil, err
		}
		loop := LoopNone
		if audio.Loop() {
			loop = LoopBounded
		}
		inputs = append(inputs, Input{Path: trackPath, Loop: loop})
		maps = append(maps, InputMap(clipCount, StreamAudio))
		out.Shortest = true
	}

	return assemble(inputs, g, maps, out, req.Output)
}
