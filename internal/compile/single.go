package compile

import (
	"context"

	"github.com/clipforge/clipforge/internal/filtergraph"
)

// Terminal labels for single-clip graphs.
const (
	labelVideo = "v"
	labelAudio = "a"
)

// afade directions.
const (
	fadeDirIn  = "in"
	fadeDirOut = "out"
)

// editSpec is the normalized form of every single-clip operation after
// request validation and option parsing. planSingle consumes it.
type editSpec struct {
	filename string

	videoFilters []string
	audioFilters []string

	resize ResizeSpec
	factor float64

	fadeIn  float64
	fadeOut float64
	volume  float64

	audio AudioPolicy

	format     string
	videoCodec string
	audioCodec string
	output     string
}

// CompileConvert plans a container format change for one clip. No filter
// graph is emitted; the engine remuxes (or transcodes, if codecs are
// given) with its default stream selection.
func (c *Compiler) CompileConvert(ctx context.Context, req ConvertRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	return c.planSingle(ctx, editSpec{
		filename:   req.Filename,
		factor:     1.0,
		volume:     1.0,
		format:     req.Format,
		videoCodec: req.VideoCodec,
		audioCodec: req.AudioCodec,
		output:     req.Output,
	})
}

// CompileSpeed plans a playback speed change for one clip, retiming video
// timestamps and decomposing the audio tempo into in-range stages.
func (c *Compiler) CompileSpeed(ctx context.Context, req SpeedRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	return c.planSingle(ctx, editSpec{
		filename: req.Filename,
		factor:   req.Factor,
		volume:   1.0,
		output:   req.Output,
	})
}

// CompileMute plans removal of a clip's audio stream.
func (c *Compiler) CompileMute(ctx context.Context, req MuteRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	return c.planSingle(ctx, editSpec{
		filename: req.Filename,
		factor:   1.0,
		volume:   1.0,
		audio:    AudioPolicy{kind: AudioMuted},
		output:   req.Output,
	})
}

// CompileReplaceAudio plans swapping a clip's audio for a looped external
// track, clamped to the clip's duration.
func (c *Compiler) CompileReplaceAudio(ctx context.Context, req ReplaceAudioRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	return c.planSingle(ctx, editSpec{
		filename: req.Filename,
		factor:   1.0,
		volume:   1.0,
		audio:    AudioPolicy{kind: AudioReplaced, track: req.Track, loop: true},
		output:   req.Output,
	})
}

// CompileEdit plans the generic single-clip edit, combining raw filters,
// resize, speed, fades, volume, and the audio policy in a fixed order.
func (c *Compiler) CompileEdit(ctx context.Context, req EditRequest) (*Plan, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}
	factor, err := parseSpeedFactor(req.Speed)
	if err != nil {
		return nil, err
	}
	resize, err := ParseResize(req.Resolution, req.ResizeMode)
	if err != nil {
		return nil, err
	}
	audio, err := resolveAudioPolicy(req.Mute, req.Track)
	if err != nil {
		return nil, err
	}
	volume := req.Volume
	if volume == 0 {
		volume = 1.0
	}
	return c.planSingle(ctx, editSpec{
		filename:     req.Filename,
		videoFilters: req.VideoFilters,
		audioFilters: req.AudioFilters,
		resize:       resize,
		factor:       factor,
		fadeIn:       req.FadeIn,
		fadeOut:      req.FadeOut,
		volume:       volume,
		audio:        audio,
		format:       req.Format,
		videoCodec:   req.VideoCodec,
		audioCodec:   req.AudioCodec,
		output:       req.Output,
	})
}

// planSingle builds the plan for one input clip.
//
// Stage order is fixed so identical requests compile to identical plans:
// video is resize, then caller filters, then the speed timestamp
// transform; audio is caller filters, then tempo stages, then volume,
// then fade-in, then fade-out. Muting suppresses the audio side entirely,
// and a replacement track is mapped raw (the clip's own audio and any
// caller audio filters are dropped with it).
func (c *Compiler) planSingle(ctx context.Context, spec editSpec) (*Plan, error) {
	path, err := c.resolveClip(ctx, spec.filename)
	if err != nil {
		return nil, err
	}

	tempoStages := DecomposeTempo(spec.factor)
	speedActive := len(tempoStages) > 0

	// The source is probed only when the arithmetic needs a duration:
	// placing a fade-out, or clamping output length when the audio track
	// is replaced by a loop.
	var estDuration float64
	needsProbe := spec.audio.Kind() == AudioReplaced ||
		(spec.audio.Kind() == AudioOriginal && spec.fadeOut > 0)
	if needsProbe {
		d, err := c.probeDuration(ctx, spec.filename, path)
		if err != nil {
			return nil, err
		}
		estDuration = d
		if speedActive {
			estDuration = d / spec.factor
		}
	}

	var videoExprs []filtergraph.Expr
	videoExprs = append(videoExprs, ScaleExprs(spec.resize)...)
	for _, f := range spec.videoFilters {
		videoExprs = append(videoExprs, filtergraph.Raw(f))
	}
	if speedActive {
		videoExprs = append(videoExprs, timestampExpr(spec.factor))
	}

	g := filtergraph.Graph{}
	inputs := []Input{{Path: path}}
	var maps []StreamMap

	hasVideoChain := len(videoExprs) > 0
	if hasVideoChain {
		g.Add(filtergraph.Chain{
			Inputs:  []string{filtergraph.InputVideo(0)},
			Exprs:   videoExprs,
			Outputs: []string{labelVideo},
		})
		g.VideoOut = labelVideo
	}
	videoMap := InputMap(0, StreamVideo)
	if hasVideoChain {
		videoMap = GraphMap(labelVideo)
	}

	out := OutputOptions{
		Format:     spec.format,
		VideoCodec: spec.videoCodec,
		AudioCodec: spec.audioCodec,
	}

	switch spec.audio.Kind() {
	case AudioMuted:
		// Mapping only video drops the audio stream.
		maps = append(maps, videoMap)

	case AudioReplaced:
		trackPath, err := c.resolveClip(ctx, spec.audio.Track())
		if err != nil {
			return nil, err
		}
		loop := LoopNone
		if spec.audio.Loop() {
			loop = LoopInfinite
		}
		inputs = append(inputs, Input{Path: trackPath, Loop: loop})
		maps = append(maps, videoMap, InputMap(1, StreamAudio))
		// Without the clamp an infinite loop never ends the run.
		out.DurationSeconds = estDuration

	case AudioOriginal:
		audioExprs := c.audioStages(spec, tempoStages, estDuration)
		hasAudioChain := len(audioExprs) > 0
		if hasAudioChain {
			g.Add(filtergraph.Chain{
				Inputs:  []string{filtergraph.InputAudio(0)},
				Exprs:   audioExprs,
				Outputs: []string{labelAudio},
			})
			g.AudioOut = labelAudio
		}
		// With no chains at all the engine's default stream selection
		// applies and no explicit maps are needed.
		if hasVideoChain || hasAudioChain {
			audioMap := InputMap(0, StreamAudio)
			if hasAudioChain {
				audioMap = GraphMap(labelAudio)
			}
			maps = append(maps, videoMap, audioMap)
		}
	}

	return assemble(inputs, g, maps, out, spec.output)
}

// audioStages builds the audio filter sequence for a clip that keeps its
// own audio: caller filters, tempo stages, volume, fade-in, fade-out.
func (c *Compiler) audioStages(spec editSpec, tempoStages []float64, estDuration float64) []filtergraph.Expr {
	var exprs []filtergraph.Expr
	for _, f := range spec.audioFilters {
		exprs = append(exprs, filtergraph.Raw(f))
	}
	exprs = append(exprs, tempoExprs(tempoStages)...)
	if spec.volume != 1.0 {
		exprs = append(exprs, volumeExpr(spec.volume))
	}
	if spec.fadeIn > 0 {
		exprs = append(exprs, fadeExpr(fadeDirIn, 0, spec.fadeIn))
	}
	if spec.fadeOut > 0 {
		start := estDuration - spec.fadeOut
		if start < 0 {
			start = 0
		}
		exprs = append(exprs, fadeExpr(fadeDirOut, start, spec.fadeOut))
	}
	return exprs
}

func volumeExpr(multiplier float64) filtergraph.Expr {
	return filtergraph.NewExpr("volume", filtergraph.Val(formatFloat(multiplier)))
}

func fadeExpr(direction string, start, duration float64) filtergraph.Expr {
	return filtergraph.NewExpr("afade",
		filtergraph.KV("t", direction),
		filtergraph.KV("st", formatFloat(start)),
		filtergraph.KV("d", formatFloat(duration)),
	)
}
