package compile

import (
	"fmt"

	"github.com/clipforge/clipforge/internal/filtergraph"
)

// Loop is the per-input stream-loop setting.
type Loop int

const (
	// LoopNone plays the input once.
	LoopNone Loop = 0
	// LoopInfinite repeats the input until an explicit duration clamp
	// bounds the output.
	LoopInfinite Loop = -1
	// LoopBounded repeats the input a large fixed number of times; used
	// where a shortest-stream option bounds the output instead.
	LoopBounded Loop = 1000
)

// Input is one engine input with its per-input flags. All stream-map
// indices derive from an input's final position in the plan's ordered
// input list.
type Input struct {
	Path string
	Loop Loop
}

// StreamKind selects the stream type of a raw input map.
type StreamKind string

const (
	StreamVideo StreamKind = "v"
	StreamAudio StreamKind = "a"
)

// StreamMap selects one stream for the output container: either a filter
// graph output label or a raw engine input stream.
type StreamMap struct {
	// Label is a graph output label; when set it takes precedence.
	Label string
	// Input and Kind address a raw engine stream when Label is empty.
	Input int
	Kind  StreamKind
}

// GraphMap maps a filter graph output label.
func GraphMap(label string) StreamMap {
	return StreamMap{Label: label}
}

// InputMap maps a raw stream of the engine input at index.
func InputMap(index int, kind StreamKind) StreamMap {
	return StreamMap{Input: index, Kind: kind}
}

// Directive renders the map operand in engine syntax.
func (m StreamMap) Directive() string {
	if m.Label != "" {
		return "[" + m.Label + "]"
	}
	return fmt.Sprintf("%d:%s", m.Input, m.Kind)
}

// OutputOptions carries the engine-level output settings of a plan.
type OutputOptions struct {
	// Format forces the output container; empty defers to the output
	// path's extension.
	Format string
	// VideoCodec and AudioCodec override the engine's defaults when set.
	VideoCodec string
	AudioCodec string
	// DurationSeconds clamps the output length; 0 means no clamp.
	DurationSeconds float64
	// Shortest ends the output with its shortest mapped stream.
	Shortest bool
}

// Plan is a complete, validated, engine-ready execution plan. Plans are
// built fresh per request and never mutated after assembly; submission to
// the engine is the caller's responsibility.
type Plan struct {
	Inputs     []Input
	Graph      filtergraph.Graph
	Maps       []StreamMap
	Output     OutputOptions
	OutputPath string
}

// assemble merges the finished graph, stream-map decisions, and output
// options into a plan. Every compile path exits through here; a
// structurally invalid graph aborts assembly so no inconsistent plan is
// ever returned.
func assemble(inputs []Input, graph filtergraph.Graph, maps []StreamMap, out OutputOptions, target string) (*Plan, error) {
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("assemble plan: %w", err)
	}
	return &Plan{
		Inputs:     inputs,
		Graph:      graph,
		Maps:       maps,
		Output:     out,
		OutputPath: target,
	}, nil
}
