package filtergraph

import "fmt"

// InputVideo returns the label addressing the video stream of raw engine
// input i.
func InputVideo(i int) string {
	return fmt.Sprintf("%d:v", i)
}

// InputAudio returns the label addressing the audio stream of raw engine
// input i.
func InputAudio(i int) string {
	return fmt.Sprintf("%d:a", i)
}

// ClipVideo returns the normalized per-clip video label for clip position i.
// Labels derive only from the position, so identical inputs always produce
// identical label assignments.
func ClipVideo(i int) string {
	return fmt.Sprintf("v%d", i)
}

// VideoChain builds the per-clip video chain: it consumes the raw video
// stream of engine input clip, applies exprs in the order supplied, and
// produces the clip's normalized label. Callers own the expression order;
// the chain never reorders them.
func VideoChain(clip int, exprs []Expr) Chain {
	return Chain{
		Inputs:  []string{InputVideo(clip)},
		Exprs:   exprs,
		Outputs: []string{ClipVideo(clip)},
	}
}
