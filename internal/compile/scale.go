package compile

import (
	"strconv"
	"strings"

	"github.com/clipforge/clipforge/internal/filtergraph"
)

// ResizeMode selects how a clip is fitted to the target dimensions.
type ResizeMode string

const (
	// ResizeFit scales to fit inside the target and pads symmetrically
	// (letterbox/pillarbox); nothing is cropped. Default mode.
	ResizeFit ResizeMode = "fit"
	// ResizeCover scales to cover the target and center-crops the excess;
	// nothing is padded.
	ResizeCover ResizeMode = "cover"
	// ResizeStretch scales straight to the target, ignoring the source
	// aspect ratio.
	ResizeStretch ResizeMode = "stretch"
)

// OriginalResolution is the sentinel resolution value meaning "leave the
// source dimensions untouched".
const OriginalResolution = "original"

// ResizeSpec is a parsed resize request. The zero value means no scaling.
type ResizeSpec struct {
	Width  int
	Height int
	Mode   ResizeMode
}

// IsZero reports whether no scaling was requested.
func (r ResizeSpec) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// ParseResize parses a "W:H" dimension string and a mode name into a
// ResizeSpec. An empty string or the "original" sentinel yields the zero
// spec. Unrecognized or absent modes fall back to fit.
func ParseResize(resolution, mode string) (ResizeSpec, error) {
	resolution = strings.TrimSpace(resolution)
	if resolution == "" || strings.EqualFold(resolution, OriginalResolution) {
		return ResizeSpec{}, nil
	}

	parts := strings.Split(resolution, ":")
	if len(parts) != 2 {
		return ResizeSpec{}, &ValidationError{
			Field:  "resolution",
			Reason: "want \"width:height\", got " + strconv.Quote(resolution),
		}
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return ResizeSpec{}, &ValidationError{Field: "resolution", Reason: "width must be a positive integer"}
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return ResizeSpec{}, &ValidationError{Field: "resolution", Reason: "height must be a positive integer"}
	}

	return ResizeSpec{Width: w, Height: h, Mode: parseResizeMode(mode)}, nil
}

func parseResizeMode(mode string) ResizeMode {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case string(ResizeCover):
		return ResizeCover
	case string(ResizeStretch):
		return ResizeStretch
	default:
		// "fit", "contain", empty, and anything unrecognized.
		return ResizeFit
	}
}

// ScaleExprs returns the ordered filter expressions realizing spec:
//
//   - stretch: scale straight to the target, then reset the sample aspect
//     ratio so players do not reapply the stale source ratio;
//   - cover: aspect-preserving scale with "increase" rounding so both
//     dimensions reach at least the target, center-crop to exact size,
//     then reset the aspect ratio; never pads;
//   - fit: aspect-preserving scale with "decrease" rounding so both
//     dimensions stay within the target, pad symmetrically to exact size,
//     then reset the aspect ratio; never crops.
//
// The zero spec yields no expressions.
func ScaleExprs(spec ResizeSpec) []filtergraph.Expr {
	if spec.IsZero() {
		return nil
	}

	w := strconv.Itoa(spec.Width)
	h := strconv.Itoa(spec.Height)
	setsar := filtergraph.NewExpr("setsar", filtergraph.Val("1"))

	switch spec.Mode {
	case ResizeStretch:
		return []filtergraph.Expr{
			filtergraph.NewExpr("scale", filtergraph.Val(w), filtergraph.Val(h)),
			setsar,
		}
	case ResizeCover:
		return []filtergraph.Expr{
			filtergraph.NewExpr("scale",
				filtergraph.Val(w), filtergraph.Val(h),
				filtergraph.KV("force_original_aspect_ratio", "increase")),
			filtergraph.NewExpr("crop", filtergraph.Val(w), filtergraph.Val(h)),
			setsar,
		}
	default:
		return []filtergraph.Expr{
			filtergraph.NewExpr("scale",
				filtergraph.Val(w), filtergraph.Val(h),
				filtergraph.KV("force_original_aspect_ratio", "decrease")),
			filtergraph.NewExpr("pad",
				filtergraph.Val(w), filtergraph.Val(h),
				filtergraph.Val("(ow-iw)/2"), filtergraph.Val("(oh-ih)/2")),
			setsar,
		}
	}
}
