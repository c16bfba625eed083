package compile

import (
	"math"
	"strconv"
	"strings"

	"github.com/clipforge/clipforge/internal/filtergraph"
)

// The engine's audio tempo transform is only defined on [0.5, 2.0] per
// stage; arbitrary ratios are reached by chaining stages.
const (
	tempoStageMin = 0.5
	tempoStageMax = 2.0
)

// tempoIdentity is the tolerance below which a remaining factor counts as
// 1.0 and emits no stage.
const tempoIdentity = 1e-9

// DecomposeTempo splits a time-scale factor into an ordered sequence of
// tempo stages, each within [0.5, 2.0], whose product equals factor within
// floating rounding. A factor of exactly 1.0 yields an empty sequence
// rather than a single identity stage. Non-positive factors yield nil;
// callers validate the domain first.
func DecomposeTempo(factor float64) []float64 {
	if factor <= 0 {
		return nil
	}

	var stages []float64
	for factor > tempoStageMax {
		stages = append(stages, tempoStageMax)
		factor /= tempoStageMax
	}
	for factor < tempoStageMin {
		stages = append(stages, tempoStageMin)
		factor /= tempoStageMin
	}
	if math.Abs(factor-1.0) > tempoIdentity {
		stages = append(stages, factor)
	}
	return stages
}

// tempoExprs renders decomposed tempo stages as atempo expressions.
func tempoExprs(stages []float64) []filtergraph.Expr {
	exprs := make([]filtergraph.Expr, 0, len(stages))
	for _, s := range stages {
		exprs = append(exprs, filtergraph.NewExpr("atempo", filtergraph.Val(formatFloat(s))))
	}
	return exprs
}

// timestampExpr returns the video timestamp rescale for factor. Unlike the
// audio tempo transform it needs no range decomposition: a single
// setpts=(1/factor)*PTS covers any positive factor.
func timestampExpr(factor float64) filtergraph.Expr {
	return filtergraph.NewExpr("setpts", filtergraph.Val(formatFloat(1/factor)+"*PTS"))
}

// parseSpeedFactor parses the free-form speed field of the generic edit
// path. An empty value means no speed change.
func parseSpeedFactor(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1.0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "speed", Reason: "not a numeric value: " + strconv.Quote(s)}
	}
	if f <= 0 {
		return 0, &ValidationError{Field: "speed", Reason: "must be positive"}
	}
	return f, nil
}

// formatFloat renders v in the shortest decimal form the engine accepts.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
