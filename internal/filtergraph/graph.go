// Package filtergraph models the labeled filter graph handed to the
// transcoding engine. A graph is an ordered sequence of chains; each chain
// consumes one or more labeled streams, applies one or more filter
// expressions, and produces one or more labeled streams. Rendering follows
// the engine's text syntax: expressions joined with commas inside a chain,
// chains joined with semicolons, labels in square brackets.
package filtergraph

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Static errors for graph validation.
var (
	// ErrEmptyChain is returned when a chain carries no filter expression.
	ErrEmptyChain = errors.New("filtergraph: chain has no filter expressions")
	// ErrNoTerminal is returned when a non-empty graph designates no output label.
	ErrNoTerminal = errors.New("filtergraph: graph has no terminal labels")
)

// Arg is a single filter argument. Key is empty for positional arguments
// and set for key=value arguments.
type Arg struct {
	Key   string
	Value string
}

// KV returns a keyed argument, rendered as key=value.
func KV(key, value string) Arg {
	return Arg{Key: key, Value: value}
}

// Val returns a positional argument, rendered as its bare value.
func Val(value string) Arg {
	return Arg{Value: value}
}

// Expr is one named filter expression with its ordered arguments, for
// example scale=640:480:force_original_aspect_ratio=increase.
type Expr struct {
	Name string
	Args []Arg
}

// NewExpr builds an expression from a filter name and its arguments.
func NewExpr(name string, args ...Arg) Expr {
	return Expr{Name: name, Args: args}
}

// Raw wraps a caller-supplied filter expression verbatim, for example
// "eq=brightness=0.06". The text passes through rendering unchanged.
func Raw(expr string) Expr {
	return Expr{Name: expr}
}

// String renders the expression in engine syntax. Arguments keep their
// construction order; positional and keyed arguments may be mixed.
func (e Expr) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		if a.Key == "" {
			parts = append(parts, a.Value)
			continue
		}
		parts = append(parts, a.Key+"="+a.Value)
	}
	return e.Name + "=" + strings.Join(parts, ":")
}

// Chain is one link of the graph: labeled inputs, a comma-joined filter
// sequence, and labeled outputs. Most chains have exactly one output; a
// combined concat chain producing both video and audio has two.
type Chain struct {
	Inputs  []string
	Exprs   []Expr
	Outputs []string
}

// String renders the chain as [in...]expr,expr[out...].
func (c Chain) String() string {
	var b strings.Builder
	for _, in := range c.Inputs {
		b.WriteString("[" + in + "]")
	}
	exprs := make([]string, 0, len(c.Exprs))
	for _, e := range c.Exprs {
		exprs = append(exprs, e.String())
	}
	b.WriteString(strings.Join(exprs, ","))
	for _, out := range c.Outputs {
		b.WriteString("[" + out + "]")
	}
	return b.String()
}

// Graph is an ordered sequence of chains plus the designated terminal
// labels. At most one terminal video label and at most one terminal audio
// label exist; streams that bypass the graph are mapped from their raw
// engine inputs instead. A zero Graph is a valid empty graph (no filtering
// requested).
type Graph struct {
	Chains   []Chain
	VideoOut string
	AudioOut string
}

// Add appends a chain, preserving caller order. Chains are never reordered.
func (g *Graph) Add(c Chain) {
	g.Chains = append(g.Chains, c)
}

// Empty reports whether the graph contains no chains.
func (g *Graph) Empty() bool {
	return len(g.Chains) == 0
}

// String renders the full graph with chains joined by semicolons. Identical
// graphs always render to byte-identical strings.
func (g *Graph) String() string {
	chains := make([]string, 0, len(g.Chains))
	for _, c := range g.Chains {
		chains = append(chains, c.String())
	}
	return strings.Join(chains, ";")
}

// rawStreamPattern matches labels that address a raw engine input stream,
// such as 0:v or 2:a. These need no producing chain.
var rawStreamPattern = regexp.MustCompile(`^\d+:[va]$`)

// IsRawStream reports whether label addresses a raw engine input stream
// rather than a chain output.
func IsRawStream(label string) bool {
	return rawStreamPattern.MatchString(label)
}

// Validate checks the structural invariants of the graph:
//
//   - every chain has at least one input, one expression, and one output;
//   - every output label is unique and does not shadow a raw stream label;
//   - every input label is either a raw engine stream or was produced by an
//     earlier chain, and no produced label is consumed twice;
//   - at least one terminal label is designated, and every designated
//     terminal label is produced and left unconsumed.
//
// An empty graph is valid only with empty terminal labels.
func (g *Graph) Validate() error {
	if g.Empty() {
		if g.VideoOut != "" || g.AudioOut != "" {
			return fmt.Errorf("filtergraph: terminal labels %q/%q set on empty graph", g.VideoOut, g.AudioOut)
		}
		return nil
	}

	produced := make(map[string]bool)
	consumed := make(map[string]bool)

	for i, c := range g.Chains {
		if len(c.Exprs) == 0 {
			return fmt.Errorf("%w (chain %d)", ErrEmptyChain, i)
		}
		if len(c.Inputs) == 0 || len(c.Outputs) == 0 {
			return fmt.Errorf("filtergraph: chain %d must have inputs and outputs", i)
		}
		for _, in := range c.Inputs {
			if IsRawStream(in) {
				continue
			}
			if !produced[in] {
				return fmt.Errorf("filtergraph: chain %d consumes undefined label %q", i, in)
			}
			if consumed[in] {
				return fmt.Errorf("filtergraph: label %q consumed twice", in)
			}
			consumed[in] = true
		}
		for _, out := range c.Outputs {
			if IsRawStream(out) {
				return fmt.Errorf("filtergraph: output label %q shadows a raw stream", out)
			}
			if produced[out] {
				return fmt.Errorf("filtergraph: duplicate output label %q", out)
			}
			produced[out] = true
		}
	}

	if g.VideoOut == "" && g.AudioOut == "" {
		return ErrNoTerminal
	}
	for _, term := range []string{g.VideoOut, g.AudioOut} {
		if term == "" {
			continue
		}
		if !produced[term] {
			return fmt.Errorf("filtergraph: terminal label %q is not produced", term)
		}
		if consumed[term] {
			return fmt.Errorf("filtergraph: terminal label %q is consumed inside the graph", term)
		}
	}
	return nil
}
