package filtergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "no arguments",
			expr: NewExpr("anull"),
			want: "anull",
		},
		{
			name: "single positional",
			expr: NewExpr("atempo", Val("2.0")),
			want: "atempo=2.0",
		},
		{
			name: "positional then keyed",
			expr: NewExpr("scale", Val("640"), Val("480"), KV("force_original_aspect_ratio", "increase")),
			want: "scale=640:480:force_original_aspect_ratio=increase",
		},
		{
			name: "all keyed",
			expr: NewExpr("concat", KV("n", "2"), KV("v", "1"), KV("a", "1")),
			want: "concat=n=2:v=1:a=1",
		},
		{
			name: "expression value",
			expr: NewExpr("setpts", Val("0.5*PTS")),
			want: "setpts=0.5*PTS",
		},
		{
			name: "raw passthrough",
			expr: Raw("eq=brightness=0.06:saturation=1.2"),
			want: "eq=brightness=0.06:saturation=1.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestChainString(t *testing.T) {
	c := Chain{
		Inputs: []string{"0:v"},
		Exprs: []Expr{
			NewExpr("scale", Val("1280"), Val("720")),
			NewExpr("setsar", Val("1")),
		},
		Outputs: []string{"v0"},
	}
	assert.Equal(t, "[0:v]scale=1280:720,setsar=1[v0]", c.String())
}

func TestChainString_MultipleLabels(t *testing.T) {
	c := Chain{
		Inputs:  []string{"v0", "0:a", "v1", "1:a"},
		Exprs:   []Expr{NewExpr("concat", KV("n", "2"), KV("v", "1"), KV("a", "1"))},
		Outputs: []string{"v", "a"},
	}
	assert.Equal(t, "[v0][0:a][v1][1:a]concat=n=2:v=1:a=1[v][a]", c.String())
}

func TestGraphString(t *testing.T) {
	var g Graph
	g.Add(VideoChain(0, []Expr{NewExpr("scale", Val("640"), Val("480"))}))
	g.Add(VideoChain(1, []Expr{NewExpr("scale", Val("640"), Val("480"))}))
	g.Add(Chain{
		Inputs:  []string{"v0", "v1"},
		Exprs:   []Expr{NewExpr("concat", KV("n", "2"), KV("v", "1"), KV("a", "0"))},
		Outputs: []string{"v"},
	})
	g.VideoOut = "v"

	want := "[0:v]scale=640:480[v0];[1:v]scale=640:480[v1];[v0][v1]concat=n=2:v=1:a=0[v]"
	assert.Equal(t, want, g.String())
	require.NoError(t, g.Validate())
}

func TestGraphString_Deterministic(t *testing.T) {
	build := func() *Graph {
		var g Graph
		for i := 0; i < 3; i++ {
			g.Add(VideoChain(i, []Expr{NewExpr("scale", Val("320"), Val("240"))}))
		}
		g.Add(Chain{
			Inputs:  []string{"v0", "v1", "v2"},
			Exprs:   []Expr{NewExpr("concat", KV("n", "3"), KV("v", "1"), KV("a", "0"))},
			Outputs: []string{"v"},
		})
		g.VideoOut = "v"
		return &g
	}

	first := build().String()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build().String())
	}
}

func TestGraphValidate(t *testing.T) {
	t.Run("empty graph is valid", func(t *testing.T) {
		var g Graph
		require.NoError(t, g.Validate())
	})

	t.Run("empty graph with terminal label is invalid", func(t *testing.T) {
		g := Graph{VideoOut: "v"}
		require.Error(t, g.Validate())
	})

	t.Run("chain without expressions", func(t *testing.T) {
		var g Graph
		g.Add(Chain{Inputs: []string{"0:v"}, Outputs: []string{"v0"}})
		g.VideoOut = "v0"
		assert.ErrorIs(t, g.Validate(), ErrEmptyChain)
	})

	t.Run("missing terminal labels", func(t *testing.T) {
		var g Graph
		g.Add(VideoChain(0, []Expr{NewExpr("setsar", Val("1"))}))
		assert.ErrorIs(t, g.Validate(), ErrNoTerminal)
	})

	t.Run("audio-only graph is valid", func(t *testing.T) {
		var g Graph
		g.Add(Chain{
			Inputs:  []string{"0:a"},
			Exprs:   []Expr{NewExpr("volume", Val("0.5"))},
			Outputs: []string{"a"},
		})
		g.AudioOut = "a"
		require.NoError(t, g.Validate())
	})

	t.Run("undefined input label", func(t *testing.T) {
		var g Graph
		g.Add(Chain{
			Inputs:  []string{"nope"},
			Exprs:   []Expr{NewExpr("setsar", Val("1"))},
			Outputs: []string{"v0"},
		})
		g.VideoOut = "v0"
		require.Error(t, g.Validate())
	})

	t.Run("raw input labels need no producer", func(t *testing.T) {
		var g Graph
		g.Add(Chain{
			Inputs:  []string{"0:v", "0:a", "1:v", "1:a"},
			Exprs:   []Expr{NewExpr("concat", KV("n", "2"), KV("v", "1"), KV("a", "1"))},
			Outputs: []string{"v", "a"},
		})
		g.VideoOut = "v"
		g.AudioOut = "a"
		require.NoError(t, g.Validate())
	})

	t.Run("duplicate output label", func(t *testing.T) {
		var g Graph
		g.Add(VideoChain(0, []Expr{NewExpr("setsar", Val("1"))}))
		g.Add(VideoChain(0, []Expr{NewExpr("setsar", Val("1"))}))
		g.VideoOut = ClipVideo(0)
		require.Error(t, g.Validate())
	})

	t.Run("label consumed twice", func(t *testing.T) {
		var g Graph
		g.Add(VideoChain(0, []Expr{NewExpr("setsar", Val("1"))}))
		g.Add(Chain{Inputs: []string{"v0"}, Exprs: []Expr{NewExpr("setsar", Val("1"))}, Outputs: []string{"x"}})
		g.Add(Chain{Inputs: []string{"v0"}, Exprs: []Expr{NewExpr("setsar", Val("1"))}, Outputs: []string{"y"}})
		g.VideoOut = "y"
		require.Error(t, g.Validate())
	})

	t.Run("terminal label consumed inside graph", func(t *testing.T) {
		var g Graph
		g.Add(VideoChain(0, []Expr{NewExpr("setsar", Val("1"))}))
		g.Add(Chain{Inputs: []string{"v0"}, Exprs: []Expr{NewExpr("setsar", Val("1"))}, Outputs: []string{"v"}})
		g.VideoOut = "v0"
		require.Error(t, g.Validate())
	})

	t.Run("output label shadowing raw stream", func(t *testing.T) {
		var g Graph
		g.Add(Chain{
			Inputs:  []string{"0:v"},
			Exprs:   []Expr{NewExpr("setsar", Val("1"))},
			Outputs: []string{"1:v"},
		})
		g.VideoOut = "1:v"
		require.Error(t, g.Validate())
	})
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "0:v", InputVideo(0))
	assert.Equal(t, "3:a", InputAudio(3))
	assert.Equal(t, "v2", ClipVideo(2))

	assert.True(t, IsRawStream("0:v"))
	assert.True(t, IsRawStream("12:a"))
	assert.False(t, IsRawStream("v0"))
	assert.False(t, IsRawStream("0:s"))
}
