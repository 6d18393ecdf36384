package diagram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnfkit/railroad/parser"
	"github.com/abnfkit/railroad/reporter"
)

func transformRule(t *testing.T, src string, h *reporter.Handler) Shape {
	t.Helper()
	g, err := parser.Parse("", []byte(src))
	require.NoError(t, err)
	require.Len(t, g.Rules, 1)
	return Transform(g.Rules[0].Expr, h)
}

func nonterm(name string) *TextBox {
	return &TextBox{Text: name, Kind: NonterminalText}
}

func TestTransformLeaves(t *testing.T) {
	shape := transformRule(t, `rule = "lit"`, nil)
	assert.Equal(t, &TextBox{Text: `"lit"`, Kind: TerminalText}, shape)

	shape = transformRule(t, "rule = %x41-5A", nil)
	assert.Equal(t, &TextBox{Text: "%x41-5A", Kind: TerminalText}, shape)

	shape = transformRule(t, "rule = other", nil)
	assert.Equal(t, nonterm("other"), shape)
}

func TestTransformComposites(t *testing.T) {
	shape := transformRule(t, "rule = a b / c", nil)
	want := &Stack{Children: []Shape{
		&Sequence{Children: []Shape{nonterm("a"), nonterm("b")}},
		nonterm("c"),
	}}
	if diff := cmp.Diff(want, shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}

	shape = transformRule(t, "rule = [a]", nil)
	assert.Equal(t, &Bypass{Child: nonterm("a")}, shape)
}

// TestTransformRepetitionTable pins the repetition expansion, row by row.
func TestTransformRepetitionTable(t *testing.T) {
	x := func() Shape { return nonterm("X") }
	cases := []struct {
		src  string
		want Shape
		warn bool
	}{
		{src: "rule = *X", want: &Bypass{Child: &Loop{Child: x()}}},
		{src: "rule = 1*X", want: &Loop{Child: x()}},
		{src: "rule = 3*X", want: &Sequence{Children: []Shape{x(), x(), &Loop{Child: x()}}}},
		{src: "rule = 0*1X", want: &Bypass{Child: x()}},
		{src: "rule = *1X", want: &Bypass{Child: x()}},
		{src: "rule = 1X", want: x()},
		{src: "rule = 1*1X", want: x()},
		{src: "rule = 0X", want: &Sequence{}},
		{src: "rule = 0*0X", want: &Sequence{}},
		{src: "rule = 4X", want: &Sequence{Children: []Shape{x(), x(), x(), x()}}},
		// a bounded maximum above one cannot be drawn; the bound is dropped
		{src: "rule = *3X", want: &Bypass{Child: &Loop{Child: x()}}, warn: true},
		{src: "rule = 0*3X", want: &Bypass{Child: &Loop{Child: x()}}, warn: true},
		{src: "rule = 1*3X", want: &Loop{Child: x()}, warn: true},
		{src: "rule = 2*5X", want: &Sequence{Children: []Shape{x(), &Loop{Child: x()}}}, warn: true},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			var warnings []reporter.ErrorWithPos
			h := reporter.NewHandler(func(w reporter.ErrorWithPos) {
				warnings = append(warnings, w)
			})
			shape := transformRule(t, tc.src, h)
			if diff := cmp.Diff(tc.want, shape); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
			if tc.warn {
				require.Len(t, warnings, 1)
				assert.Contains(t, warnings[0].Error(), "cannot be drawn")
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestTransformRepetitionCopiesAreDistinct(t *testing.T) {
	shape := transformRule(t, "rule = 3X", nil)
	seq, ok := shape.(*Sequence)
	require.True(t, ok)
	require.Len(t, seq.Children, 3)
	// strict tree: each occurrence is its own node, never shared
	assert.NotSame(t, seq.Children[0], seq.Children[1])
	assert.NotSame(t, seq.Children[1], seq.Children[2])
}

func TestTransformNilPanics(t *testing.T) {
	assert.Panics(t, func() { Transform(nil, nil) })
}
