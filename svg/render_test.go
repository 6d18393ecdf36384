package svg

import (
	"strconv"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnfkit/railroad/diagram"
	"github.com/abnfkit/railroad/parser"
)

type fixedWidth struct{}

func (fixedWidth) Width(text string) int { return 8 * len(text) }

func renderRule(t *testing.T, src string) string {
	t.Helper()
	g, err := parser.Parse("", []byte(src))
	require.NoError(t, err)
	require.Len(t, g.Rules, 1)
	eng := &diagram.Engine{Grid: 16, Measure: fixedWidth{}}
	laid := eng.Lay(diagram.Transform(g.Rules[0].Expr, nil))
	return Render(g.Rules[0].Name, laid, Options{GridSize: 16})
}

func TestRenderFragmentIsSelfContained(t *testing.T) {
	out := renderRule(t, "rule = a b")
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
	assert.Contains(t, out, `data-rule="rule"`)
	// one endpoint marker at each end of the diagram
	assert.Equal(t, 2, strings.Count(out, `class="endpoint"`))
	assert.Contains(t, out, `viewBox="0 0 `)
}

func TestRenderRepetitionCounts(t *testing.T) {
	out := renderRule(t, "GUID = 8HEXDIG 4HEXDIG 12HEXDIG")
	assert.Equal(t, 24, strings.Count(out, ">HEXDIG</text>"))
}

func TestRenderTextBoxKinds(t *testing.T) {
	out := renderRule(t, `rule = "lit" name`)
	// terminal boxes are rounded, nonterminal boxes are square
	assert.Contains(t, out, `rx="8"`)
	assert.Contains(t, out, `rx="0"`)
	assert.Contains(t, out, `>&quot;lit&quot;</text>`)
	assert.Contains(t, out, ">name</text>")
}

func TestRenderEscapesText(t *testing.T) {
	out := renderRule(t, `rule = "a<b&c"`)
	assert.Contains(t, out, "&lt;")
	assert.Contains(t, out, "&amp;")
	assert.NotContains(t, out, "a<b")
}

func TestRenderArcsUseGridRadius(t *testing.T) {
	out := renderRule(t, "rule = [a]")
	// the skip path turns through quarter-circle arcs of one grid unit
	assert.Contains(t, out, "A 16 16 0 0 ")
}

func TestRenderDimensionsMatchLayout(t *testing.T) {
	g, err := parser.Parse("", []byte("rule = ab"))
	require.NoError(t, err)
	eng := &diagram.Engine{Grid: 16, Measure: fixedWidth{}}
	laid := eng.Lay(diagram.Transform(g.Rules[0].Expr, nil))
	geom := laid.Geom()

	out := Render("rule", laid, Options{GridSize: 16})
	// frame adds 2 units each side horizontally, 1 vertically
	assert.Contains(t, out, `width="`+strconv.Itoa((geom.Width+4)*16)+`"`)
	assert.Contains(t, out, `height="`+strconv.Itoa((geom.Height+2)*16)+`"`)
}

func TestRenderDeterministic(t *testing.T) {
	src := "GUID = 8HEXDIG [4HEXDIG] *(other / %x41-5A)"
	first := renderRule(t, src)
	second := renderRule(t, src)
	if first != second {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "first",
			ToFile:   "second",
			Context:  2,
		})
		t.Fatalf("non-deterministic output:\n%s", diff)
	}
}

func TestRenderEmptyRule(t *testing.T) {
	out := renderRule(t, "rule = 0x")
	// nothing but the frame: markers and lead-in tracks
	assert.Equal(t, 2, strings.Count(out, `class="endpoint"`))
	assert.NotContains(t, out, "<rect")
}
