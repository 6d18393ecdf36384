package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abnfkit/railroad/ast"
	"github.com/abnfkit/railroad/reporter"
)

// astDiff compares expression trees structurally, ignoring positions.
func astDiff(want, got ast.Node) string {
	return cmp.Diff(want, got,
		cmpopts.IgnoreFields(ast.Terminal{}, "Pos"),
		cmpopts.IgnoreFields(ast.Nonterminal{}, "Pos"),
		cmpopts.IgnoreFields(ast.Sequence{}, "Pos"),
		cmpopts.IgnoreFields(ast.Alternation{}, "Pos"),
		cmpopts.IgnoreFields(ast.Optional{}, "Pos"),
		cmpopts.IgnoreFields(ast.Repetition{}, "Pos"),
	)
}

func mustParseRule(t *testing.T, src string) *Rule {
	t.Helper()
	g, err := Parse("test.abnf", []byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, g.Rules)
	return g.Rules[0]
}

func TestParseSequenceAndAlternation(t *testing.T) {
	rule := mustParseRule(t, `rule = "a" b / c d e`)
	want := &ast.Alternation{Elements: []ast.Node{
		&ast.Sequence{Elements: []ast.Node{
			&ast.Terminal{Text: `"a"`},
			&ast.Nonterminal{Name: "b"},
		}},
		&ast.Sequence{Elements: []ast.Node{
			&ast.Nonterminal{Name: "c"},
			&ast.Nonterminal{Name: "d"},
			&ast.Nonterminal{Name: "e"},
		}},
	}}
	if diff := astDiff(want, rule.Expr); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSingletonsDegenerate(t *testing.T) {
	rule := mustParseRule(t, "rule = other")
	_, ok := rule.Expr.(*ast.Nonterminal)
	assert.True(t, ok, "single element must not be wrapped, got %T", rule.Expr)
}

func TestParseGroupingTransparent(t *testing.T) {
	rule := mustParseRule(t, "rule = (a / b) c")
	want := &ast.Sequence{Elements: []ast.Node{
		&ast.Alternation{Elements: []ast.Node{
			&ast.Nonterminal{Name: "a"},
			&ast.Nonterminal{Name: "b"},
		}},
		&ast.Nonterminal{Name: "c"},
	}}
	if diff := astDiff(want, rule.Expr); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptionalBrackets(t *testing.T) {
	rule := mustParseRule(t, "rule = [a b]")
	opt, ok := rule.Expr.(*ast.Optional)
	require.True(t, ok, "got %T", rule.Expr)
	_, ok = opt.Element.(*ast.Sequence)
	assert.True(t, ok)
}

func TestParseRepetitionForms(t *testing.T) {
	cases := []struct {
		src     string
		min     uint32
		max     uint32
		bounded bool
	}{
		{"rule = *x", 0, 0, false},
		{"rule = 4*x", 4, 0, false},
		{"rule = *6x", 0, 6, true},
		{"rule = 4*6x", 4, 6, true},
		{"rule = 4x", 4, 4, true},
		{"rule = 0x", 0, 0, true},
		{"rule = 1*x", 1, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			rule := mustParseRule(t, tc.src)
			rep, ok := rule.Expr.(*ast.Repetition)
			require.True(t, ok, "got %T", rule.Expr)
			assert.Equal(t, tc.min, rep.Min)
			assert.Equal(t, tc.bounded, rep.Bounded)
			if tc.bounded {
				assert.Equal(t, tc.max, rep.Max)
			}
			_, ok = rep.Element.(*ast.Nonterminal)
			assert.True(t, ok)
		})
	}
}

func TestParseLiteralPreservation(t *testing.T) {
	rule := mustParseRule(t, `rule = %s"Hello"`)
	term, ok := rule.Expr.(*ast.Terminal)
	require.True(t, ok)
	assert.Equal(t, `%s"Hello"`, term.Text)

	rule = mustParseRule(t, `rule = %i"WORLD"`)
	term = rule.Expr.(*ast.Terminal)
	assert.Equal(t, `%i"WORLD"`, term.Text)

	rule = mustParseRule(t, "rule = %x41-5A")
	term = rule.Expr.(*ast.Terminal)
	assert.Equal(t, "%x41-5A", term.Text)
}

func TestParseMultilineRule(t *testing.T) {
	src := "first = a b\n  c / d\nsecond = e"
	g, err := Parse("", []byte(src))
	require.NoError(t, err)
	require.Len(t, g.Rules, 2)
	assert.Equal(t, "first", g.Rules[0].Name)
	assert.Equal(t, "first = a b\n  c / d", g.Rules[0].Original)
	assert.Equal(t, "second = e", g.Rules[1].Original)

	// the continuation folds into the first rule's alternation
	alt, ok := g.Rules[0].Expr.(*ast.Alternation)
	require.True(t, ok, "got %T", g.Rules[0].Expr)
	assert.Len(t, alt.Elements, 2)
}

func TestParseDuplicateRuleLastWins(t *testing.T) {
	g, err := Parse("", []byte("r = a\nr = b"))
	require.NoError(t, err)
	require.Len(t, g.Rules, 1)
	nt, ok := g.Rules[0].Expr.(*ast.Nonterminal)
	require.True(t, ok)
	assert.Equal(t, "b", nt.Name)
	assert.Same(t, g.Rules[0], g.Rule("r"))
}

func TestParseMissingCloseParenPointsAtOpener(t *testing.T) {
	_, err := Parse("", []byte("rule = (a"))
	var parseErr *reporter.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Pos.Line)
	assert.Equal(t, 8, parseErr.Pos.Col)
	assert.Contains(t, parseErr.Msg, "')'")
}

func TestParseMissingCloseBracketPointsAtOpener(t *testing.T) {
	_, err := Parse("", []byte("rule = a [b"))
	var parseErr *reporter.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 10, parseErr.Pos.Col)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty definition", "rule ="},
		{"empty branch", "rule = a /"},
		{"leading slash", "rule = / a"},
		{"empty group", "rule = ()"},
		{"dangling repeat", "rule = 3*"},
		{"bare count", "rule = 4"},
		{"no rule header", "/ a"},
		{"stray close paren", "rule = a )"},
		{"max below min", "rule = 5*2a"},
		{"count overflow", "rule = 99999999999*a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("", []byte(tc.src))
			var parseErr *reporter.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Greater(t, parseErr.Pos.Line, 0)
			assert.Greater(t, parseErr.Pos.Col, 0)
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	g, err := Parse("", []byte("; only a comment\n"))
	require.NoError(t, err)
	assert.Empty(t, g.Rules)
}

func TestParseInspectCoversTree(t *testing.T) {
	rule := mustParseRule(t, "rule = 2(a [b]) / c")
	var names []string
	ast.Inspect(rule.Expr, func(n ast.Node) bool {
		if nt, ok := n.(*ast.Nonterminal); ok {
			names = append(names, nt.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
