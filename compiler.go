package railroad

import (
	"context"
	"runtime"
	"sync"

	"github.com/tidwall/btree"
	"golang.org/x/sync/errgroup"

	"github.com/abnfkit/railroad/diagram"
	"github.com/abnfkit/railroad/parser"
	"github.com/abnfkit/railroad/reporter"
	"github.com/abnfkit/railroad/svg"
)

// Compiler turns ABNF grammar text into one railroad-diagram SVG fragment
// per rule.
//
// The compilation process involves five steps for each rule:
//  1. Tokenizing the source into a positioned token stream.
//  2. Parsing the token stream into a grammar expression tree.
//  3. Transforming the tree onto the diagram shape vocabulary.
//  4. Laying out the shapes (width, height, baseline in grid units).
//  5. Routing the tracks and emitting the SVG fragment.
//
// The zero value is usable and applies the documented defaults
// (16px grid, 14px monospace font).
type Compiler struct {
	// Options configures the grid, font, and track styling of the emitted
	// SVG. The layout engine derives text widths from the same grid and
	// font settings.
	Options svg.Options

	// Measurer overrides text measurement. If nil, a monospace measurer
	// based on grapheme cluster counts is used.
	Measurer diagram.Measurer

	// Warnings receives non-fatal diagnostics, such as repetitions whose
	// bounded maximum cannot be drawn. If nil, warnings are discarded.
	Warnings reporter.WarningReporter

	// MaxParallelism bounds how many rules are rendered concurrently. If
	// non-positive, min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is used.
	// Parallelism never changes the output.
	MaxParallelism int
}

// Result is the compiled diagram for a single rule.
type Result struct {
	Name     string
	Original string // verbatim rule source text
	SVG      string // self-contained <svg> fragment
}

// Results holds compiled diagrams ordered by rule name.
type Results struct {
	m btree.Map[string, *Result]
}

// Get returns the result for a rule name, or nil.
func (r *Results) Get(name string) *Result {
	res, _ := r.m.Get(name)
	return res
}

// Len returns the number of compiled rules.
func (r *Results) Len() int { return r.m.Len() }

// Scan visits every result in rule-name order.
func (r *Results) Scan(fn func(*Result) bool) {
	r.m.Scan(func(_ string, res *Result) bool { return fn(res) })
}

// Compile parses src and renders a diagram for every rule. Parsing happens
// once up front; a lex or parse error in any rule aborts the whole file,
// since other rules may reference the broken one. Rendering of the parsed
// rules is embarrassingly parallel and runs under the configured
// parallelism bound.
func (c *Compiler) Compile(ctx context.Context, filename string, src []byte) (*Results, error) {
	g, err := parser.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	var mu sync.Mutex
	handler := reporter.NewHandler(c.lockedWarnings(&mu))

	eng := &diagram.Engine{Grid: c.Options.GridSize, Measure: c.measurer()}
	rendered := make([]string, len(g.Rules))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(par)
	for i, rule := range g.Rules {
		i, rule := i, rule
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shape := diagram.Transform(rule.Expr, handler)
			laid := eng.Lay(shape)
			rendered[i] = svg.Render(rule.Name, laid, c.Options)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	results := &Results{}
	for i, rule := range g.Rules {
		results.m.Set(rule.Name, &Result{
			Name:     rule.Name,
			Original: rule.Original,
			SVG:      rendered[i],
		})
	}
	return results, nil
}

// lockedWarnings serializes warning delivery, since rules render
// concurrently but reporters are not required to be thread-safe.
func (c *Compiler) lockedWarnings(mu *sync.Mutex) reporter.WarningReporter {
	if c.Warnings == nil {
		return nil
	}
	return func(w reporter.ErrorWithPos) {
		mu.Lock()
		defer mu.Unlock()
		c.Warnings(w)
	}
}

func (c *Compiler) measurer() diagram.Measurer {
	if c.Measurer != nil {
		return c.Measurer
	}
	fontSize := c.Options.FontSize
	if fontSize <= 0 {
		fontSize = diagram.DefaultFontSize
	}
	return diagram.Monospace{FontSize: fontSize}
}

// Compile compiles src with a default Compiler.
func Compile(ctx context.Context, filename string, src []byte) (*Results, error) {
	var c Compiler
	return c.Compile(ctx, filename, src)
}
