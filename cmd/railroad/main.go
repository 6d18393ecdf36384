// Command railroad compiles ABNF grammar files into railroad-diagram SVG.
//
// Usage:
//
//	railroad [flags] pattern...
//
// Each pattern is a glob (doublestar syntax, e.g. "grammars/**/*.abnf").
// By default every input file produces one HTML document containing all of
// its rule diagrams; with -svg each rule is written as its own .svg file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/abnfkit/railroad"
	"github.com/abnfkit/railroad/reporter"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("railroad: ")

	var (
		configPath = flag.String("config", "", "YAML config file")
		outDir     = flag.String("out", ".", "output directory")
		svgFiles   = flag.Bool("svg", false, "write one .svg file per rule instead of an HTML page per grammar")
		watch      = flag.Bool("watch", false, "watch input files and regenerate on change")
		grid       = flag.Int("grid", 0, "grid size in pixels (default 16)")
		fontSize   = flag.Int("font-size", 0, "font size in pixels (default 14)")
		fontFamily = flag.String("font-family", "", "font family (default monospace)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: railroad [flags] pattern...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	// explicit flags win over the config file
	if *outDir != "." {
		cfg.Out = *outDir
	}
	if *svgFiles {
		cfg.SVGFiles = true
	}
	if *grid > 0 {
		cfg.Grid = *grid
	}
	if *fontSize > 0 {
		cfg.FontSize = *fontSize
	}
	if *fontFamily != "" {
		cfg.FontFamily = *fontFamily
	}
	if cfg.Out == "" {
		cfg.Out = "."
	}

	files, err := expandGlobs(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no input files matched")
	}

	gen := &generator{cfg: cfg}
	failed := false
	for _, f := range files {
		if err := gen.generate(context.Background(), f); err != nil {
			log.Printf("%s: %v", f, err)
			failed = true
		}
	}

	if *watch {
		if err := watchFiles(files, func(f string) {
			if err := gen.generate(context.Background(), f); err != nil {
				log.Printf("%s: %v", f, err)
			}
		}); err != nil {
			log.Fatal(err)
		}
		return
	}
	if failed {
		os.Exit(1)
	}
}

func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		if matches == nil && !strings.ContainsAny(pat, "*?[{") {
			// a literal path that matched nothing still names one file
			matches = []string{pat}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

type generator struct {
	cfg *config
}

func (g *generator) generate(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := railroad.Compiler{
		Options: g.cfg.options(),
		Warnings: func(w reporter.ErrorWithPos) {
			log.Printf("warning: %v", w)
		},
	}
	results, err := c.Compile(ctx, path, src)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if g.cfg.SVGFiles {
		return writeSVGFiles(filepath.Join(g.cfg.Out, base), results)
	}
	out := filepath.Join(g.cfg.Out, base+".html")
	if err := writeHTML(out, base, results); err != nil {
		return err
	}
	log.Printf("%s: %d rule(s) -> %s", path, results.Len(), out)
	return nil
}

func writeSVGFiles(dir string, results *railroad.Results) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var werr error
	results.Scan(func(r *railroad.Result) bool {
		out := filepath.Join(dir, r.Name+".svg")
		if err := os.WriteFile(out, []byte(r.SVG), 0o644); err != nil {
			werr = err
			return false
		}
		return true
	})
	return werr
}
