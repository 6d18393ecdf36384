// Package railroad compiles grammars written in Augmented Backus-Naur Form
// (ABNF, RFC 5234) into railroad-diagram SVG fragments, one per rule.
//
// The pipeline is strictly forward: text -> tokens -> expression tree ->
// shape tree -> laid-out shape tree -> SVG. Each stage lives in its own
// package (parser, diagram, svg); this package ties them together behind
// the Compiler type and runs per-rule rendering with bounded parallelism.
package railroad
