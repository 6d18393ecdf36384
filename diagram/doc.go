// Package diagram maps grammar expression trees onto railroad-diagram
// shapes and computes their geometry.
//
// The shape vocabulary has five constructors: TextBox, Sequence, Stack,
// Bypass, and Loop. Transform builds an unlaid shape tree from an AST;
// Engine.Lay then assigns width, height, and baseline to every node,
// bottom-up, producing a distinct Laid tree so that unsized shapes can
// never be read by the renderer.
//
// All geometry is in integer grid units. Widths are always even, which
// makes the (parent-child)/2 centering arithmetic exact everywhere a
// composite centers a child.
package diagram
