// Package ast defines the expression tree produced by parsing an ABNF rule
// definition, along with source position information used in diagnostics.
//
// A tree is a tagged union over six constructs: Terminal, Nonterminal,
// Sequence, Alternation, Optional, and Repetition. Sequence and Alternation
// always hold at least two elements; a singleton degenerates to its only
// child during parsing. Trees are immutable after the parser returns them.
package ast
