// Package parser turns ABNF source text (the RFC 5234 subset accepted by
// this compiler) into grammar expression trees.
//
// It is structured as two layers in the usual way:
//
//   - Tokenize: converts raw bytes into a flat stream of positioned tokens,
//     discarding whitespace and ";" comments.
//   - Parse: finds rule headers in the token stream, slices out each rule's
//     token run, and parses it with a hand-rolled recursive-descent
//     expression parser (alternation / concatenation / repetition /
//     element).
//
// Quoted string terminals and %x/%d value terminals are preserved verbatim,
// including case-sensitivity prefixes and quotes, for later display.
package parser
