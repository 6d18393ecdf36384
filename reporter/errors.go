package reporter

import (
	"fmt"

	"github.com/abnfkit/railroad/ast"
)

// ErrorWithPos is an error about an ABNF source file that includes the
// location in the file that caused it.
//
// The value of Error() contains both the position and the underlying
// message. The value of Unwrap() is the underlying error, without location
// information, when one exists.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	Unwrap() error
}

// LexError reports a run of characters that matches no token pattern.
// Text is the offending character run.
type LexError struct {
	Pos  ast.SourcePos
	Text string
	Msg  string
}

func (e *LexError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: unrecognized input %q", e.Pos, e.Text)
}

func (e *LexError) GetPosition() ast.SourcePos { return e.Pos }

func (e *LexError) Unwrap() error { return nil }

// ParseError reports malformed rule structure: an empty expression, an
// unmatched bracket or paren, an unexpected token, or unexpected end of
// input. TokenKind and TokenText describe the offending token when there
// is one.
type ParseError struct {
	Pos       ast.SourcePos
	Msg       string
	TokenKind string
	TokenText string
}

func (e *ParseError) Error() string {
	if e.TokenKind != "" {
		return fmt.Sprintf("%s: %s (found %s %q)", e.Pos, e.Msg, e.TokenKind, e.TokenText)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *ParseError) GetPosition() ast.SourcePos { return e.Pos }

func (e *ParseError) Unwrap() error { return nil }

// Warningf creates a non-fatal positioned diagnostic for delivery to a
// WarningReporter.
func Warningf(pos ast.SourcePos, format string, args ...any) ErrorWithPos {
	return &warningWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type warningWithPos struct {
	pos        ast.SourcePos
	underlying error
}

func (w *warningWithPos) Error() string {
	return fmt.Sprintf("%s: %v", w.pos, w.underlying)
}

func (w *warningWithPos) GetPosition() ast.SourcePos { return w.pos }

func (w *warningWithPos) Unwrap() error { return w.underlying }

var (
	_ ErrorWithPos = (*LexError)(nil)
	_ ErrorWithPos = (*ParseError)(nil)
	_ ErrorWithPos = (*warningWithPos)(nil)
)
