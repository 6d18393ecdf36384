package parser

import (
	"github.com/abnfkit/railroad/ast"
	"github.com/abnfkit/railroad/reporter"
)

// Tokenize scans ABNF source text into a flat token stream. Whitespace and
// ";" comments are recognized and discarded while still advancing line and
// column counters; everything else must match a token pattern or the scan
// fails with a *reporter.LexError. The returned tokens tile the input with
// no gaps.
func Tokenize(filename string, src []byte) ([]Token, error) {
	l := &lexer{filename: filename, src: src, line: 1, col: 1}
	var toks []Token
	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

type lexer struct {
	filename string
	src      []byte
	pos      int // current byte offset
	line     int // current line (1-based)
	col      int // current column (1-based)
}

func (l *lexer) currentPos() ast.SourcePos {
	return ast.SourcePos{Filename: l.filename, Line: l.line, Col: l.col, Offset: l.pos}
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(ahead int) byte {
	if l.pos+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.pos+ahead]
}

// advance consumes one byte. CR, LF, and CRLF each count as a single
// newline; the LF of a CRLF pair does not advance the line a second time.
func (l *lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	switch {
	case ch == '\r':
		l.line++
		l.col = 1
	case ch == '\n':
		if l.pos >= 2 && l.src[l.pos-2] == '\r' {
			// second half of CRLF, already counted
		} else {
			l.line++
			l.col = 1
		}
	default:
		l.col++
	}
	return ch
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == ';':
			for !l.atEnd() && l.peek() != '\n' && l.peek() != '\r' {
				l.advance()
			}
		default:
			return
		}
	}
}

// scan commits to the first pattern matching at the current position.
// Pattern order matters: repetition counts are tried before bare integers
// so that "4*" is one token rather than the integer 4 and a stray star.
func (l *lexer) scan() (Token, error) {
	l.skipWhitespaceAndComments()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch {
	case ch == '"' || ch == '\'':
		return l.scanString(pos)
	case ch == '%':
		return l.scanPercent(pos)
	case isDigit(ch):
		return l.scanCountOrInteger(pos)
	case ch == '*':
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
		if l.pos-pos.Offset > 1 {
			return Token{Kind: TokenRepeat, Text: l.text(pos), Pos: pos}, nil
		}
		return Token{Kind: TokenStar, Text: "*", Pos: pos}, nil
	case isAlpha(ch):
		return l.scanIdentifier(pos)
	case ch == '=':
		l.advance()
		return Token{Kind: TokenAssign, Text: "=", Pos: pos}, nil
	case ch == ':':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return Token{Kind: TokenAssign, Text: ":=", Pos: pos}, nil
		}
		return Token{}, &reporter.LexError{Pos: pos, Text: ":"}
	case ch == '/':
		l.advance()
		return Token{Kind: TokenSlash, Text: "/", Pos: pos}, nil
	case ch == '(':
		l.advance()
		return Token{Kind: TokenLParen, Text: "(", Pos: pos}, nil
	case ch == ')':
		l.advance()
		return Token{Kind: TokenRParen, Text: ")", Pos: pos}, nil
	case ch == '[':
		l.advance()
		return Token{Kind: TokenLBracket, Text: "[", Pos: pos}, nil
	case ch == ']':
		l.advance()
		return Token{Kind: TokenRBracket, Text: "]", Pos: pos}, nil
	}

	// Unrecognized: capture the whole offending run for the error.
	for !l.atEnd() && !isTokenStart(l.peek()) && !isSpace(l.peek()) {
		l.advance()
	}
	return Token{}, &reporter.LexError{Pos: pos, Text: l.text(pos)}
}

func (l *lexer) text(from ast.SourcePos) string {
	return string(l.src[from.Offset:l.pos])
}

// scanString consumes a quoted literal. ABNF strings have no escapes; the
// literal runs to the matching quote on the same line. The token text keeps
// the quotes (and any %s/%i prefix consumed by the caller) verbatim.
func (l *lexer) scanString(start ast.SourcePos) (Token, error) {
	quote := l.advance()
	for {
		if l.atEnd() || l.peek() == '\n' || l.peek() == '\r' {
			return Token{}, &reporter.LexError{Pos: start, Text: l.text(start), Msg: "unterminated string literal"}
		}
		if l.advance() == quote {
			return Token{Kind: TokenString, Text: l.text(start), Pos: start}, nil
		}
	}
}

// scanPercent handles %s"..." / %i"..." case-sensitivity prefixes and
// %x / %d numeric values (with "." concatenation and "-" range forms).
func (l *lexer) scanPercent(start ast.SourcePos) (Token, error) {
	l.advance() // consume '%'
	switch l.peek() {
	case 's', 'S', 'i', 'I':
		q := l.peekAt(1)
		if q != '"' && q != '\'' {
			break
		}
		l.advance() // prefix letter
		if _, err := l.scanString(l.currentPos()); err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenString, Text: l.text(start), Pos: start}, nil
	case 'x', 'X':
		l.advance()
		return l.scanValueDigits(start, isHexDigit)
	case 'd', 'D':
		l.advance()
		return l.scanValueDigits(start, isDigit)
	}
	return Token{}, &reporter.LexError{Pos: start, Text: l.text(start), Msg: "malformed % value"}
}

func (l *lexer) scanValueDigits(start ast.SourcePos, digit func(byte) bool) (Token, error) {
	if !l.consumeDigits(digit) {
		return Token{}, &reporter.LexError{Pos: start, Text: l.text(start), Msg: "malformed % value"}
	}
	switch l.peek() {
	case '-':
		l.advance()
		if !l.consumeDigits(digit) {
			return Token{}, &reporter.LexError{Pos: start, Text: l.text(start), Msg: "malformed % value range"}
		}
	case '.':
		for l.peek() == '.' {
			l.advance()
			if !l.consumeDigits(digit) {
				return Token{}, &reporter.LexError{Pos: start, Text: l.text(start), Msg: "malformed % value concatenation"}
			}
		}
	}
	return Token{Kind: TokenNumVal, Text: l.text(start), Pos: start}, nil
}

func (l *lexer) consumeDigits(digit func(byte) bool) bool {
	if l.atEnd() || !digit(l.peek()) {
		return false
	}
	for !l.atEnd() && digit(l.peek()) {
		l.advance()
	}
	return true
}

// scanCountOrInteger scans digits and, if a '*' immediately follows,
// extends the match into a repetition-count token (n* or n*m).
func (l *lexer) scanCountOrInteger(pos ast.SourcePos) (Token, error) {
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '*' {
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
		return Token{Kind: TokenRepeat, Text: l.text(pos), Pos: pos}, nil
	}
	return Token{Kind: TokenInteger, Text: l.text(pos), Pos: pos}, nil
}

func (l *lexer) scanIdentifier(pos ast.SourcePos) (Token, error) {
	for !l.atEnd() && (isAlpha(l.peek()) || isDigit(l.peek()) || l.peek() == '-') {
		l.advance()
	}
	return Token{Kind: TokenIdentifier, Text: l.text(pos), Pos: pos}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isTokenStart(ch byte) bool {
	switch ch {
	case '"', '\'', '%', '*', '=', ':', '/', '(', ')', '[', ']', ';':
		return true
	}
	return isAlpha(ch) || isDigit(ch)
}
