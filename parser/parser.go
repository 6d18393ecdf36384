package parser

import (
	"strconv"
	"strings"

	"github.com/abnfkit/railroad/ast"
	"github.com/abnfkit/railroad/reporter"
)

// Rule is one parsed grammar rule.
type Rule struct {
	Name     string
	Original string // verbatim source text of the whole rule, trimmed
	Expr     ast.Node
	Pos      ast.SourcePos
}

// Grammar is the result of parsing one ABNF file: the rules in source
// order, addressable by name.
type Grammar struct {
	Rules  []*Rule
	byName map[string]*Rule
}

// Rule returns the rule with the given name, or nil.
func (g *Grammar) Rule(name string) *Rule {
	return g.byName[name]
}

// Parse tokenizes the whole file and then scans the token stream for rule
// headers (an identifier followed by "=" or ":="), slicing out the token
// run belonging to each rule. A rule's definition may therefore span
// multiple physical lines without continuation markers. If the same rule
// name is defined twice, the later definition replaces the earlier one.
//
// Any failure is a *reporter.LexError or *reporter.ParseError; a failure in
// one rule aborts the whole file.
func Parse(filename string, src []byte) (*Grammar, error) {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}

	g := &Grammar{byName: make(map[string]*Rule)}
	if len(toks) == 0 {
		return g, nil
	}

	headers := headerIndexes(toks)
	if len(headers) == 0 || headers[0] != 0 {
		tok := toks[0]
		return nil, &reporter.ParseError{
			Pos:       tok.Pos,
			Msg:       "expected rule definition",
			TokenKind: tok.Kind.String(),
			TokenText: tok.Text,
		}
	}

	for h, start := range headers {
		end := len(toks)
		endOffset := len(src)
		if h+1 < len(headers) {
			end = headers[h+1]
			endOffset = toks[end].Pos.Offset
		}
		nameTok := toks[start]
		assignTok := toks[start+1]
		body := toks[start+2 : end]
		if len(body) == 0 {
			return nil, &reporter.ParseError{
				Pos:       assignTok.Pos,
				Msg:       "empty rule definition",
				TokenKind: assignTok.Kind.String(),
				TokenText: assignTok.Text,
			}
		}

		eof := body[len(body)-1].Pos
		eof.Col += len(body[len(body)-1].Text)
		eof.Offset += len(body[len(body)-1].Text)
		p := &exprParser{toks: body, eof: eof}
		expr, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if tok := p.peek(); tok.Kind != TokenEOF {
			return nil, &reporter.ParseError{
				Pos:       tok.Pos,
				Msg:       "unexpected token",
				TokenKind: tok.Kind.String(),
				TokenText: tok.Text,
			}
		}

		rule := &Rule{
			Name:     nameTok.Text,
			Original: strings.TrimSpace(string(src[nameTok.Pos.Offset:endOffset])),
			Expr:     expr,
			Pos:      nameTok.Pos,
		}
		if prev, ok := g.byName[rule.Name]; ok {
			*prev = *rule
		} else {
			g.byName[rule.Name] = rule
			g.Rules = append(g.Rules, rule)
		}
	}
	return g, nil
}

// headerIndexes returns the indexes of every identifier token immediately
// followed by an assignment token.
func headerIndexes(toks []Token) []int {
	var idx []int
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Kind == TokenIdentifier && toks[i+1].Kind == TokenAssign {
			idx = append(idx, i)
		}
	}
	return idx
}

// exprParser parses the token run of a single rule definition. Precedence,
// lowest to highest: alternation, concatenation, repetition-prefixed
// element, element.
type exprParser struct {
	toks []Token
	pos  int
	eof  ast.SourcePos
}

func (p *exprParser) peek() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokenEOF, Pos: p.eof}
	}
	return p.toks[p.pos]
}

func (p *exprParser) next() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *exprParser) parseAlternation() (ast.Node, error) {
	first, err := p.parseConcatenation()
	if err != nil {
		return nil, err
	}
	elems := []ast.Node{first}
	for p.peek().Kind == TokenSlash {
		p.next()
		branch, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		elems = append(elems, branch)
	}
	if len(elems) == 1 {
		return first, nil
	}
	return &ast.Alternation{Pos: first.Start(), Elements: elems}, nil
}

func (p *exprParser) parseConcatenation() (ast.Node, error) {
	var elems []ast.Node
	for startsElement(p.peek().Kind) {
		elem, err := p.parseRepeated()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if len(elems) == 0 {
		tok := p.peek()
		return nil, &reporter.ParseError{
			Pos:       tok.Pos,
			Msg:       "empty expression",
			TokenKind: tok.Kind.String(),
			TokenText: tok.Text,
		}
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.Sequence{Pos: elems[0].Start(), Elements: elems}, nil
}

func (p *exprParser) parseRepeated() (ast.Node, error) {
	tok := p.peek()
	var min, max uint32
	var bounded bool
	switch tok.Kind {
	case TokenRepeat:
		p.next()
		var err error
		min, max, bounded, err = parseRepeatCount(tok)
		if err != nil {
			return nil, err
		}
	case TokenStar:
		p.next()
		min, bounded = 0, false
	case TokenInteger:
		p.next()
		n, err := parseCount(tok, tok.Text)
		if err != nil {
			return nil, err
		}
		min, max, bounded = n, n, true
	default:
		return p.parseElement()
	}
	elem, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	return &ast.Repetition{Pos: tok.Pos, Min: min, Max: max, Bounded: bounded, Element: elem}, nil
}

func (p *exprParser) parseElement() (ast.Node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenString, TokenNumVal:
		return &ast.Terminal{Pos: tok.Pos, Text: tok.Text}, nil
	case TokenIdentifier:
		return &ast.Nonterminal{Pos: tok.Pos, Name: tok.Text}, nil
	case TokenLParen:
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != TokenRParen {
			return nil, &reporter.ParseError{
				Pos:       tok.Pos,
				Msg:       "missing closing ')'",
				TokenKind: tok.Kind.String(),
				TokenText: tok.Text,
			}
		}
		p.next()
		// grouping is transparent
		return inner, nil
	case TokenLBracket:
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != TokenRBracket {
			return nil, &reporter.ParseError{
				Pos:       tok.Pos,
				Msg:       "missing closing ']'",
				TokenKind: tok.Kind.String(),
				TokenText: tok.Text,
			}
		}
		p.next()
		return &ast.Optional{Pos: tok.Pos, Element: inner}, nil
	case TokenEOF:
		return nil, &reporter.ParseError{Pos: tok.Pos, Msg: "unexpected end of input"}
	default:
		return nil, &reporter.ParseError{
			Pos:       tok.Pos,
			Msg:       "unexpected token",
			TokenKind: tok.Kind.String(),
			TokenText: tok.Text,
		}
	}
}

func startsElement(k TokenKind) bool {
	switch k {
	case TokenString, TokenNumVal, TokenIdentifier, TokenLParen, TokenLBracket,
		TokenRepeat, TokenStar, TokenInteger:
		return true
	}
	return false
}

// parseRepeatCount decodes a repetition-count token: "n*m", "n*", or "*m".
// A missing minimum is 0; a missing maximum is unbounded.
func parseRepeatCount(tok Token) (min, max uint32, bounded bool, err error) {
	star := strings.IndexByte(tok.Text, '*')
	left, right := tok.Text[:star], tok.Text[star+1:]
	if left != "" {
		if min, err = parseCount(tok, left); err != nil {
			return 0, 0, false, err
		}
	}
	if right == "" {
		return min, 0, false, nil
	}
	if max, err = parseCount(tok, right); err != nil {
		return 0, 0, false, err
	}
	if max < min {
		return 0, 0, false, &reporter.ParseError{
			Pos:       tok.Pos,
			Msg:       "repetition maximum is less than minimum",
			TokenKind: tok.Kind.String(),
			TokenText: tok.Text,
		}
	}
	return min, max, true, nil
}

func parseCount(tok Token, digits string) (uint32, error) {
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, &reporter.ParseError{
			Pos:       tok.Pos,
			Msg:       "repetition count out of range",
			TokenKind: tok.Kind.String(),
			TokenText: tok.Text,
		}
	}
	return uint32(n), nil
}
