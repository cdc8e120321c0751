package sexpr

import (
	"regexp"
	"strings"
	"unicode"
)

// numberRegex matches integer and decimal literals with an optional exponent.
var numberRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Parse reads exactly one expression from src.
func Parse(src string) (*Expr, error) {
	exprs, err := ParseAll(src)
	if err != nil {
		return nil, err
	}
	switch len(exprs) {
	case 0:
		return nil, &SyntaxError{Pos: Pos{Line: 1, Column: 1}, Msg: "empty input"}
	case 1:
		return exprs[0], nil
	default:
		return nil, &SyntaxError{Pos: exprs[1].Pos, Msg: "unexpected expression after the first one"}
	}
}

// ParseAll reads every top-level expression in src. There is no comment
// syntax: ';' and '/*' are ordinary symbol characters.
func ParseAll(src string) ([]*Expr, error) {
	p := &parser{src: []rune(src), line: 1, col: 1}
	var exprs []*Expr
	for {
		p.skipSpace()
		if p.eof() {
			return exprs, nil
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
}

type parser struct {
	src  []rune
	off  int
	line int
	col  int
}

func (p *parser) eof() bool { return p.off >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.off] }

func (p *parser) pos() Pos { return Pos{Line: p.line, Column: p.col} }

func (p *parser) next() rune {
	r := p.src[p.off]
	p.off++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.next()
	}
}

func (p *parser) expr() (*Expr, error) {
	start := p.pos()
	switch r := p.peek(); r {
	case '(':
		p.next()
		list := &Expr{Kind: List, Pos: start}
		for {
			p.skipSpace()
			if p.eof() {
				return nil, &SyntaxError{Pos: start, Msg: "unclosed '('"}
			}
			if p.peek() == ')' {
				p.next()
				return list, nil
			}
			item, err := p.expr()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
	case ')':
		return nil, &SyntaxError{Pos: start, Msg: "unexpected ')'"}
	case '"', '\'':
		return p.quoted(r)
	default:
		return p.atom()
	}
}

func (p *parser) quoted(quote rune) (*Expr, error) {
	start := p.pos()
	p.next()
	var b strings.Builder
	for {
		if p.eof() {
			return nil, &SyntaxError{Pos: start, Msg: "unterminated string literal"}
		}
		r := p.next()
		switch r {
		case quote:
			return &Expr{Kind: String, Text: b.String(), Pos: start}, nil
		case '\\':
			if p.eof() {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated string literal"}
			}
			b.WriteRune(p.next())
		default:
			b.WriteRune(r)
		}
	}
}

func (p *parser) atom() (*Expr, error) {
	start := p.pos()
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == '\'' {
			break
		}
		b.WriteRune(p.next())
	}
	text := b.String()
	kind := Symbol
	if numberRegex.MatchString(text) {
		kind = Number
	}
	return &Expr{Kind: kind, Text: text, Pos: start}, nil
}
