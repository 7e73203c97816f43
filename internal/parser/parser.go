// Package parser builds a value tree from the lexer's token stream by
// recursive descent. The grammar is LL(1): one token of lookahead decides
// every rule, and every token the grammar consumes passes through expect.
package parser

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"

	"github.com/strictjson/go-strictjson/ast"
	"github.com/strictjson/go-strictjson/errors"
	"github.com/strictjson/go-strictjson/internal/lexer"
	"github.com/strictjson/go-strictjson/token"
)

// Parser holds the state of the parser: the lexer it pulls tokens from,
// a single token of lookahead and the current nesting depth.
type Parser struct {
	l        *lexer.Lexer
	tok      token.Token // lookahead
	depth    int
	maxDepth int
}

// New creates a new parser reading from l. maxDepth bounds object/array
// nesting to guard the call stack against pathologically nested input.
func New(l *lexer.Lexer, maxDepth int) *Parser {
	return &Parser{l: l, maxDepth: maxDepth}
}

// Parse parses exactly one JSON value followed by end of input. The
// first violation aborts the parse; the returned error is a
// *errors.Error carrying its kind and position.
func (p *Parser) Parse() (ast.Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != token.EOF {
		return nil, errors.Newf(errors.TrailingContent, p.tok.Line, p.tok.Column, "unexpected %s after top-level value", p.tok.Type)
	}
	return v, nil
}

func (p *Parser) advance() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// expect consumes the lookahead if it has the wanted type and returns it,
// advancing to the next token.
func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.tok.Type != t {
		return p.tok, errors.Newf(errors.UnexpectedToken, p.tok.Line, p.tok.Column, "expected %s, got %s", t, p.tok.Type)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *Parser) parseValue() (ast.Value, error) {
	switch p.tok.Type {
	case token.NULL:
		tok, err := p.expect(token.NULL)
		if err != nil {
			return nil, err
		}
		return &ast.Null{Token: tok}, nil
	case token.TRUE, token.FALSE:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Bool{Token: tok, Value: tok.Type == token.TRUE}, nil
	case token.STRING:
		tok, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		return &ast.String{Token: tok, Value: tok.Literal}, nil
	case token.NUMBER:
		return p.parseNumber()
	case token.LBRACE:
		return p.parseObject()
	case token.LBRACK:
		return p.parseArray()
	default:
		return nil, errors.Newf(errors.UnexpectedToken, p.tok.Line, p.tok.Column, "expected a value, got %s", p.tok.Type)
	}
}

// parseNumber converts the raw lexeme into the Integer or Float variant.
// A lexeme with no '.' and no exponent marker is integral; an integral
// lexeme that does not fit in int64 falls back to the float
// representation, and a float that overflows to infinity is rejected
// because the value model has no infinities.
func (p *Parser) parseNumber() (ast.Value, error) {
	tok, err := p.expect(token.NUMBER)
	if err != nil {
		return nil, err
	}
	if !strings.ContainsAny(tok.Literal, ".eE") {
		if v, err := strconv.ParseInt(tok.Literal, 10, 64); err == nil {
			return &ast.Integer{Token: tok, Value: v}, nil
		}
	}
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		// The lexer's number grammar should make this unreachable.
		return nil, errors.Newf(errors.UnexpectedToken, tok.Line, tok.Column, "malformed number literal %q", tok.Literal)
	}
	if math.IsInf(v, 0) {
		return nil, errors.Newf(errors.NumberOutOfRange, tok.Line, tok.Column, "number %q overflows the representable range", tok.Literal)
	}
	return &ast.Float{Token: tok, Value: v}, nil
}

func (p *Parser) parseObject() (ast.Value, error) {
	if err := p.enterNesting(); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	obj := &ast.Object{Token: lbrace, Members: []*ast.Member{}}
	if p.tok.Type == token.RBRACE {
		_, err := p.expect(token.RBRACE)
		return obj, err
	}

	index := make(map[string]int)
	for {
		if p.tok.Type == token.EOF {
			return nil, errors.Newf(errors.UnexpectedToken, p.tok.Line, p.tok.Column, "expected a string key or %s, got %s", token.RBRACE, token.EOF)
		}
		if p.tok.Type != token.STRING {
			return nil, errors.Newf(errors.ObjectKeyNotString, p.tok.Line, p.tok.Column, "object key must be a string, got %s", p.tok.Type)
		}
		keyTok, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		key := &ast.String{Token: keyTok, Value: keyTok.Literal}

		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		// Duplicate keys: the later value overwrites the earlier one;
		// the member keeps its first position in source order.
		if i, ok := index[key.Value]; ok {
			obj.Members[i].Value = val
		} else {
			index[key.Value] = len(obj.Members)
			obj.Members = append(obj.Members, &ast.Member{Key: key, Value: val})
		}

		if p.tok.Type == token.RBRACE {
			_, err := p.expect(token.RBRACE)
			return obj, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseArray() (ast.Value, error) {
	if err := p.enterNesting(); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	lbrack, err := p.expect(token.LBRACK)
	if err != nil {
		return nil, err
	}
	arr := &ast.Array{Token: lbrack, Elements: []ast.Value{}}
	if p.tok.Type == token.RBRACK {
		_, err := p.expect(token.RBRACK)
		return arr, err
	}

	for {
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)

		if p.tok.Type == token.RBRACK {
			_, err := p.expect(token.RBRACK)
			return arr, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) enterNesting() error {
	p.depth++
	if p.depth > p.maxDepth {
		return errors.Newf(errors.DepthExceeded, p.tok.Line, p.tok.Column, "nesting deeper than %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leaveNesting() {
	p.depth--
}
