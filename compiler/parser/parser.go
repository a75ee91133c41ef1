// Package parser parses type expressions into TypeExpr trees.
//
// The grammar, in rough EBNF:
//
//	type    = list | optional | union | mapping | name
//	list    = "List" "[" type "]"
//	optional = "Optional" "[" type "]"
//	union   = "Union" "[" type "," type { "," type } "]"
//	mapping = ("Dict" | "Map" | "Mapping") "[" type "," type "]"
//	name    = identifier
//
// A bare name is classified against the surrounding compilation: a name
// matching a declared model becomes a model reference, otherwise it must
// resolve in the type registry. Classification happens at parse time so
// the resulting tree is fully resolved and needs no second pass.
package parser

import (
	"strings"

	"github.com/caesar0301/wizagent/compiler/errors"
	"github.com/caesar0301/wizagent/compiler/lexer"
)

// Resolver supplies the name classification context for a parse: which
// names are models in the current compilation, and which are registered
// types. Lookups must be case-sensitive.
type Resolver interface {
	HasModel(name string) bool
	HasType(name string) bool
}

// Parser is a recursive descent parser over a type expression's tokens.
type Parser struct {
	tokens  []lexer.Token
	current int
	expr    string
	scope   Resolver
}

// Parse parses a single type expression. The entire input must form one
// expression: trailing tokens are an error.
func Parse(expr string, scope Resolver) (*TypeExpr, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, errors.NewMalformedTypeError(expr, "empty type expression")
	}

	tokens, lexErrs := lexer.New(trimmed).Scan()
	if len(lexErrs) > 0 {
		return nil, errors.NewMalformedTypeError(expr, "invalid type expression %q: %s", trimmed, lexErrs[0].Message)
	}

	p := &Parser{tokens: tokens, expr: trimmed, scope: scope}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TOKEN_EOF) {
		return nil, errors.NewMalformedTypeError(p.expr, "unexpected %q after type in %q", p.peek().Lexeme, p.expr)
	}
	return result, nil
}

func (p *Parser) parseType() (*TypeExpr, error) {
	tok := p.advance()

	switch tok.Type {
	case lexer.TOKEN_LIST:
		elem, err := p.parseOneArg(tok.Lexeme)
		if err != nil {
			return nil, err
		}
		return NewList(elem), nil

	case lexer.TOKEN_OPTIONAL:
		elem, err := p.parseOneArg(tok.Lexeme)
		if err != nil {
			return nil, err
		}
		return NewOptional(elem), nil

	case lexer.TOKEN_MAPPING:
		return p.parseMapping(tok.Lexeme)

	case lexer.TOKEN_UNION:
		return p.parseUnion(tok.Lexeme)

	case lexer.TOKEN_IDENTIFIER:
		return p.classifyName(tok.Lexeme)

	case lexer.TOKEN_EOF:
		return nil, errors.NewMalformedTypeError(p.expr, "unexpected end of type expression %q", p.expr)

	default:
		return nil, errors.NewMalformedTypeError(p.expr, "unexpected %q in type expression %q", tok.Lexeme, p.expr)
	}
}

// parseOneArg parses the "[ type ]" suffix of a single-argument generic.
func (p *Parser) parseOneArg(keyword string) (*TypeExpr, error) {
	if err := p.expectArgs(keyword); err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.TOKEN_COMMA) {
		return nil, errors.NewArityError(p.expr, "%s takes exactly one type argument", keyword)
	}
	if err := p.expectClose(keyword); err != nil {
		return nil, err
	}
	return elem, nil
}

func (p *Parser) parseMapping(keyword string) (*TypeExpr, error) {
	if err := p.expectArgs(keyword); err != nil {
		return nil, err
	}
	key, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.TOKEN_COMMA) {
		return nil, errors.NewArityError(p.expr, "%s takes exactly two type arguments", keyword)
	}
	value, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.TOKEN_COMMA) {
		return nil, errors.NewArityError(p.expr, "%s takes exactly two type arguments", keyword)
	}
	if err := p.expectClose(keyword); err != nil {
		return nil, err
	}
	return NewMapping(key, value), nil
}

func (p *Parser) parseUnion(keyword string) (*TypeExpr, error) {
	if err := p.expectArgs(keyword); err != nil {
		return nil, err
	}

	args := []*TypeExpr{}
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	if err := p.expectClose(keyword); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, errors.NewArityError(p.expr, "%s takes at least two type arguments", keyword)
	}
	return NewUnion(args...), nil
}

func (p *Parser) classifyName(name string) (*TypeExpr, error) {
	if p.scope.HasModel(name) {
		return NewModelRef(name), nil
	}
	if p.scope.HasType(name) {
		return NewPrimitive(name), nil
	}
	return nil, errors.NewUnknownTypeError(name, p.expr)
}

// expectArgs consumes the opening bracket of a generic's argument list.
// A bare keyword or an immediately closed bracket is an arity error.
func (p *Parser) expectArgs(keyword string) error {
	if !p.match(lexer.TOKEN_LBRACKET) {
		return errors.NewArityError(p.expr, "%s requires type arguments in brackets", keyword)
	}
	if p.check(lexer.TOKEN_RBRACKET) {
		return errors.NewArityError(p.expr, "%s requires at least one type argument", keyword)
	}
	return nil
}

func (p *Parser) expectClose(keyword string) error {
	if !p.match(lexer.TOKEN_RBRACKET) {
		return errors.NewMalformedTypeError(p.expr, "expected ']' to close %s in %q", keyword, p.expr)
	}
	return nil
}

func (p *Parser) match(tokenType lexer.TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	if tok.Type != lexer.TOKEN_EOF {
		p.current++
	}
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}
