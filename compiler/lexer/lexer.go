// Package lexer tokenizes type expressions such as "Dict[str, List[Metric]]".
//
// The token stream feeds the recursive descent parser in compiler/parser.
// Splitting on tokens rather than raw commas is what lets nested generics
// like "Dict[str, List[Item]]" parse correctly: the comma that separates
// the mapping's key and value is only recognized at bracket depth zero of
// the argument list.
package lexer

import (
	"fmt"
	"unicode"
)

// Lexer tokenizes a type expression.
type Lexer struct {
	source  []rune
	tokens  []Token
	errors  []LexError
	start   int // start of the current lexeme
	current int // current position in source
	column  int // 1-based column of current
}

// New creates a lexer for the given type expression.
func New(source string) *Lexer {
	return &Lexer{
		source: []rune(source),
		tokens: make([]Token, 0, 8),
		column: 1,
	}
}

// Scan tokenizes the entire expression and returns the tokens along with
// any lexical errors. The token slice always ends with TOKEN_EOF.
func (l *Lexer) Scan() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Column: l.column,
	})

	return l.tokens, l.errors
}

func (l *Lexer) scanToken() {
	startColumn := l.column
	c := l.advance()

	switch c {
	case '[':
		l.addToken(TOKEN_LBRACKET, startColumn)
	case ']':
		l.addToken(TOKEN_RBRACKET, startColumn)
	case ',':
		l.addToken(TOKEN_COMMA, startColumn)
	case ' ', '\t', '\n', '\r':
		// Whitespace between tokens is insignificant.
	default:
		if isIdentifierStart(c) {
			l.scanIdentifier(startColumn)
		} else {
			l.addError(fmt.Sprintf("unexpected character %q", c), startColumn)
		}
	}
}

func (l *Lexer) scanIdentifier(startColumn int) {
	for isIdentifierPart(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, Token{
		Type:   lookupKeyword(lexeme),
		Lexeme: lexeme,
		Column: startColumn,
	})
}

func (l *Lexer) addToken(tokenType TokenType, column int) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: string(l.source[l.start:l.current]),
		Column: column,
	})
}

func (l *Lexer) addError(message string, column int) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Column:  column,
	})
}

func (l *Lexer) advance() rune {
	c := l.source[l.current]
	l.current++
	l.column++
	return c
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isIdentifierStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentifierPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
