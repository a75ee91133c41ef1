package lexer

import "fmt"

// TokenType identifies the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// Punctuation
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_COMMA    // ,

	// Generic type keywords
	TOKEN_LIST     // List
	TOKEN_OPTIONAL // Optional
	TOKEN_UNION    // Union
	TOKEN_MAPPING  // Dict, Map, or Mapping

	// Names
	TOKEN_IDENTIFIER // model or registered type name
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_LBRACKET:
		return "LBRACKET"
	case TOKEN_RBRACKET:
		return "RBRACKET"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_LIST:
		return "LIST"
	case TOKEN_OPTIONAL:
		return "OPTIONAL"
	case TOKEN_UNION:
		return "UNION"
	case TOKEN_MAPPING:
		return "MAPPING"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// Token represents a single lexical token in a type expression.
type Token struct {
	Type   TokenType
	Lexeme string
	Column int // 1-based position in the expression
}

// String returns a string representation of the token for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Lexeme, t.Column)
}

// LexError represents a lexical error with position information.
type LexError struct {
	Message string
	Column  int
}

// Error implements the error interface.
func (e LexError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Column, e.Message)
}
