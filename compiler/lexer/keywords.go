package lexer

// keywords maps generic type spellings to their token types. The mapping
// kind accepts three spellings; all other names are plain identifiers
// resolved later against declared models and the type registry.
var keywords = map[string]TokenType{
	"List":     TOKEN_LIST,
	"Optional": TOKEN_OPTIONAL,
	"Union":    TOKEN_UNION,
	"Dict":     TOKEN_MAPPING,
	"Map":      TOKEN_MAPPING,
	"Mapping":  TOKEN_MAPPING,
}

// lookupKeyword returns the keyword token type for an identifier, or
// TOKEN_IDENTIFIER if it is not a keyword. Matching is case-sensitive:
// "list" is an ordinary identifier.
func lookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TOKEN_IDENTIFIER
}
