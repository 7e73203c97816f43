package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Literal holds the decoded string
// content for STRING tokens and the raw lexeme for NUMBER tokens; for
// every other type it is the token's fixed spelling.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	EOF Type = "EOF" // End of input

	// Literals
	STRING Type = "STRING" // "hello world"
	NUMBER Type = "NUMBER" // 12345, -0.5e3

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	COMMA  Type = ","
	COLON  Type = ":"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupKeyword checks the keywords table for a word read from the input.
// It reports the keyword's token type, or false if the word is not one of
// the three JSON keywords.
func LookupKeyword(word string) (Type, bool) {
	t, ok := keywords[word]
	return t, ok
}
