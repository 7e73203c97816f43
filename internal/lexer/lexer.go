// Package lexer turns JSON text into a stream of position-tagged tokens.
// It is a single-pass, pull-based scanner: the parser asks for one token
// at a time and the lexer never re-reads input it has already consumed.
package lexer

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/strictjson/go-strictjson/errors"
	"github.com/strictjson/go-strictjson/token"
)

// Sentinel values for the current character. Decoded input runes are
// never negative, so neither sentinel can be produced by the input
// itself; in particular a raw NUL byte decodes to rune 0, not eof.
const (
	eof         rune = -1
	invalidUTF8 rune = -2
)

// Lexer holds the state for tokenizing JSON text.
type Lexer struct {
	input        []byte
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New creates and returns a new Lexer reading from input. A Lexer scans
// its input exactly once; create a new one to scan again.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 1}
	l.readChar()
	return l
}

// NextToken scans the input and returns the next token. After the input
// is exhausted it returns an EOF token carrying the final position. A
// non-nil error is always a *errors.Error and is fatal to the scan.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()
	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case '{', '}', '[', ']', ',', ':':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
	case '"':
		lit, err := l.readString()
		if err != nil {
			return tok, err
		}
		tok.Type = token.STRING
		tok.Literal = lit
		return tok, nil
	case eof:
		tok.Type = token.EOF
		return tok, nil
	case invalidUTF8:
		return tok, errors.Newf(errors.UnexpectedCharacter, l.line, l.column, "invalid UTF-8 sequence")
	case '\ufeff':
		return tok, errors.Newf(errors.UnexpectedCharacter, l.line, l.column, "byte order mark is not valid JSON")
	default:
		if isDigit(l.ch) || l.ch == '-' {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			return l.readKeyword()
		}
		return tok, errors.Newf(errors.UnexpectedCharacter, l.line, l.column, "unexpected character %q", l.ch)
	}
	l.advance()
	return tok, nil
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = eof
		l.position = l.readPosition // Important for correct slicing at EOF
	} else {
		r, size := utf8.DecodeRune(l.input[l.readPosition:])
		if r == utf8.RuneError && size == 1 {
			l.ch = invalidUTF8
		} else {
			l.ch = r
		}
		l.position = l.readPosition
		l.readPosition += size
	}
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readChar()
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

// readKeyword reads a run of letters and digits so that a keyword is only
// accepted on an identifier boundary: "truex" is rejected as a whole
// rather than matched as "true" followed by garbage.
func (l *Lexer) readKeyword() (token.Token, error) {
	tok := token.Token{Line: l.line, Column: l.column}
	startPos := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	word := string(l.input[startPos:l.position])
	typ, ok := token.LookupKeyword(word)
	if !ok {
		return tok, errors.Newf(errors.UnexpectedCharacter, tok.Line, tok.Column, "invalid literal %q", word)
	}
	tok.Type = typ
	tok.Literal = word
	return tok, nil
}

// readNumber consumes the longest run of number-shaped characters and
// validates it as a whole, so malformed literals like "01" or "1.2.3"
// are reported as one error instead of a confusing token split.
func (l *Lexer) readNumber() (token.Token, error) {
	tok := token.Token{Type: token.NUMBER, Line: l.line, Column: l.column}
	startPos := l.position
	for isDigit(l.ch) || isLetter(l.ch) || l.ch == '-' || l.ch == '+' || l.ch == '.' {
		l.advance()
	}
	lit := string(l.input[startPos:l.position])
	if !ValidNumber(lit) {
		return tok, errors.Newf(errors.UnexpectedCharacter, tok.Line, tok.Column, "invalid number literal %q", lit)
	}
	tok.Literal = lit
	return tok, nil
}

func (l *Lexer) readString() (string, error) {
	l.advance() // consume opening quote
	var buf bytes.Buffer
	for {
		switch {
		case l.ch == '"':
			l.advance() // consume closing quote
			return buf.String(), nil
		case l.ch == eof:
			return "", errors.Newf(errors.UnterminatedString, l.line, l.column, "unterminated string literal")
		case l.ch == invalidUTF8:
			return "", errors.Newf(errors.UnexpectedCharacter, l.line, l.column, "invalid UTF-8 sequence in string")
		case l.ch == '\\':
			r, err := l.readEscape()
			if err != nil {
				return "", err
			}
			buf.WriteRune(r)
		case l.ch < 0x20:
			return "", errors.Newf(errors.ControlCharInString, l.line, l.column, "control character U+%04X in string", l.ch)
		default:
			buf.WriteRune(l.ch)
		}
		l.advance()
	}
}

// readEscape decodes one escape sequence. On entry l.ch is the backslash;
// on return l.ch is the last character of the sequence.
func (l *Lexer) readEscape() (rune, error) {
	line, column := l.line, l.column
	l.advance() // consume backslash
	switch l.ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return unescape(l.ch), nil
	case 'u':
		return l.readUnicodeEscape(line, column)
	case eof:
		return 0, errors.Newf(errors.UnterminatedString, l.line, l.column, "unterminated string literal")
	default:
		return 0, errors.Newf(errors.InvalidEscape, line, column, `invalid escape sequence \%c`, l.ch)
	}
}

// readUnicodeEscape decodes a \uXXXX escape. A high surrogate must be
// followed immediately by a \uXXXX low surrogate; the pair is combined
// into one code point per RFC 8259.
func (l *Lexer) readUnicodeEscape(line, column int) (rune, error) {
	r1, ok := l.readHex(4)
	if !ok {
		return 0, errors.Newf(errors.InvalidEscape, line, column, "invalid unicode escape")
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	if r1 >= 0xDC00 {
		// A low surrogate half with no preceding high half.
		return 0, errors.Newf(errors.InvalidEscape, line, column, "unpaired surrogate in unicode escape")
	}
	if l.peekChar() != '\\' || l.peekNextChar() != 'u' {
		return 0, errors.Newf(errors.InvalidEscape, line, column, "unpaired surrogate in unicode escape")
	}
	l.advance() // consume last hex digit
	l.advance() // consume backslash
	r2, ok := l.readHex(4)
	if !ok {
		return 0, errors.Newf(errors.InvalidEscape, line, column, "invalid unicode escape")
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return 0, errors.Newf(errors.InvalidEscape, line, column, "unpaired surrogate in unicode escape")
	}
	return utf16.DecodeRune(r1, r2), nil
}

func (l *Lexer) readHex(n int) (rune, bool) {
	var val rune
	for i := 0; i < n; i++ {
		l.advance()
		var d rune
		switch {
		case '0' <= l.ch && l.ch <= '9':
			d = l.ch - '0'
		case 'a' <= l.ch && l.ch <= 'f':
			d = l.ch - 'a' + 10
		case 'A' <= l.ch && l.ch <= 'F':
			d = l.ch - 'A' + 10
		default:
			return 0, false
		}
		val = val*16 + d
	}
	return val, true
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekNextChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	_, size := utf8.DecodeRune(l.input[l.readPosition:])
	nextPos := l.readPosition + size
	if nextPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.input[nextPos:])
	return r
}

// ValidNumber reports whether s conforms to the JSON number grammar: an
// optional minus sign, an integer part with no superfluous leading zero,
// an optional fraction and an optional exponent.
//
// Valid examples: "0", "-10", "1.23", "5e-10", "-0.5E+2"
// Invalid examples: "01", "--1", "1.2.3", "5e-", "1."
func ValidNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	i := 0
	if s[i] == '-' {
		if len(s) == 1 {
			return false
		}
		i++
	}
	integerStart := i
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i == integerStart {
		return false
	}
	integerPart := s[integerStart:i]
	if len(integerPart) > 1 && integerPart[0] == '0' {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		fractionStart := i
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
		if i == fractionStart {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exponentStart := i
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
		if i == exponentStart {
			return false
		}
	}
	return i == len(s)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func unescape(ch rune) rune {
	switch ch {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '"':
		return '"'
	case '\\':
		return '\\'
	case '/':
		return '/'
	}
	return 0
}
