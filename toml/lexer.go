package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits a TOML document into tokens; newlines are significant and
// emitted as tokens, other whitespace is skipped
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer positioned at the start of input
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token, TokenEOF once input is exhausted
func (l *Lexer) NextToken() Token {
	l.skipBlanks()

	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	ch := l.peek()
	switch ch {
	case '\n':
		l.advance()
		return l.token(TokenNewline, "\n")
	case '#':
		return l.readComment()
	case '"':
		return l.readString()
	}

	if typ, ok := punctuation[ch]; ok {
		l.advance()
		return l.token(typ, string(ch))
	}

	if isDigit(ch) || isAlpha(ch) || ch == '+' || ch == '-' || ch == '_' {
		return l.readWord()
	}

	l.advance()
	return l.token(TokenError, fmt.Sprintf("unexpected character %q", ch))
}

var punctuation = map[rune]TokenType{
	'=': TokenEqual,
	'.': TokenDot,
	',': TokenComma,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

func (l *Lexer) token(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.line, Col: l.col - len(literal)}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment() Token {
	l.advance()
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, string(l.input[start:l.pos]))
}

func (l *Lexer) readString() Token {
	l.advance()
	start := l.pos
	escaped := false
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.token(TokenError, "newline in basic string")
		}
		if ch == '"' && !escaped {
			lit := string(l.input[start:l.pos])
			l.advance()
			return l.token(TokenString, unescape(lit))
		}
		escaped = ch == '\\' && !escaped
		l.advance()
	}
	return l.token(TokenError, "unterminated string")
}

var escapes = strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r")

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return escapes.Replace(s)
}

// readWord consumes a bare key, boolean, or number. Dots are taken only when
// the word started like a number, so "a.b" stays a dotted key while "0.5" is
// one float
func (l *Lexer) readWord() Token {
	start := l.pos
	first := l.peek()
	numeric := isDigit(first) || first == '+' || first == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	if lit == "true" || lit == "false" {
		return l.token(TokenBool, lit)
	}

	digits := strings.TrimLeft(lit, "+-")
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		return l.token(TokenInteger, lit)
	}

	for _, r := range lit {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return l.token(TokenIdent, lit)
		}
	}
	if !numeric {
		// "e", "E" and friends are bare keys
		return l.token(TokenIdent, lit)
	}
	if strings.ContainsAny(lit, ".eE") {
		return l.token(TokenFloat, lit)
	}
	return l.token(TokenInteger, lit)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
