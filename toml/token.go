package toml

import "fmt"

// TokenType is the lexical class the parser dispatches on
type TokenType int

const (
	TokenError TokenType = iota // Literal holds the message
	TokenEOF
	TokenComment

	TokenIdent   // fuel_distance
	TokenString  // "uniform"
	TokenInteger // 32, -7, 0x582f0e
	TokenFloat   // 0.39, 1e-3
	TokenBool    // true

	TokenEqual
	TokenDot
	TokenComma
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenNewline
)

var tokenNames = [...]string{
	TokenError:    "error",
	TokenEOF:      "end of input",
	TokenComment:  "comment",
	TokenIdent:    "key",
	TokenString:   "string",
	TokenInteger:  "integer",
	TokenFloat:    "float",
	TokenBool:     "boolean",
	TokenEqual:    "'='",
	TokenDot:      "'.'",
	TokenComma:    "','",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenNewline:  "newline",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is one lexeme; Line and Col are 1-based and 0-based
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// maxLiteralShown clips literals echoed in parse errors
const maxLiteralShown = 24

// String reads as it would in an error message: `integer "12-3"`, `newline`
func (t Token) String() string {
	switch t.Type {
	case TokenEOF, TokenNewline, TokenEqual, TokenDot, TokenComma,
		TokenLBracket, TokenRBracket, TokenLBrace, TokenRBrace:
		return t.Type.String()
	}
	lit := t.Literal
	if len(lit) > maxLiteralShown {
		return fmt.Sprintf("%s %q...", t.Type, lit[:maxLiteralShown])
	}
	return fmt.Sprintf("%s %q", t.Type, lit)
}
