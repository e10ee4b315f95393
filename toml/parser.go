package toml

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrSyntax is wrapped by every parse failure
var ErrSyntax = errors.New("toml syntax error")

// Parser builds a generic document tree from tokens. Tables become
// map[string]any, arrays of tables []map[string]any, integers int64
type Parser struct {
	lexer *Lexer
	cur   Token
	next  Token
	root  map[string]any
	scope map[string]any
}

// NewParser creates a parser over input
func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.advance()
	p.advance()
	p.scope = p.root
	return p
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lexer.NextToken()
	for p.next.Type == TokenComment {
		p.next = p.lexer.NextToken()
	}
}

func (p *Parser) fail(format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, "line %d: "+format, append([]any{p.cur.Line}, args...)...)
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline:
			p.advance()
		case TokenLBracket:
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case TokenIdent, TokenString:
			if err := p.parseKeyValue(p.scope); err != nil {
				return nil, err
			}
			if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
				return nil, p.fail("expected end of line after value, got %s", p.cur)
			}
		case TokenError:
			return nil, p.fail("%s", p.cur.Literal)
		default:
			return nil, p.fail("unexpected %s", p.cur)
		}
	}
	return p.root, nil
}

// parseHeader handles [table] and [[array.of.tables]]
func (p *Parser) parseHeader() error {
	array := p.next.Type == TokenLBracket
	if array {
		p.advance()
	}
	p.advance()

	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	closers := 1
	if array {
		closers = 2
	}
	for ; closers > 0; closers-- {
		if p.cur.Type != TokenRBracket {
			return p.fail("expected ] to close table header, got %s", p.cur)
		}
		p.advance()
	}

	return p.openTable(keys, array)
}

// openTable walks from the root, creating intermediate tables, and makes the
// named table the scope for following key/value lines
func (p *Parser) openTable(keys []string, array bool) error {
	m := p.root
	for i, key := range keys {
		last := i == len(keys)-1
		existing, exists := m[key]

		switch {
		case last && array:
			var list []map[string]any
			if exists {
				l, ok := existing.([]map[string]any)
				if !ok {
					return p.fail("%s is already defined as a non-array value", key)
				}
				list = l
			}
			table := make(map[string]any)
			m[key] = append(list, table)
			p.scope = table
			return nil

		case !exists:
			table := make(map[string]any)
			m[key] = table
			m = table

		default:
			switch v := existing.(type) {
			case map[string]any:
				m = v
			case []map[string]any:
				// [[a]] then [a.b]: b goes into the latest a
				if len(v) == 0 {
					return p.fail("empty array of tables %s", key)
				}
				m = v[len(v)-1]
			default:
				return p.fail("%s is already defined as a value", key)
			}
		}
	}
	p.scope = m
	return nil
}

func (p *Parser) parseKeyValue(scope map[string]any) error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return p.fail("expected = after key, got %s", p.cur)
	}
	p.advance()

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	return p.assign(scope, keys, val)
}

func (p *Parser) assign(m map[string]any, keys []string, val any) error {
	for _, key := range keys[:len(keys)-1] {
		existing, ok := m[key]
		if !ok {
			table := make(map[string]any)
			m[key] = table
			m = table
			continue
		}
		table, isTable := existing.(map[string]any)
		if !isTable {
			return p.fail("%s is already defined as a value", key)
		}
		m = table
	}

	key := keys[len(keys)-1]
	if _, dup := m[key]; dup {
		return p.fail("duplicate key %s", key)
	}
	m[key] = val
	return nil
}

func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		if p.cur.Type != TokenIdent && p.cur.Type != TokenString {
			return nil, p.fail("expected key, got %s", p.cur)
		}
		keys = append(keys, p.cur.Literal)
		p.advance()

		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.advance()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.advance()
		return tok.Literal, nil
	case TokenInteger:
		v, err := strconv.ParseInt(tok.Literal, 0, 64)
		if err != nil {
			return nil, p.fail("invalid integer %s", tok)
		}
		p.advance()
		return v, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.fail("invalid float %s", tok)
		}
		p.advance()
		return v, nil
	case TokenBool:
		p.advance()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	}
	return nil, p.fail("expected value, got %s", tok)
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.advance()
	}
}

func (p *Parser) parseArray() ([]any, error) {
	p.advance()
	arr := make([]any, 0)

	for {
		p.skipNewlines()
		if p.cur.Type == TokenRBracket {
			break
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		p.skipNewlines()
		if p.cur.Type == TokenComma {
			p.advance()
			continue
		}
		if p.cur.Type != TokenRBracket {
			return nil, p.fail("expected , or ] in array, got %s", p.cur)
		}
	}
	p.advance()
	return arr, nil
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.advance()
	m := make(map[string]any)

	for {
		p.skipNewlines()
		if p.cur.Type == TokenRBrace {
			break
		}

		if err := p.parseKeyValue(m); err != nil {
			return nil, err
		}

		p.skipNewlines()
		if p.cur.Type == TokenComma {
			p.advance()
			continue
		}
		if p.cur.Type != TokenRBrace {
			return nil, p.fail("expected , or } in inline table, got %s", p.cur)
		}
	}
	p.advance()
	return m, nil
}
