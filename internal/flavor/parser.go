// Package flavor implements the flavor configuration language and the
// validated build settings derived from it.
//
// The language is deliberately tiny: a file is a sequence of assignments
// of literal expressions (strings, integers, floats, booleans, none,
// sequences, mappings) plus include('path') statements that merge another
// file's assignments in place. There is no arithmetic, no identifiers on
// the right-hand side, and no call other than include. The grammar is
// purpose-built so the accepted syntax never drifts with the host
// language.
package flavor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ParseFile parses the config file at path and returns the merged mapping.
//
// Statements are applied strictly in file order: an include merges the
// included file's mapping before any later statement runs, so later
// assignments overwrite included keys (last-write-wins). Includes are
// resolved relative to the including file's directory and may nest; a
// file that is re-entered while still being parsed fails with a cyclic
// include error.
func ParseFile(path string) (*Map, error) {
	return parseFile(path, make(map[string]bool))
}

// parseFile parses one file. active holds the resolved absolute paths of
// every file currently on the include stack, for cycle detection.
func parseFile(path string, active map[string]bool) (*Map, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: unable to locate config file at %s", ErrNotFound, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	active[abs] = true
	defer delete(active, abs)

	p := &parser{
		file:   path,
		dir:    filepath.Dir(path),
		lex:    newLexer(path, string(data)),
		active: active,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	m := NewMap()
	if err := p.parse(m); err != nil {
		return nil, err
	}
	return m, nil
}

type parser struct {
	file   string
	dir    string
	lex    *lexer
	tok    token
	active map[string]bool
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) syntaxErr(kind error, tok token, msg string) error {
	return newSyntaxError(kind, p.file, tok.line, tok.col, msg, tok.text)
}

// parse consumes statements until end of file, mutating m in place.
func (p *parser) parse(m *Map) error {
	for {
		for p.tok.kind == tokNewline {
			if err := p.advance(); err != nil {
				return err
			}
		}
		if p.tok.kind == tokEOF {
			return nil
		}
		if p.tok.kind != tokIdent {
			return p.syntaxErr(ErrSyntax, p.tok, "unsupported statement")
		}

		name := p.tok
		if err := p.advance(); err != nil {
			return err
		}

		switch p.tok.kind {
		case tokAssign:
			if err := p.parseAssignment(m, name); err != nil {
				return err
			}
		case tokLParen:
			if err := p.parseCall(m, name); err != nil {
				return err
			}
		default:
			return p.syntaxErr(ErrSyntax, p.tok, fmt.Sprintf("expected '=' or '(' after %q, got %s", name.text, p.tok.kind))
		}

		if err := p.expectEndOfStatement(); err != nil {
			return err
		}
	}
}

func (p *parser) parseAssignment(m *Map, name token) error {
	if err := p.advance(); err != nil { // consume '='
		return err
	}
	v, err := p.parseLiteral()
	if err != nil {
		return err
	}
	// Trailing tokens mean the right-hand side was an expression, not a
	// bare literal (e.g. "x = 1 + 2").
	if p.tok.kind != tokNewline && p.tok.kind != tokEOF {
		return p.syntaxErr(ErrNonLiteral, p.tok, "unsupported syntax (non-literal)")
	}
	m.Set(name.text, v)
	return nil
}

// parseCall handles call statements. include(...) is the only call the
// grammar admits; each argument must be a quoted string naming a file to
// parse and merge into m before the next statement.
func (p *parser) parseCall(m *Map, name token) error {
	if name.text != "include" {
		return p.syntaxErr(ErrSyntax, name, "unsupported statement (only include(...) calls are allowed)")
	}
	if err := p.advance(); err != nil { // consume '('
		return err
	}

	for p.tok.kind != tokRParen {
		if p.tok.kind != tokString {
			return p.syntaxErr(ErrMissingQuotes, p.tok, "unsupported syntax (missing quotes?)")
		}
		arg := p.tok
		if err := p.advance(); err != nil {
			return err
		}

		target := arg.text
		if !filepath.IsAbs(target) {
			target = filepath.Join(p.dir, target)
		}

		abs, err := filepath.Abs(target)
		if err != nil {
			return fmt.Errorf("failed to resolve include path %s: %w", target, err)
		}
		if p.active[abs] {
			return p.syntaxErr(ErrCyclicInclude, arg, fmt.Sprintf("include cycle detected via %s", abs))
		}

		sub, err := parseFile(target, p.active)
		if err != nil {
			return err
		}
		m.Update(sub)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		if p.tok.kind != tokRParen {
			return p.syntaxErr(ErrSyntax, p.tok, "expected ',' or ')' in include arguments")
		}
	}

	return p.advance() // consume ')'
}

func (p *parser) expectEndOfStatement() error {
	switch p.tok.kind {
	case tokEOF:
		return nil
	case tokNewline:
		return p.advance()
	default:
		return p.syntaxErr(ErrSyntax, p.tok, "unexpected trailing tokens")
	}
}

// parseLiteral parses one literal expression. Anything that is not a pure
// literal fails with the non-literal syntax kind.
func (p *parser) parseLiteral() (any, error) {
	tok := p.tok
	switch tok.kind {
	case tokString:
		return tok.text, p.advance()

	case tokInt:
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, p.syntaxErr(ErrSyntax, tok, "integer out of range")
		}
		return n, p.advance()

	case tokFloat:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.syntaxErr(ErrSyntax, tok, "malformed float")
		}
		return f, p.advance()

	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		default:
			return nil, p.syntaxErr(ErrNonLiteral, tok, "unsupported syntax (non-literal)")
		}

	case tokIdent:
		switch tok.text {
		case "true", "True":
			return true, p.advance()
		case "false", "False":
			return false, p.advance()
		case "none", "None", "null":
			return nil, p.advance()
		default:
			return nil, p.syntaxErr(ErrNonLiteral, tok, "unsupported syntax (non-literal)")
		}

	case tokLBracket:
		return p.parseSequence()

	case tokLBrace:
		return p.parseMapping()

	default:
		return nil, p.syntaxErr(ErrNonLiteral, tok, "unsupported syntax (non-literal)")
	}
}

func (p *parser) parseSequence() (any, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	seq := []any{}
	for p.tok.kind != tokRBracket {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind != tokRBracket {
			return nil, p.syntaxErr(ErrSyntax, p.tok, "expected ',' or ']' in sequence")
		}
	}
	return seq, p.advance() // consume ']'
}

func (p *parser) parseMapping() (any, error) {
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	m := NewMap()
	for p.tok.kind != tokRBrace {
		keyTok := p.tok
		key, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		switch key.(type) {
		case []any, *Map:
			return nil, p.syntaxErr(ErrSyntax, keyTok, "mapping keys must be scalar literals")
		}

		if p.tok.kind != tokColon {
			return nil, p.syntaxErr(ErrSyntax, p.tok, "expected ':' after mapping key")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		m.Set(FormatValue(key), v)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind != tokRBrace {
			return nil, p.syntaxErr(ErrSyntax, p.tok, "expected ',' or '}' in mapping")
		}
	}
	return m, p.advance() // consume '}'
}
