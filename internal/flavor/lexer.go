package flavor

import (
	"fmt"
	"strings"
)

// lexer produces tokens from config file source text.
//
// The grammar is line oriented: newlines terminate statements. Inside
// brackets, braces, and parentheses newlines are insignificant (implicit
// line joining), so multi-line sequences and mappings parse naturally.
// '#' starts a comment that runs to end of line.
type lexer struct {
	file  string
	src   string
	pos   int
	line  int
	col   int
	depth int // bracket nesting; newlines are skipped when > 0
}

func newLexer(file, src string) *lexer {
	return &lexer{file: file, src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) *SyntaxError {
	return newSyntaxError(ErrSyntax, l.file, line, col, fmt.Sprintf(format, args...), "")
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// next returns the next token, skipping whitespace and comments.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '#':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case c == '\\' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n':
			// Explicit line continuation
			l.advance()
			l.advance()
		case c == '\n':
			line, col := l.line, l.col
			l.advance()
			if l.depth > 0 {
				continue
			}
			return token{kind: tokNewline, text: "\n", line: line, col: col}, nil
		default:
			return l.scanToken()
		}
	}
	return token{kind: tokEOF, line: l.line, col: l.col}, nil
}

func (l *lexer) scanToken() (token, error) {
	line, col := l.line, l.col
	c := l.peek()

	switch {
	case c == '\'' || c == '"':
		return l.scanString()
	case c >= '0' && c <= '9', c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdent()
	}

	l.advance()
	tok := token{text: string(c), line: line, col: col}
	switch c {
	case '=':
		tok.kind = tokAssign
	case '(':
		tok.kind = tokLParen
		l.depth++
	case ')':
		tok.kind = tokRParen
		l.depth--
	case '[':
		tok.kind = tokLBracket
		l.depth++
	case ']':
		tok.kind = tokRBracket
		l.depth--
	case '{':
		tok.kind = tokLBrace
		l.depth++
	case '}':
		tok.kind = tokRBrace
		l.depth--
	case ',':
		tok.kind = tokComma
	case ':':
		tok.kind = tokColon
	case '-':
		tok.kind = tokMinus
	default:
		tok.kind = tokUnknown
	}
	return tok, nil
}

func (l *lexer) scanString() (token, error) {
	line, col := l.line, l.col
	quote := l.advance()

	var sb strings.Builder
	for {
		if l.pos >= len(l.src) || l.peek() == '\n' {
			return token{}, l.errorf(line, col, "unterminated string")
		}
		c := l.advance()
		if c == quote {
			break
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if l.pos >= len(l.src) {
			return token{}, l.errorf(line, col, "unterminated string")
		}
		esc := l.advance()
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\', '\'', '"':
			sb.WriteByte(esc)
		default:
			return token{}, l.errorf(line, col, "unsupported escape sequence '\\%c'", esc)
		}
	}
	return token{kind: tokString, text: sb.String(), line: line, col: col}, nil
}

func (l *lexer) scanNumber() (token, error) {
	line, col := l.line, l.col
	start := l.pos
	isFloat := false

	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	if l.pos < len(l.src) && l.peek() == '.' {
		isFloat = true
		l.advance()
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.pos < len(l.src) && (l.peek() == 'e' || l.peek() == 'E') {
		isFloat = true
		l.advance()
		if l.pos < len(l.src) && (l.peek() == '+' || l.peek() == '-') {
			l.advance()
		}
		if l.pos >= len(l.src) || !isDigit(l.peek()) {
			return token{}, l.errorf(line, col, "malformed number")
		}
		for l.pos < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.src[start:l.pos]
	kind := tokInt
	if isFloat {
		kind = tokFloat
	}
	return token{kind: kind, text: text, line: line, col: col}, nil
}

func (l *lexer) scanIdent() (token, error) {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], line: line, col: col}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
