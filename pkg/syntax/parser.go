package syntax

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrSyntax is the category of all errors returned by Parse.
var ErrSyntax = errors.New("toml syntax error")

// Error describes a syntax error at a position in the source.
type Error struct {
	// Line is the 1-based line number.
	Line int

	// Column is the 1-based byte column.
	Column int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *Error) Unwrap() error {
	return ErrSyntax
}

// Parse builds a lossless syntax tree for src.
//
// The root's children are headers, entries and the newline, whitespace and
// comment tokens between them. Concatenating their text yields src exactly.
func Parse(src []byte) (*Node, error) {
	p := &parser{src: src}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return NewNode(KindRoot, p.children...), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(src string) (*Node, error) {
	return Parse([]byte(src))
}

type parser struct {
	src      []byte
	pos      int
	children []Element
}

func (p *parser) parseDocument() error {
	// lineOpen is set once a header or entry occupies the current line;
	// only trivia may follow it before the next line break.
	lineOpen := false

	for !p.eof() {
		char := p.peek()
		switch {
		case char == ' ' || char == '\t':
			p.emit(p.whitespace())
		case char == '\n' || char == '\r':
			tok, err := p.newline()
			if err != nil {
				return err
			}
			p.emit(tok)
			lineOpen = false
		case char == '#':
			p.emit(p.comment())
		case lineOpen:
			return p.errorf(p.pos, "expected end of line, found %q", char)
		case char == '[':
			header, err := p.header()
			if err != nil {
				return err
			}
			p.emit(header)
			lineOpen = true
		default:
			entry, err := p.entry()
			if err != nil {
				return err
			}
			p.emit(entry)
			lineOpen = true
		}
	}

	return nil
}

func (p *parser) emit(elem Element) {
	p.children = append(p.children, elem)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) hasPrefix(prefix string) bool {
	return bytes.HasPrefix(p.src[p.pos:], []byte(prefix))
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	line, column := position(p.src, offset)
	return &Error{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

// position converts a byte offset to a 1-based line and column.
func position(src []byte, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	prefix := src[:offset]
	line := 1 + bytes.Count(prefix, []byte(LF))
	lineStart := bytes.LastIndexByte(prefix, '\n') + 1
	return line, offset - lineStart + 1
}

func (p *parser) text(start int) string {
	return string(p.src[start:p.pos])
}

func (p *parser) whitespace() *Token {
	start := p.pos
	for !p.eof() && isBlank(p.peek()) {
		p.pos++
	}
	return NewToken(KindWhitespace, p.text(start))
}

func (p *parser) newline() (*Token, error) {
	start := p.pos
	for !p.eof() {
		switch p.peek() {
		case '\n':
			p.pos++
		case '\r':
			if p.peekAt(1) != '\n' {
				return nil, p.errorf(p.pos, "carriage return not followed by line feed")
			}
			p.pos += len(CRLF)
		default:
			return NewNewline(p.text(start)), nil
		}
	}
	return NewNewline(p.text(start)), nil
}

func (p *parser) comment() *Token {
	start := p.pos
	for !p.eof() && !p.atLineEnd() {
		p.pos++
	}
	return NewToken(KindComment, p.text(start))
}

func (p *parser) atLineEnd() bool {
	char := p.peek()
	return char == '\n' || (char == '\r' && p.peekAt(1) == '\n')
}

func (p *parser) header() (*Node, error) {
	open, closing, kind := "[", "]", KindTableHeader
	if p.peekAt(1) == '[' {
		open, closing, kind = "[[", "]]", KindTableArrayHeader
	}
	p.pos += len(open)

	keyStart := p.pos
	if err := p.scanKey(']'); err != nil {
		return nil, err
	}
	keyText := p.text(keyStart)
	if len(bytes.Trim([]byte(keyText), " \t")) == 0 {
		return nil, p.errorf(keyStart, "empty table name")
	}

	if !p.hasPrefix(closing) {
		return nil, p.errorf(p.pos, "unterminated table header, expected %q", closing)
	}
	p.pos += len(closing)

	return NewNode(kind,
		NewToken(KindBracket, open),
		NewNode(KindKey, NewToken(KindKeyText, keyText)),
		NewToken(KindBracket, closing),
	), nil
}

func (p *parser) entry() (*Node, error) {
	keyStart := p.pos
	if err := p.scanKey('='); err != nil {
		return nil, err
	}

	raw := p.src[keyStart:p.pos]
	trimmed := bytes.TrimRight(raw, " \t")
	if len(trimmed) == 0 {
		return nil, p.errorf(keyStart, "missing key before '='")
	}

	children := []Element{NewNode(KindKey, NewToken(KindKeyText, string(trimmed)))}
	if len(trimmed) < len(raw) {
		children = append(children, NewToken(KindWhitespace, string(raw[len(trimmed):])))
	}

	children = append(children, NewToken(KindEqual, "="))
	p.pos++

	if isBlank(p.peek()) {
		children = append(children, p.whitespace())
	}

	valueStart := p.pos
	if err := p.scanValue(); err != nil {
		return nil, err
	}
	if p.pos == valueStart {
		return nil, p.errorf(valueStart, "missing value")
	}
	children = append(children, NewNode(KindValue, NewToken(KindValueText, p.text(valueStart))))

	return NewNode(KindEntry, children...), nil
}

// scanKey advances to the stop byte, skipping over quoted key parts.
func (p *parser) scanKey(stop byte) error {
	for {
		if p.eof() {
			return p.errorf(p.pos, "unexpected end of file in key")
		}

		switch char := p.peek(); char {
		case stop:
			return nil
		case '\n', '\r', '#':
			if stop == '=' {
				return p.errorf(p.pos, "expected '=' after key")
			}
			return p.errorf(p.pos, "unterminated table header")
		case '"':
			if err := p.basicString(); err != nil {
				return err
			}
		case '\'':
			if err := p.literalString(); err != nil {
				return err
			}
		default:
			p.pos++
		}
	}
}

func (p *parser) scanValue() error {
	switch {
	case p.hasPrefix(`"""`):
		return p.multilineString('"')
	case p.hasPrefix(`'''`):
		return p.multilineString('\'')
	case p.peek() == '"':
		return p.basicString()
	case p.peek() == '\'':
		return p.literalString()
	case p.peek() == '[' || p.peek() == '{':
		return p.bracketed()
	default:
		p.bare()
		return nil
	}
}

func (p *parser) basicString() error {
	start := p.pos
	p.pos++
	for {
		if p.eof() {
			return p.errorf(start, "unterminated string")
		}
		switch p.peek() {
		case '\\':
			p.pos += 2
		case '\n', '\r':
			return p.errorf(start, "unterminated string")
		case '"':
			p.pos++
			return nil
		default:
			p.pos++
		}
	}
}

func (p *parser) literalString() error {
	start := p.pos
	p.pos++
	for {
		if p.eof() {
			return p.errorf(start, "unterminated literal string")
		}
		switch p.peek() {
		case '\n', '\r':
			return p.errorf(start, "unterminated literal string")
		case '\'':
			p.pos++
			return nil
		default:
			p.pos++
		}
	}
}

func (p *parser) multilineString(quote byte) error {
	start := p.pos
	delim := string([]byte{quote, quote, quote})
	p.pos += len(delim)
	for {
		if p.eof() {
			return p.errorf(start, "unterminated multi-line string")
		}
		if quote == '"' && p.peek() == '\\' {
			p.pos += 2
			continue
		}
		if p.hasPrefix(delim) {
			p.pos += len(delim)
			// Up to two quotes may directly precede the closing delimiter.
			for range 2 {
				if p.peek() != quote {
					break
				}
				p.pos++
			}
			return nil
		}
		p.pos++
	}
}

// bracketed scans an array or inline table, including nested values,
// strings, comments and line breaks, up to its matching close bracket.
func (p *parser) bracketed() error {
	start := p.pos
	var closers []byte

	for {
		if p.eof() {
			if p.src[start] == '[' {
				return p.errorf(start, "unterminated array")
			}
			return p.errorf(start, "unterminated inline table")
		}

		switch char := p.peek(); char {
		case '[':
			closers = append(closers, ']')
			p.pos++
		case '{':
			closers = append(closers, '}')
			p.pos++
		case ']', '}':
			if len(closers) == 0 || closers[len(closers)-1] != char {
				return p.errorf(p.pos, "mismatched %q", char)
			}
			closers = closers[:len(closers)-1]
			p.pos++
			if len(closers) == 0 {
				return nil
			}
		case '"', '\'':
			if err := p.scanString(); err != nil {
				return err
			}
		case '#':
			for !p.eof() && !p.atLineEnd() {
				p.pos++
			}
		case '\r':
			if p.peekAt(1) != '\n' {
				return p.errorf(p.pos, "carriage return not followed by line feed")
			}
			p.pos += len(CRLF)
		default:
			p.pos++
		}
	}
}

func (p *parser) scanString() error {
	switch {
	case p.hasPrefix(`"""`):
		return p.multilineString('"')
	case p.hasPrefix(`'''`):
		return p.multilineString('\'')
	case p.peek() == '"':
		return p.basicString()
	default:
		return p.literalString()
	}
}

// bare scans an unquoted scalar (number, boolean, date-time) up to the end
// of the line or a comment. Trailing blanks are left for the caller.
func (p *parser) bare() {
	start := p.pos
	for !p.eof() {
		char := p.peek()
		if char == '\n' || char == '\r' || char == '#' {
			break
		}
		p.pos++
	}
	for p.pos > start && isBlank(p.src[p.pos-1]) {
		p.pos--
	}
}

func isBlank(char byte) bool {
	return char == ' ' || char == '\t'
}
