package syntax

import "strings"

// Line endings recognized by the parser.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// NewNewline creates a newline token holding text.
func NewNewline(text string) *Token {
	return NewToken(KindNewline, text)
}

// NewBlankLine returns a newline token that ends the current line and leaves
// exactly one empty line after it, using the given line ending.
func NewBlankLine(ending string) *Token {
	return NewNewline(ending + ending)
}

// IsNewline reports whether elem is a newline token.
func IsNewline(elem Element) bool {
	return elem != nil && elem.Kind() == KindNewline
}

// IsBlankLine reports whether elem is a newline token spanning at least one
// empty line.
func IsBlankLine(elem Element) bool {
	return IsNewline(elem) && LineBreaks(elem.Text()) >= 2
}

// LineBreaks counts the line breaks in text.
func LineBreaks(text string) int {
	return strings.Count(text, LF)
}

// LineEnding returns the line ending used by text, defaulting to LF.
func LineEnding(text string) string {
	if strings.Contains(text, CRLF) {
		return CRLF
	}
	return LF
}
