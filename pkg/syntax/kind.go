package syntax

import "strconv"

// Kind classifies an element of the TOML syntax tree.
type Kind uint16

// Element kinds. Node kinds own children; token kinds own text.
const (
	KindRoot Kind = iota

	// Node kinds.
	KindTableHeader      // [a.b]
	KindTableArrayHeader // [[a.b]]
	KindEntry            // key = value
	KindKey              // the key part of a header or entry
	KindValue            // the value part of an entry

	// Token kinds.
	KindNewline    // one or more consecutive line breaks
	KindWhitespace // spaces and tabs
	KindComment    // '#' through end of line, excluding the line break
	KindBracket    // '[', ']', '[[', ']]'
	KindEqual      // '='
	KindKeyText    // raw key text
	KindValueText  // raw value text, possibly spanning lines
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindRoot:             "Root",
	KindTableHeader:      "TableHeader",
	KindTableArrayHeader: "TableArrayHeader",
	KindEntry:            "Entry",
	KindKey:              "Key",
	KindValue:            "Value",
	KindNewline:          "Newline",
	KindWhitespace:       "Whitespace",
	KindComment:          "Comment",
	KindBracket:          "Bracket",
	KindEqual:            "Equal",
	KindKeyText:          "KeyText",
	KindValueText:        "ValueText",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsHeader reports whether k is a table or array-of-tables header.
func (k Kind) IsHeader() bool {
	return k == KindTableHeader || k == KindTableArrayHeader
}

// IsNode reports whether elements of this kind carry children.
func (k Kind) IsNode() bool {
	switch k {
	case KindRoot, KindTableHeader, KindTableArrayHeader, KindEntry, KindKey, KindValue:
		return true
	default:
		return false
	}
}
