package syntax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/syntax"
)

func kinds(node *syntax.Node) []syntax.Kind {
	children := node.Children()
	out := make([]syntax.Kind, len(children))
	for idx, child := range children {
		out[idx] = child.Kind()
	}
	return out
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single entry", "a = 1\n"},
		{"no trailing newline", "[a]\nb = 2"},
		{"comments and blanks", "# head\n\n[a] # trailing\nb = 'x' # note\n\n\n[c]\n"},
		{"array of tables", "[[t]]\nx = 1\n\n[[t]]\nx = 2\n"},
		{"multiline array", "deps = [\n  \"a\", # first\n  \"b\",\n]\n"},
		{"inline table", "p = { a = 1, b = [1, 2], c = { d = \"}\" } }\n"},
		{"multiline basic", "s = \"\"\"\nline \\\"\"\" still\n\"\"\"\"\"\nnext = 1\n"},
		{"multiline literal", "s = '''\n[not.a.header]\n'''\n"},
		{"quoted keys", "[\"a.b\".'c']\n\"x y\" = 1\nsite.\"google.com\" = true\n"},
		{"crlf", "[a]\r\nb = 1\r\n\r\n[c]\r\n"},
		{"date with space", "d = 1979-05-27 07:32:00Z   # when\n"},
		{"indented", "  [a]\n    b = 1\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			root, err := syntax.ParseString(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.input, root.Text())
			assert.Equal(t, len(testCase.input), root.Len())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	t.Parallel()

	root, err := syntax.ParseString("a = 1\n\n[t] # c\n[[arr]]\n")
	require.NoError(t, err)

	assert.Equal(t, []syntax.Kind{
		syntax.KindEntry,
		syntax.KindNewline,
		syntax.KindTableHeader,
		syntax.KindWhitespace,
		syntax.KindComment,
		syntax.KindNewline,
		syntax.KindTableArrayHeader,
		syntax.KindNewline,
	}, kinds(root))

	children := root.Children()
	assert.Equal(t, "\n\n", children[1].Text())
	assert.True(t, syntax.IsBlankLine(children[1]))
	assert.False(t, syntax.IsBlankLine(children[5]))

	name, ok := syntax.KeyText(children[2])
	require.True(t, ok)
	assert.Equal(t, "t", name)

	name, ok = syntax.KeyText(children[6])
	require.True(t, ok)
	assert.Equal(t, "arr", name)
}

func TestParse_EntryParts(t *testing.T) {
	t.Parallel()

	root, err := syntax.ParseString("name  =   \"widget\"  # why\n")
	require.NoError(t, err)

	entry, ok := syntax.AsNode(root.Children()[0])
	require.True(t, ok)
	require.Equal(t, syntax.KindEntry, entry.Kind())

	assert.Equal(t, []syntax.Kind{
		syntax.KindKey,
		syntax.KindWhitespace,
		syntax.KindEqual,
		syntax.KindWhitespace,
		syntax.KindValue,
	}, kinds(entry))

	key, ok := syntax.KeyText(entry)
	require.True(t, ok)
	assert.Equal(t, "name", key)
	assert.Equal(t, `"widget"`, entry.Child(syntax.KindValue).Text())

	// Trailing trivia stays at root level.
	assert.Equal(t, []syntax.Kind{
		syntax.KindEntry,
		syntax.KindWhitespace,
		syntax.KindComment,
		syntax.KindNewline,
	}, kinds(root))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"missing equals", "a 1\n", 1, 4},
		{"missing value", "a =\n", 1, 4},
		{"missing key", "= 1\n", 1, 1},
		{"unterminated string", "a = \"abc\n", 1, 5},
		{"unterminated literal", "a = 'abc\n", 1, 5},
		{"unterminated multiline", "a = \"\"\"abc\n", 1, 5},
		{"unterminated array", "a = [1,\n2\n", 1, 5},
		{"mismatched bracket", "a = [1}\n", 1, 7},
		{"unterminated header", "[a\n", 1, 3},
		{"empty header", "[]\n", 1, 2},
		{"array header closed once", "[[a]\n", 1, 4},
		{"garbage after header", "[a] b = 1\n", 1, 5},
		{"two entries on a line", "a = \"x\" b = 1\n", 1, 9},
		{"bare carriage return", "a = 1\rb = 2\n", 1, 6},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := syntax.ParseString(testCase.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, syntax.ErrSyntax))

			var synErr *syntax.Error
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, testCase.line, synErr.Line, "line")
			if testCase.column > 0 {
				assert.Equal(t, testCase.column, synErr.Column, "column")
			}
		})
	}
}
