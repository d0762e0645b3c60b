package syntax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/syntax"
)

func TestNode_SpliceChildren(t *testing.T) {
	t.Parallel()

	newRoot := func() *syntax.Node {
		return syntax.NewNode(syntax.KindRoot,
			syntax.NewToken(syntax.KindComment, "#a"),
			syntax.NewNewline("\n"),
			syntax.NewToken(syntax.KindComment, "#b"),
		)
	}

	t.Run("replaces a range", func(t *testing.T) {
		t.Parallel()

		root := newRoot()
		err := root.SpliceChildren(0, 1, []syntax.Element{syntax.NewToken(syntax.KindComment, "#z")})
		require.NoError(t, err)
		assert.Equal(t, "#z\n#b", root.Text())
		assert.Equal(t, 3, root.ChildCount())
	})

	t.Run("replaces everything", func(t *testing.T) {
		t.Parallel()

		root := newRoot()
		children := root.Children()
		reversed := []syntax.Element{children[2], children[1], children[0]}
		require.NoError(t, root.SpliceChildren(0, root.ChildCount(), reversed))
		assert.Equal(t, "#b\n#a", root.Text())
	})

	t.Run("rejects invalid ranges and leaves node untouched", func(t *testing.T) {
		t.Parallel()

		root := newRoot()
		for _, bounds := range [][2]int{{-1, 1}, {0, 4}, {2, 1}} {
			err := root.SpliceChildren(bounds[0], bounds[1], nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, syntax.ErrSpliceRange))
		}
		assert.Equal(t, "#a\n#b", root.Text())
	})
}

func TestNode_ChildrenIsACopy(t *testing.T) {
	t.Parallel()

	root := syntax.NewNode(syntax.KindRoot, syntax.NewNewline("\n"))
	children := root.Children()
	children[0] = syntax.NewToken(syntax.KindComment, "#x")

	assert.Equal(t, "\n", root.Text())
}

func TestClone(t *testing.T) {
	t.Parallel()

	root, err := syntax.ParseString("[a]\nb = [1, 2]\n")
	require.NoError(t, err)

	clone, ok := syntax.AsNode(syntax.Clone(root))
	require.True(t, ok)
	assert.Equal(t, root.Text(), clone.Text())
	assert.NotSame(t, root, clone)

	require.NoError(t, clone.SpliceChildren(0, clone.ChildCount(), nil))
	assert.Equal(t, "[a]\nb = [1, 2]\n", root.Text())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root, err := syntax.ParseString("a = 1\n")
	require.NoError(t, err)

	var visited []syntax.Kind
	err = syntax.Walk(root, func(elem syntax.Element) error {
		visited = append(visited, elem.Kind())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []syntax.Kind{
		syntax.KindRoot,
		syntax.KindEntry,
		syntax.KindKey,
		syntax.KindKeyText,
		syntax.KindWhitespace,
		syntax.KindEqual,
		syntax.KindWhitespace,
		syntax.KindValue,
		syntax.KindValueText,
		syntax.KindNewline,
	}, visited)

	stop := errors.New("stop")
	count := 0
	err = syntax.Walk(root, func(syntax.Element) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestNewlineHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n\n", syntax.NewBlankLine(syntax.LF).Text())
	assert.Equal(t, "\r\n\r\n", syntax.NewBlankLine(syntax.CRLF).Text())
	assert.Equal(t, syntax.CRLF, syntax.LineEnding("\r\n"))
	assert.Equal(t, syntax.LF, syntax.LineEnding("\n\n"))
	assert.True(t, syntax.IsBlankLine(syntax.NewNewline("\r\n\r\n")))
	assert.False(t, syntax.IsBlankLine(syntax.NewToken(syntax.KindWhitespace, "\n\n")))
	assert.Equal(t, "Newline", syntax.KindNewline.String())
	assert.True(t, syntax.KindTableArrayHeader.IsHeader())
	assert.False(t, syntax.KindEntry.IsHeader())
}
