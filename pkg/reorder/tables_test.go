package reorder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tomlorder/pkg/reorder"
	"github.com/yaklabco/tomlorder/pkg/syntax"
)

func mustParse(t *testing.T, src string) *syntax.Node {
	t.Helper()

	root, err := syntax.ParseString(src)
	require.NoError(t, err)
	return root
}

// reorderTables parses src, reorders its tables and returns the new text.
func reorderTables(t *testing.T, src string, priority ...string) string {
	t.Helper()

	root := mustParse(t, src)
	require.NoError(t, reorder.NewTables(root).Reorder(root, priority))
	return root.Text()
}

func TestNewTables_Partition(t *testing.T) {
	t.Parallel()

	src := "title = \"x\"\n\n[project]\nname = \"w\"\n\n[[tool.t]]\na = 1\n[[tool.t]]\na = 2\n"
	root := mustParse(t, src)
	tables := reorder.NewTables(root)

	assert.Equal(t, []string{"", "project", "tool.t", "tool.t"}, tables.Names())

	var builder strings.Builder
	count := 0
	for _, seg := range tables.Segments {
		builder.WriteString(seg.Text())
		count += seg.Len()
	}
	assert.Equal(t, src, builder.String())
	assert.Equal(t, root.ChildCount(), count)

	assert.Equal(t, 0, tables.Positions[""])
	assert.Equal(t, 1, tables.Positions["project"])
	assert.Equal(t, 3, tables.Positions["tool.t"], "later duplicate wins")
}

func TestNewTables_NoLeadingSegment(t *testing.T) {
	t.Parallel()

	tables := reorder.NewTables(mustParse(t, "[a]\n[b]\n"))
	assert.Equal(t, []string{"a", "b"}, tables.Names())
}

func TestNewTables_Empty(t *testing.T) {
	t.Parallel()

	tables := reorder.NewTables(mustParse(t, ""))
	assert.Empty(t, tables.Segments)
	assert.Empty(t, tables.Positions)
}

func TestTables_Lookup(t *testing.T) {
	t.Parallel()

	tables := reorder.NewTables(mustParse(t, "[[t]]\nx = 1\n[a]\n[[t]]\nx = 2\n"))

	seg, err := tables.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "[a]\n", seg.Text())

	segs, err := tables.Named("t")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "[[t]]\nx = 1\n", segs[0].Text())
	assert.Equal(t, "[[t]]\nx = 2\n", segs[1].Text())

	_, err = tables.Get("missing")
	require.ErrorIs(t, err, reorder.ErrNameNotFound)
	assert.Contains(t, err.Error(), `"missing"`)

	_, err = tables.Named("missing")
	assert.ErrorIs(t, err, reorder.ErrNameNotFound)
}

func TestNameOf(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "a = 1\n[ tool.x ]\n[[ t ]]\n")
	var names []string
	for _, child := range root.Children() {
		names = append(names, reorder.NameOf(child))
	}

	assert.Equal(t, []string{"", "", "tool.x", "", "t", ""}, names)
	assert.Empty(t, reorder.NameOf(nil))
}

func TestTables_Reorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		priority []string
		want     string
	}{
		{
			name: "priority order with nested names",
			src: "[project]\nname = \"w\"\n\n[tool.widget.deps]\na = 1\n\n" +
				"[build-system]\nrequires = []\n\n[tool.widget]\nb = 2\n",
			priority: []string{"build-system", "tool.widget"},
			want: "[build-system]\nrequires = []\n\n[tool.widget]\nb = 2\n" +
				"[tool.widget.deps]\na = 1\n\n[project]\nname = \"w\"\n",
		},
		{
			name:     "leading single newline is dropped",
			src:      "\n[b]\nx = 1\n[a]\ny = 2\n",
			priority: []string{"a", "b"},
			want:     "[a]\ny = 2\n\n[b]\nx = 1\n",
		},
		{
			name:     "blank lines between groups collapse to one",
			src:      "[b]\nx = 1\n\n\n\n[a]\ny = 2\n",
			priority: []string{"b", "a"},
			want:     "[b]\nx = 1\n\n[a]\ny = 2\n",
		},
		{
			name:     "missing blank line between groups is added",
			src:      "[b]\nx = 1\n[a]\ny = 2\n",
			priority: []string{"b", "a"},
			want:     "[b]\nx = 1\n\n[a]\ny = 2\n",
		},
		{
			name:     "segment without final newline moves up",
			src:      "[b]\nx = 1\n\n[a]\ny = 2",
			priority: []string{"a", "b"},
			want:     "[a]\ny = 2\n\n[b]\nx = 1\n",
		},
		{
			name:     "root entries stay first",
			src:      "title = 1\n[b]\n[a]\n",
			priority: []string{"a", "b"},
			want:     "title = 1\n\n[a]\n\n[b]\n",
		},
		{
			name:     "repeated array tables keep every segment",
			src:      "[[t]]\nx = 1\n\n[[t]]\nx = 2\n\n[a]\n",
			priority: []string{"a", "t"},
			want:     "[a]\n\n[[t]]\nx = 1\n\n[[t]]\nx = 2\n",
		},
		{
			name:     "CRLF blank line keeps its line ending",
			src:      "[b]\r\nx = 1\r\n[a]\r\ny = 2\r\n",
			priority: []string{"b", "a"},
			want:     "[b]\r\nx = 1\r\n\r\n[a]\r\ny = 2\r\n",
		},
		{
			name:     "comments move with their table",
			src:      "[b]\nx = 1 # note\n# trailing b\n\n[a]\ny = 2\n",
			priority: []string{"a", "b"},
			want:     "[a]\ny = 2\n\n[b]\nx = 1 # note\n# trailing b\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, reorderTables(t, testCase.src, testCase.priority...))
		})
	}
}

func TestTables_Reorder_NormalizedIsUnchanged(t *testing.T) {
	t.Parallel()

	src := "# top\n\n[build-system]\nrequires = []\n\n[project]\nname = \"w\"\n\n" +
		"[tool.widget]\na = 1\n[tool.widget.deps]\nb = 2\n"
	root := mustParse(t, src)
	tables := reorder.NewTables(root)

	require.NoError(t, tables.Reorder(root, tables.Names()))
	assert.Equal(t, src, root.Text())
}

func TestTables_Reorder_Idempotent(t *testing.T) {
	t.Parallel()

	priority := []string{"build-system", "project", "tool.widget"}
	srcs := []string{
		"[tool.widget.deps]\na = 1\n[project]\nname = \"w\"\n\n\n[build-system]\nrequires = []",
		"\n[z]\n[tool.widget]\n[project]\n",
		"key = 1\n[[tool.widget.t]]\n[[tool.widget.t]]\n[project]\n",
	}

	for _, src := range srcs {
		once := reorderTables(t, src, priority...)
		twice := reorderTables(t, once, priority...)
		assert.Equal(t, once, twice, "source %q", src)
	}
}

func TestTables_Reorder_ConservesElements(t *testing.T) {
	t.Parallel()

	src := "[p]\na = 1 # c\n\n[[t]]\n  b = 2\n[q]\n"
	root := mustParse(t, src)
	before := root.ChildCount()

	require.NoError(t, reorder.NewTables(root).Reorder(root, []string{"q", "t", "p"}))
	assert.Equal(t, before, root.ChildCount())

	reparsed, err := syntax.ParseString(root.Text())
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "t", "p"}, reorder.NewTables(reparsed).Names())
}
