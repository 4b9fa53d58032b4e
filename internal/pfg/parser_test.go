package pfg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pyrite/internal/source"
)

func parse(t *testing.T, text string) source.Result {
	t.Helper()
	res, err := Parse(strings.NewReader(text), "test.pfg", source.PriorityExplicitFile)
	require.NoError(t, err)
	return res
}

func TestParseDottedAndIndentedFormsAreEquivalent(t *testing.T) {
	t.Parallel()

	dotted := parse(t, "hello.times = 3\n")
	indented := parse(t, "hello:\n  times = 3\n")

	require.Len(t, dotted.Assignments, 1)
	require.Len(t, indented.Assignments, 1)
	assert.Equal(t, dotted.Assignments[0].Path, indented.Assignments[0].Path)
	assert.Equal(t, dotted.Assignments[0].Value, indented.Assignments[0].Value)
	assert.Equal(t, []string{"hello", "times"}, indented.Assignments[0].Path)
}

func TestParseNestedScopes(t *testing.T) {
	t.Parallel()

	res := parse(t, `
hello:
  who = world
  greeter:
    decoration = !!!
  times = 3
goodbye.who = nobody
`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Assignments, 4)

	keys := make([]string, len(res.Assignments))
	for i, a := range res.Assignments {
		keys[i] = a.Key()
	}
	assert.Equal(t, []string{
		"hello.who",
		"hello.greeter.decoration",
		"hello.times",
		"goodbye.who",
	}, keys)
}

func TestParseDottedSectionHeader(t *testing.T) {
	t.Parallel()

	res := parse(t, "applications.hello:\n  times = 2\n")
	require.Empty(t, res.Errors)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, []string{"applications", "hello", "times"}, res.Assignments[0].Path)
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	res := parse(t, `
; a full-line comment
hello:

  ; indented comment
  who = world  ; trailing comment
  sep = "a;b"
`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Assignments, 2)
	assert.Equal(t, "hello.who", res.Assignments[0].Key())
	assert.Equal(t, "world", res.Assignments[0].Value)
	assert.Equal(t, "a;b", res.Assignments[1].Value)
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	res := parse(t, `
hello:
  who = "night shift"
  empty =
  padded = ' spaced '
  raw = a, b, c
`)
	require.Empty(t, res.Errors)
	require.Len(t, res.Assignments, 4)
	assert.Equal(t, "night shift", res.Assignments[0].Value)
	assert.Equal(t, "", res.Assignments[1].Value)
	assert.Equal(t, " spaced ", res.Assignments[2].Value)
	assert.Equal(t, "a, b, c", res.Assignments[3].Value)
}

func TestParseMalformedLinesAreCollected(t *testing.T) {
	t.Parallel()

	res := parse(t, `hello:
  just some words
  who = world
	tabbed = 1
  .bad = 2
`)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "hello.who", res.Assignments[0].Key())

	require.Len(t, res.Errors, 3)
	assert.Equal(t, "test.pfg:2", res.Errors[0].Origin)
	assert.Contains(t, res.Errors[0].Reason, "malformed line")
	assert.Contains(t, res.Errors[1].Reason, "tab indentation")
	assert.Contains(t, res.Errors[2].Reason, "empty segment")
}

func TestParseOriginCarriesLineNumbers(t *testing.T) {
	t.Parallel()

	res := parse(t, "hello:\n  who = world\n  times = 3\n")
	require.Len(t, res.Assignments, 2)
	assert.Equal(t, "test.pfg:2", res.Assignments[0].Origin)
	assert.Equal(t, "test.pfg:3", res.Assignments[1].Origin)
}

func TestParseDedentClosesScopes(t *testing.T) {
	t.Parallel()

	res := parse(t, `
a:
  b:
    c = 1
  d = 2
e = 3
`)
	require.Empty(t, res.Errors)
	keys := make([]string, len(res.Assignments))
	for i, a := range res.Assignments {
		keys[i] = a.Key()
	}
	assert.Equal(t, []string{"a.b.c", "a.d", "e"}, keys)
}

func TestAdapterReadsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.pfg")
	require.NoError(t, os.WriteFile(path, []byte("hello.times = 3\n"), 0o644))

	a := NewFile(path, source.PriorityDiscoveredFile)
	res, err := a.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, source.PriorityDiscoveredFile, res.Assignments[0].Priority)
	assert.Equal(t, path+":1", res.Assignments[0].Origin)

	_, err = NewFile(filepath.Join(dir, "missing.pfg"), source.PriorityExplicitFile).Read(context.Background())
	require.Error(t, err)
}
