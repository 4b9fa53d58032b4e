package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLineRead(t *testing.T) {
	t.Parallel()

	t.Run("well-formed arguments", func(t *testing.T) {
		t.Parallel()
		cl := NewCommandLine("hello", []string{"--times=3", "--greeter.decoration=?!"})

		res, err := cl.Read(context.Background())
		require.NoError(t, err)
		require.Empty(t, res.Errors)
		require.Len(t, res.Assignments, 2)

		assert.Equal(t, []string{"hello", "times"}, res.Assignments[0].Path)
		assert.Equal(t, "3", res.Assignments[0].Value)
		assert.Equal(t, PriorityCommandLine, res.Assignments[0].Priority)
		assert.Equal(t, "cmdline", res.Assignments[0].Origin)

		assert.Equal(t, []string{"hello", "greeter", "decoration"}, res.Assignments[1].Path)
		assert.Equal(t, "?!", res.Assignments[1].Value)
	})

	t.Run("empty value is a valid assignment", func(t *testing.T) {
		t.Parallel()
		cl := NewCommandLine("hello", []string{"--who="})
		res, err := cl.Read(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Assignments, 1)
		assert.Equal(t, "", res.Assignments[0].Value)
	})

	t.Run("malformed arguments are collected, not fatal", func(t *testing.T) {
		t.Parallel()
		cl := NewCommandLine("hello", []string{
			"--times",      // no value
			"times=3",      // no dashes
			"--=3",         // no key
			"--a..b=1",     // empty segment
			"--who=world",  // fine
		})

		res, err := cl.Read(context.Background())
		require.NoError(t, err)
		assert.Len(t, res.Errors, 4)
		require.Len(t, res.Assignments, 1)
		assert.Equal(t, "hello.who", res.Assignments[0].Key())
	})
}
