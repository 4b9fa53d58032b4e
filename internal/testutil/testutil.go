// Package testutil provides shared fixtures for resolution and binding
// tests: an in-memory source adapter and a context wired with a quiet
// logger.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/source"
)

// Context returns a context carrying a discard logger, so code under test
// can log freely without polluting test output.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// Static is an in-memory source adapter yielding a fixed result. The zero
// value reads as an empty source.
type Static struct {
	Items []source.Assignment
	Errs  []*source.ParseError
}

// Read implements the source.Adapter interface.
func (s *Static) Read(_ context.Context) (source.Result, error) {
	return source.Result{Assignments: s.Items, Errors: s.Errs}, nil
}

// Assignments builds a static adapter from ordered key/value pairs, all at
// the same priority. Keys are dotted paths including the instance segment.
func Assignments(priority source.Priority, origin string, pairs ...[2]string) *Static {
	s := &Static{}
	for _, kv := range pairs {
		s.Items = append(s.Items, source.Assignment{
			Path:     strings.Split(kv[0], "."),
			Value:    kv[1],
			Priority: priority,
			Origin:   origin,
		})
	}
	return s
}
