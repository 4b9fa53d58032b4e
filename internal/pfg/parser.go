package pfg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/pyrite/internal/source"
)

// Adapter reads one pfg file as a configuration source.
type Adapter struct {
	path     string
	priority source.Priority
}

// NewFile creates an adapter over the file at path. The priority tells the
// engine whether this is a discovered default-named file or an explicitly
// requested one.
func NewFile(path string, priority source.Priority) *Adapter {
	return &Adapter{path: path, priority: priority}
}

// Read implements the source.Adapter interface. It fails only when the file
// cannot be opened; malformed content is collected on the result.
func (a *Adapter) Read(_ context.Context) (source.Result, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return source.Result{}, fmt.Errorf("cannot read pfg source: %w", err)
	}
	defer f.Close()
	return Parse(f, a.path, a.priority)
}

// frame is one open indentation scope.
type frame struct {
	indent int
	path   []string
}

// Parse reads pfg text from r, tagging assignments with the given origin
// name and priority. Source order is preserved.
func Parse(r io.Reader, name string, priority source.Priority) (source.Result, error) {
	var res source.Result

	// The sentinel root frame keeps the scope stack non-empty and gives
	// top-level lines an empty path prefix.
	stack := []frame{{indent: -1}}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		origin := fmt.Sprintf("%s:%d", name, lineno)

		trimmed := strings.TrimSpace(stripComment(line))
		if trimmed == "" {
			continue
		}

		indent := indentOf(line)
		if indent < 0 {
			res.Errors = append(res.Errors, &source.ParseError{
				Origin: origin,
				Reason: "tab indentation is not supported, use spaces",
			})
			continue
		}

		// Close every scope at or beyond this line's indentation.
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		switch {
		case strings.Contains(trimmed, "="):
			key, value, _ := strings.Cut(trimmed, "=")
			segs, err := splitKey(key)
			if err != nil {
				res.Errors = append(res.Errors, &source.ParseError{Origin: origin, Reason: err.Error()})
				continue
			}
			res.Assignments = append(res.Assignments, source.Assignment{
				Path:     append(append([]string{}, parent.path...), segs...),
				Value:    unquote(strings.TrimSpace(value)),
				Priority: priority,
				Origin:   origin,
			})

		case strings.HasSuffix(trimmed, ":"):
			segs, err := splitKey(strings.TrimSuffix(trimmed, ":"))
			if err != nil {
				res.Errors = append(res.Errors, &source.ParseError{Origin: origin, Reason: err.Error()})
				continue
			}
			stack = append(stack, frame{
				indent: indent,
				path:   append(append([]string{}, parent.path...), segs...),
			})

		default:
			res.Errors = append(res.Errors, &source.ParseError{
				Origin: origin,
				Reason: fmt.Sprintf("malformed line %q: expected 'key = value' or 'section:'", trimmed),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("cannot read pfg source %s: %w", name, err)
	}
	return res, nil
}

// stripComment cuts the line at the first ';' outside quotes; comments run
// to the end of the line.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ';':
			return line[:i]
		}
	}
	return line
}

// indentOf counts leading spaces, or returns -1 if the indentation mixes in
// tabs.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			return -1
		default:
			return n
		}
	}
	return n
}

// splitKey splits a possibly dotted key into namespace segments.
func splitKey(key string) ([]string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("missing key")
	}
	segs := strings.Split(key, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("key %q has an empty segment", key)
		}
		if strings.ContainsAny(seg, " \t") {
			return nil, fmt.Errorf("key %q contains whitespace", key)
		}
	}
	return segs, nil
}

// unquote strips one level of matching quotes, letting values carry
// significant leading or trailing blanks.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
