// Package yamlsource adapts a YAML file into flat configuration
// assignments. Nested mappings extend the namespace path the same way pfg
// indentation does, and dotted mapping keys remain an accepted flat
// equivalent. Scalar values keep the types the YAML decoder infers.
package yamlsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/pyrite/internal/source"
)

// Adapter reads one YAML file as a configuration source.
type Adapter struct {
	path     string
	priority source.Priority
}

// NewFile creates an adapter over the file at path.
func NewFile(path string, priority source.Priority) *Adapter {
	return &Adapter{path: path, priority: priority}
}

// Read implements the source.Adapter interface.
func (a *Adapter) Read(_ context.Context) (source.Result, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return source.Result{}, fmt.Errorf("cannot read yaml source: %w", err)
	}

	var root yaml.Node
	var res source.Result
	if err := yaml.Unmarshal(data, &root); err != nil {
		res.Errors = append(res.Errors, &source.ParseError{
			Origin: a.path,
			Reason: err.Error(),
		})
		return res, nil
	}
	if len(root.Content) == 0 {
		return res, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		res.Errors = append(res.Errors, &source.ParseError{
			Origin: fmt.Sprintf("%s:%d", a.path, doc.Line),
			Reason: "top-level yaml value must be a mapping",
		})
		return res, nil
	}

	a.walk(doc, nil, &res)
	return res, nil
}

// walk descends a mapping node, extending the path prefix per key.
func (a *Adapter) walk(mapping *yaml.Node, prefix []string, res *source.Result) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valNode := mapping.Content[i+1]
		origin := fmt.Sprintf("%s:%d", a.path, keyNode.Line)

		if keyNode.Kind != yaml.ScalarNode || keyNode.Value == "" {
			res.Errors = append(res.Errors, &source.ParseError{
				Origin: origin,
				Reason: "mapping key must be a non-empty scalar",
			})
			continue
		}
		path := append(append([]string{}, prefix...), strings.Split(keyNode.Value, ".")...)

		switch valNode.Kind {
		case yaml.MappingNode:
			a.walk(valNode, path, res)
		case yaml.ScalarNode, yaml.SequenceNode:
			var value any
			if err := valNode.Decode(&value); err != nil {
				res.Errors = append(res.Errors, &source.ParseError{
					Origin: origin,
					Reason: err.Error(),
				})
				continue
			}
			res.Assignments = append(res.Assignments, source.Assignment{
				Path:     path,
				Value:    value,
				Priority: a.priority,
				Origin:   origin,
			})
		default:
			res.Errors = append(res.Errors, &source.ParseError{
				Origin: origin,
				Reason: fmt.Sprintf("unsupported yaml node for key %q", keyNode.Value),
			})
		}
	}
}
