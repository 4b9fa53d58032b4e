package hclsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/pyrite/internal/source"
)

// Adapter reads one HCL file as a configuration source.
type Adapter struct {
	path     string
	priority source.Priority
}

// NewFile creates an adapter over the file at path.
func NewFile(path string, priority source.Priority) *Adapter {
	return &Adapter{path: path, priority: priority}
}

// Read implements the source.Adapter interface. Parse and evaluation
// diagnostics are collected per entry; only an unreadable file is a hard
// failure.
func (a *Adapter) Read(_ context.Context) (source.Result, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(a.path)
	if file == nil || file.Body == nil {
		return source.Result{}, fmt.Errorf("cannot read hcl source %s: %s", a.path, diags.Error())
	}

	var res source.Result
	for _, d := range diags {
		res.Errors = append(res.Errors, diagToParseError(d))
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return res, fmt.Errorf("hcl source %s: unexpected body implementation", a.path)
	}
	a.walk(body, nil, &res)
	return res, nil
}

// walk flattens a body into assignments, extending the path prefix through
// nested blocks. Attributes within one body are visited in source order.
func (a *Adapter) walk(body *hclsyntax.Body, prefix []string, res *source.Result) {
	for _, attr := range sortedAttributes(body) {
		origin := fmt.Sprintf("%s:%d", a.path, attr.SrcRange.Start.Line)

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			for _, d := range diags {
				res.Errors = append(res.Errors, diagToParseError(d))
			}
			continue
		}

		res.Assignments = append(res.Assignments, source.Assignment{
			Path:     appendKey(prefix, attr.Name),
			Value:    val,
			Priority: a.priority,
			Origin:   origin,
		})
	}

	for _, block := range body.Blocks {
		blockPrefix := appendKey(prefix, block.Type)
		for _, label := range block.Labels {
			blockPrefix = appendKey(blockPrefix, label)
		}
		a.walk(block.Body, blockPrefix, res)
	}
}

// sortedAttributes returns a body's attributes in source order; the
// hclsyntax body stores them in a map.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	for i := 1; i < len(attrs); i++ {
		for j := i; j > 0 && attrs[j-1].SrcRange.Start.Byte > attrs[j].SrcRange.Start.Byte; j-- {
			attrs[j-1], attrs[j] = attrs[j], attrs[j-1]
		}
	}
	return attrs
}

// appendKey extends a path prefix with a possibly dotted key, keeping the
// dotted-key equivalence the other adapters guarantee.
func appendKey(prefix []string, key string) []string {
	out := append([]string{}, prefix...)
	return append(out, strings.Split(key, ".")...)
}

func diagToParseError(d *hcl.Diagnostic) *source.ParseError {
	origin := "hcl"
	if d.Subject != nil {
		origin = fmt.Sprintf("%s:%d", d.Subject.Filename, d.Subject.Start.Line)
	}
	reason := d.Summary
	if d.Detail != "" {
		reason = fmt.Sprintf("%s: %s", d.Summary, d.Detail)
	}
	return &source.ParseError{Origin: origin, Reason: reason}
}
