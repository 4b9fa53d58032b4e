// Package hclsource adapts an HCL file into flat configuration
// assignments. Attribute names and nested block headers extend the
// namespace path exactly like pfg indentation does, so the resolution
// engine never learns which surface syntax produced an assignment.
// Attribute values arrive as already typed cty values; expressions are
// evaluated statically, without an evaluation context.
package hclsource
