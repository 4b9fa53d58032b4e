// Package pfg reads the hierarchical key/value configuration text format.
//
// Indentation encodes the namespace path, and a dotted key is the accepted
// flat equivalent, so these two spellings produce identical assignments:
//
//	hello:
//	  times = 3
//
//	hello.times = 3
//
// A ';' outside quotes starts a comment running to the end of the line.
// Malformed lines are collected as parse errors on the returned result,
// with file and line provenance, rather than aborting the read.
package pfg
