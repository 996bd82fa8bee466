// Package pattern compiles filename formats into matching patterns.
//
// A filename format is literal text with field markers:
//
//	[tracknum] - [artist] - [title]
//
// Compile escapes the literal text, replaces each marker with a capture
// group and anchors the result, producing a Pattern whose marker table maps
// every field to its capture position:
//
//	p, err := pattern.Compile("[tracknum] - [title]")
//	values, ok := p.Match("04 - Solitude")
//	// values[model.FieldTrackNum] == "04", values[model.FieldTitle] == "Solitude"
//
// Text markers ([title], [artist], [album], [year], [genre]) capture any
// text lazily; [tracknum] captures a run of non-space characters. Matching
// is case-insensitive and always covers the whole name.
package pattern
