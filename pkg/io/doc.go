// Package io provides JSON import and export for name trees.
//
// # Overview
//
// This package is the serializer between the in-memory [tree.Node] and the
// interchange text used for the on-screen preview, file export and file
// import. The format is a recursive object:
//
//	{
//	  "name": "Root",
//	  "children": [
//	    {
//	      "name": "A",
//	      "children": []
//	    }
//	  ]
//	}
//
// "name" is a required non-empty string. "children" is an optional array of
// the same shape. No other fields are recognized; they are dropped on import.
//
// # Export
//
// [Marshal], [WriteJSON] and [ExportJSON] produce a deterministic,
// two-space-indented document with "name" always before "children" and a
// trailing newline. "children" is always written, as [] for leaves, so a
// file with the field absent and one with an empty array export to the same
// bytes. Node IDs are never exported.
//
// # Import
//
// Import runs in two steps, which callers may also run separately:
//
//	doc, err := io.ParseText(data) // PARSE_ERROR on malformed JSON
//	root, err := tree.Validate(doc) // INVALID_TREE on the wrong shape
//
// [Decode], [ReadJSON] and [ImportJSON] perform both. [ReadJSON] and
// [ImportJSON] read their input completely before parsing; a partial read is
// never decoded.
//
// # Round-trip
//
// For any valid tree T, Decode(Marshal(T)) is structurally equal to T with
// child order preserved (see [tree.Equal]).
package io
