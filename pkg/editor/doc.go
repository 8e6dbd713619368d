// Package editor owns the live tree and selection of an arbor session.
//
// # Overview
//
// An [Editor] is an explicit state container: exactly one tree and one
// selection, both reachable only through its methods. Front ends (the HTTP
// API, the terminal editor) translate user actions into editor calls:
//
//	ed := editor.New(editor.WithLogger(logger))
//	_ = ed.AddNode("A")            // append to the root
//	_ = ed.Select(nodeID)          // node clicked in the diagram
//	_ = ed.AddChildToSelected("B") // append under the selection
//	_ = ed.Load(fileContents)      // parse, validate, replace
//
// # Invariants
//
// The root is always a valid tree and the selection always resolves to a
// node reachable from it. Every error path leaves both untouched. Replacing
// the tree resets the selection to the new root.
//
// # Change Events
//
// Each successful mutation produces a new [Snapshot] (a deep copy plus the
// regenerated preview text) and delivers it to every registered [Listener]
// in registration order. Listeners run after the mutation has fully
// committed, so they never observe a half-applied change. They must not call
// back into the editor.
//
// # Concurrency
//
// All methods are safe for concurrent use; calls are serialized so that the
// editor behaves as a single logical task.
package editor
