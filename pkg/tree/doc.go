// Package tree defines the in-memory name tree edited by arbor.
//
// # Model
//
// A tree is a single root [Node]. Every node has a non-empty name and an
// ordered list of children it owns exclusively: there are no shared nodes,
// no parent pointers and no cycles.
//
//	root := tree.New("Root")
//	a := root.Add("A")
//	a.Add("A1")
//	root.Add("B")
//
// Each node also carries an ID, a UUID assigned at construction. IDs give
// selection events a stable handle on a node across snapshots. They are an
// in-memory identity only and are never written to the interchange format;
// loading a file assigns fresh IDs.
//
// # Validation
//
// Externally supplied documents arrive as the untyped values produced by a
// JSON decoder. [Validate] walks such a value by recursive descent and either
// returns a typed tree or a [*ValidationError] locating the first offending
// node:
//
//	var doc any
//	_ = json.Unmarshal(data, &doc)
//	root, err := tree.Validate(doc)
//	var verr *tree.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Path, verr.Reason) // $.children[1] name must be a string
//	}
//
// Trees built with [New] and [Node.Add] are valid by construction.
//
// # Equality
//
// [Equal] compares names and child order and ignores IDs, which is the notion
// of structural equality used for serialization round-trips.
//
// # Concurrency
//
// Nodes are not synchronized. The editor package owns the live tree and
// hands out deep copies ([Node.Clone]) to readers.
package tree
