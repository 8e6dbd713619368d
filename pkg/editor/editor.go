package editor

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// DefaultRootName is the name of the root created by [New].
const DefaultRootName = "Root"

// Editor holds the single live tree and selection.
type Editor struct {
	mu        sync.Mutex
	root      *tree.Node
	selected  *tree.Node
	revision  uint64
	listeners []Listener

	rootName   string
	exportName string
	logger     *log.Logger
}

// Option configures an [Editor].
type Option func(*Editor)

// WithRootName sets the name of the initial root.
func WithRootName(name string) Option {
	return func(e *Editor) {
		if strings.TrimSpace(name) != "" {
			e.rootName = name
		}
	}
}

// WithExportName sets the filename returned by [Editor.Export].
func WithExportName(name string) Option {
	return func(e *Editor) {
		if name != "" {
			e.exportName = name
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(e *Editor) {
		if l != nil {
			e.listeners = append(e.listeners, l)
		}
	}
}

// New creates an editor whose tree is a single childless root, selected.
func New(opts ...Option) *Editor {
	e := &Editor{
		rootName:   DefaultRootName,
		exportName: arborio.DefaultExportName,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.root = tree.New(e.rootName)
	e.selected = e.root
	return e
}

// Subscribe registers l to receive future changes.
func (e *Editor) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// AddNode appends a node named name to the root's children.
//
// The name is trimmed; a blank name returns [errors.ErrCodeEmptyName] and
// changes nothing. Front ends treat that error as a silent no-op.
func (e *Editor) AddNode(ctx context.Context, name string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.add(ctx, e.root, name)
}

// AddChild appends a node named name under the node with the given ID.
// It returns [errors.ErrCodeNodeNotFound] if parentID is not in the current tree.
func (e *Editor) AddChild(ctx context.Context, parentID, name string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	parent := e.root.Find(parentID)
	if parent == nil {
		return e.snapshot(), errors.New(errors.ErrCodeNodeNotFound, "node %q is not in the current tree", parentID)
	}
	return e.add(ctx, parent, name)
}

// AddChildToSelected appends a node named name under the selected node.
func (e *Editor) AddChildToSelected(ctx context.Context, name string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.add(ctx, e.selected, name)
}

func (e *Editor) add(ctx context.Context, parent *tree.Node, name string) (Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return e.snapshot(), errors.New(errors.ErrCodeEmptyName, "node name cannot be empty")
	}

	child := parent.Add(name)
	e.logger.Debug("added node", "name", name, "parent", parent.Name, "id", child.ID)
	observability.Editor().OnMutation(ctx, string(ChangeAdded), e.root.Len())
	return e.commit(ctx, ChangeAdded, child.ID), nil
}

// Replace swaps the whole tree for a copy of root and selects the new root.
// root must pass [tree.Check]; otherwise the error has code
// [errors.ErrCodeInvalidTree] and nothing changes. The editor keeps its own
// copy, so later changes to root do not reach the live tree.
func (e *Editor) Replace(ctx context.Context, root *tree.Node) (Snapshot, error) {
	if root == nil {
		return e.Snapshot(), errors.New(errors.ErrCodeInvalidTree, "replacement tree must have a root")
	}
	if err := tree.Check(root); err != nil {
		return e.Snapshot(), err
	}
	root = root.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replace(ctx, root), nil
}

func (e *Editor) replace(ctx context.Context, root *tree.Node) Snapshot {
	e.root = root
	e.selected = root
	e.logger.Debug("replaced tree", "root", root.Name, "nodes", root.Len())
	observability.Editor().OnMutation(ctx, string(ChangeReplaced), root.Len())
	return e.commit(ctx, ChangeReplaced, root.ID)
}

// Load parses and validates data and, on success, replaces the tree.
//
// Errors carry [errors.ErrCodeParse] or [errors.ErrCodeInvalidTree]; in
// both cases the tree and selection are unchanged. Parsing happens before
// the editor is locked, so a slow parse never blocks readers.
func (e *Editor) Load(ctx context.Context, data []byte) (Snapshot, error) {
	root, err := arborio.Decode(data)
	if err != nil {
		e.logger.Debug("load rejected", "err", err)
		observability.Editor().OnLoadFailed(ctx, string(errors.GetCode(err)))
		return e.Snapshot(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replace(ctx, root), nil
}

// Select moves the selection to the node with the given ID.
//
// Selection events that reference a node outside the current tree (for
// example a click on a diagram drawn before a reload) are ignored and
// reported as [errors.ErrCodeNodeNotFound].
func (e *Editor) Select(ctx context.Context, id string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.root.Find(id)
	if n == nil {
		return e.snapshot(), errors.New(errors.ErrCodeNodeNotFound, "node %q is not in the current tree", id)
	}
	e.selected = n
	observability.Editor().OnMutation(ctx, string(ChangeSelected), e.root.Len())
	return e.commit(ctx, ChangeSelected, n.ID), nil
}

// Snapshot returns the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Export returns the download filename and the serializer text of the tree.
func (e *Editor) Export() (string, []byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := arborio.Marshal(e.root)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "export tree")
	}
	return e.exportName, data, nil
}

// commit bumps the revision and notifies listeners. The caller holds e.mu.
func (e *Editor) commit(ctx context.Context, kind ChangeKind, nodeID string) Snapshot {
	e.revision++
	snap := e.snapshot()
	c := Change{Kind: kind, Snapshot: snap, Node: nodeID}
	for _, l := range e.listeners {
		l.OnChange(ctx, c)
	}
	return snap
}

// snapshot copies the current state. The caller holds e.mu.
func (e *Editor) snapshot() Snapshot {
	preview, err := arborio.Marshal(e.root)
	if err != nil {
		e.logger.Error("preview generation failed", "err", err)
	}
	return Snapshot{
		Revision: e.revision,
		Root:     e.root.Clone(),
		Selected: e.selected.ID,
		Preview:  string(preview),
	}
}
