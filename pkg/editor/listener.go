package editor

import "context"

// Listener receives committed changes. Typical listeners regenerate the
// preview pane or redraw the diagram.
type Listener interface {
	OnChange(ctx context.Context, c Change)
}

// ListenerFunc adapts a function to the [Listener] interface.
type ListenerFunc func(ctx context.Context, c Change)

// OnChange calls f(ctx, c).
func (f ListenerFunc) OnChange(ctx context.Context, c Change) { f(ctx, c) }
