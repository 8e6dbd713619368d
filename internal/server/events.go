package server

import (
	"context"
	"sync"

	"github.com/matzehuels/arbor/pkg/editor"
)

// event is the payload pushed to browsers on every committed change.
type event struct {
	Revision uint64 `json:"revision"`
	Kind     string `json:"kind"`
	Node     string `json:"node,omitempty"`
}

// broadcaster fans editor changes out to connected event streams.
// It runs inside the editor's lock, so sends never block: a subscriber
// that falls behind loses intermediate events and catches up on the next.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[chan event]struct{}
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan event]struct{})}
}

// OnChange implements editor.Listener.
func (b *broadcaster) OnChange(_ context.Context, c editor.Change) {
	ev := event{Revision: c.Snapshot.Revision, Kind: string(c.Kind), Node: c.Node}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// subscribe registers a new stream. The returned channel is closed by
// unsubscribe or when the broadcaster shuts down.
func (b *broadcaster) subscribe() (<-chan event, func()) {
	ch := make(chan event, 8)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

var _ editor.Listener = (*broadcaster)(nil)
