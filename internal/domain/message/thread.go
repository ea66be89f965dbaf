package message

import "github.com/google/uuid"

// Entry is anything a Thread can hold.
type Entry interface {
	MessageID() uuid.UUID
}

// Thread is the in-memory ordered view of one conversation. Entries are
// appended in arrival order; an entry whose ID is already present is
// dropped, so a redelivered feed event or the echo of a local write never
// shows twice. Thread is not safe for concurrent use.
type Thread[T Entry] struct {
	items  []T
	seen   map[uuid.UUID]struct{}
	accept func(T) bool
}

// NewThread builds a thread. accept filters incoming entries; nil accepts all.
func NewThread[T Entry](accept func(T) bool) *Thread[T] {
	return &Thread[T]{
		seen:   make(map[uuid.UUID]struct{}),
		accept: accept,
	}
}

// NewDirectThread only accepts messages exchanged between viewer and peer.
func NewDirectThread(viewer, peer uuid.UUID) *Thread[*DirectMessage] {
	return NewThread(func(m *DirectMessage) bool {
		return m.Between(viewer, peer)
	})
}

// Load replaces the content with a bulk-read snapshot.
func (t *Thread[T]) Load(items []T) {
	t.items = t.items[:0]
	t.seen = make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		t.Merge(it)
	}
}

// Merge appends it and reports whether it was added.
func (t *Thread[T]) Merge(it T) bool {
	if t.accept != nil && !t.accept(it) {
		return false
	}
	id := it.MessageID()
	if _, dup := t.seen[id]; dup {
		return false
	}
	t.seen[id] = struct{}{}
	t.items = append(t.items, it)
	return true
}

// Accepts reports whether it passes the filter, ignoring duplicates.
func (t *Thread[T]) Accepts(it T) bool {
	return t.accept == nil || t.accept(it)
}

// Contains reports whether an entry with id was merged.
func (t *Thread[T]) Contains(id uuid.UUID) bool {
	_, ok := t.seen[id]
	return ok
}

func (t *Thread[T]) Items() []T {
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Thread[T]) Len() int { return len(t.items) }
