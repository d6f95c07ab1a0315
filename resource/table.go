package resource

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/pollio"
)

// Table holds host-side values behind handles.
type Table struct {
	store     *store
	observers []Observer
	obsMu     sync.RWMutex
}

func NewTable() *Table {
	return &Table{store: newStore()}
}

// Insert adds a value and returns its handle. It fails once the table is
// closed.
func (t *Table) Insert(kind Kind, value any) (Handle, error) {
	h, err := t.store.create(kind, value)
	if err != nil {
		return 0, err
	}
	t.notify(Event{Type: EventCreated, Handle: h, Kind: kind, Value: value})
	return h, nil
}

// Get retrieves a value without borrowing it.
func (t *Table) Get(h Handle) (any, bool) {
	v, _, ok := t.store.get(h)
	return v, ok
}

// GetTyped retrieves a value only if it has the expected kind.
func (t *Table) GetTyped(h Handle, kind Kind) (any, bool) {
	v, k, ok := t.store.get(h)
	if !ok || k != kind {
		return nil, false
	}
	return v, true
}

// Borrow takes exclusive use of an entry of the given kind. A kind of 0
// accepts any entry. Every successful Borrow must be paired with Release.
func (t *Table) Borrow(h Handle, kind Kind) (any, error) {
	v, err := t.store.borrow(h, kind)
	if err != nil {
		pollio.Logger().Debug("borrow refused", zap.Uint32("handle", uint32(h)), zap.Error(err))
		return nil, err
	}
	t.notify(Event{Type: EventBorrowed, Handle: h, Kind: kind, Value: v})
	return v, nil
}

// Release ends a borrow. It reports false if h was not borrowed.
func (t *Table) Release(h Handle) bool {
	if !t.store.release(h) {
		return false
	}
	t.notify(Event{Type: EventReleased, Handle: h})
	return true
}

// Remove deletes an entry and drops its value. It refuses while the entry
// is borrowed.
func (t *Table) Remove(h Handle) (any, error) {
	v, kind, err := t.store.drop(h)
	if err != nil {
		return nil, err
	}
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
	pollio.Logger().Debug("resource dropped", zap.Uint32("handle", uint32(h)), zap.Stringer("kind", kind))
	t.notify(Event{Type: EventDropped, Handle: h, Kind: kind, Value: v})
	return v, nil
}

func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.store.len()
}

// Clear removes every entry that is not currently borrowed.
func (t *Table) Clear() {
	for _, h := range t.store.handles() {
		_, _ = t.Remove(h)
	}
}

// Close drops every value and rejects further inserts. Borrowed entries are
// dropped too; their borrowers must not touch them afterwards.
func (t *Table) Close() error {
	for _, v := range t.store.close() {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

// Lookup returns the value behind h as a T without borrowing it.
func Lookup[T any](t *Table, h Handle, kind Kind) (T, bool) {
	var zero T
	v, ok := t.GetTyped(h, kind)
	if !ok {
		return zero, false
	}
	tv, ok := v.(T)
	return tv, ok
}
