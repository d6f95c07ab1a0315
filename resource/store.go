package resource

import (
	"sync"

	"github.com/wippyai/pollio/errors"
)

// store is the slot storage behind a Table.
type store struct {
	entries  []entry
	freeList []Handle
	mu       sync.Mutex
	closed   bool
}

type entry struct {
	value    any
	kind     Kind
	valid    bool
	borrowed bool
}

func newStore() *store {
	return &store{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *store) create(kind Kind, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.OpHost, "resource table")
	}
	if kind < KindPollable || kind > KindError {
		return 0, errors.Unsupported(errors.OpHost, "resource "+kind.String())
	}

	e := entry{kind: kind, value: value, valid: true}
	if n := len(s.freeList); n > 0 {
		h := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.entries[h-1] = e
		return h, nil
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

// lookup returns the live entry for h. The caller holds mu.
func (s *store) lookup(h Handle) *entry {
	if h == 0 || int(h) > len(s.entries) {
		return nil
	}
	e := &s.entries[h-1]
	if !e.valid {
		return nil
	}
	return e
}

func (s *store) get(h Handle) (any, Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.kind, true
}

func (s *store) borrow(h Handle, kind Kind) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil || (kind != 0 && e.kind != kind) {
		what := "resource"
		if kind != 0 {
			what = kind.String()
		}
		return nil, errors.NotFound(errors.OpHost, what, uint32(h))
	}
	if e.borrowed {
		return nil, errors.Borrowed(errors.OpHost, uint32(h))
	}
	e.borrowed = true
	return e.value, nil
}

func (s *store) release(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil || !e.borrowed {
		return false
	}
	e.borrowed = false
	return true
}

func (s *store) drop(h Handle) (any, Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil {
		return nil, 0, errors.NotFound(errors.OpHost, "resource", uint32(h))
	}
	if e.borrowed {
		return nil, 0, errors.Borrowed(errors.OpHost, uint32(h))
	}

	value, kind := e.value, e.kind
	*e = entry{}
	s.freeList = append(s.freeList, h)
	return value, kind, nil
}

func (s *store) handles() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hs []Handle
	for i, e := range s.entries {
		if e.valid {
			hs = append(hs, Handle(i+1))
		}
	}
	return hs
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// close marks the store closed and hands back every live value.
func (s *store) close() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var values []any
	for _, e := range s.entries {
		if e.valid {
			values = append(values, e.value)
		}
	}
	s.entries = nil
	s.freeList = nil
	return values
}
