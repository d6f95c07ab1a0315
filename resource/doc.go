// Package resource maps integer handles to host-side stream values.
//
// A guest never holds a Go value directly; it holds a Handle into a Table.
// Handles are stable for the lifetime of the entry and slots are reused
// after removal. Handle 0 is never issued.
//
// # Kinds
//
// Every entry carries a Kind so that a handle for one kind of value cannot
// be used where another is expected:
//
//	h, _ := table.Insert(resource.KindInputStream, stream)
//	_, ok := table.GetTyped(h, resource.KindOutputStream) // !ok
//
// # Borrowing
//
// An operation in flight on a stream holds it exclusively. Borrow marks the
// entry as in use until Release; a second Borrow of the same handle fails
// with a KindBorrowed error, and so does Remove:
//
//	v, err := table.Borrow(h, resource.KindInputStream)
//	if err != nil {
//	    return err
//	}
//	defer table.Release(h)
//
// # Observers
//
// Observers receive lifecycle events:
//
//	table.Subscribe(observer) // EventCreated, EventDropped, EventBorrowed, EventReleased
//
// # Cleanup
//
// Values implementing Dropper are dropped when removed, cleared, or when the
// table is closed. Entries are never collected implicitly.
package resource
