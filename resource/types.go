package resource

import "strconv"

// Handle is an opaque reference to an entry in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind identifies what sort of value an entry holds.
type Kind uint32

const (
	KindPollable Kind = iota + 1
	KindInputStream
	KindOutputStream
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindPollable:
		return "pollable"
	case KindInputStream:
		return "input-stream"
	case KindOutputStream:
		return "output-stream"
	case KindError:
		return "error"
	default:
		return "kind " + strconv.FormatUint(uint64(k), 10)
	}
}

// EventType is the type of a lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventReleased
)

// Event is a lifecycle notification.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives lifecycle events synchronously. It must not subscribe
// or unsubscribe from within the callback.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup on removal.
type Dropper interface {
	Drop()
}
