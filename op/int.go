package op

import (
	"encoding/binary"

	"github.com/wippyai/pollio"
)

// Integer is the set of fixed-size integers ReadInt and WriteInt handle.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ReadInt reads one fixed-size integer in the given byte order.
// A stream that ends mid-value fails like ReadExact.
type ReadInt[T Integer] struct {
	exact *ReadExact
	order binary.ByteOrder
	raw   [8]byte
}

func NewReadInt[T Integer](r pollio.Reader, order binary.ByteOrder) *ReadInt[T] {
	o := &ReadInt[T]{order: order}
	o.exact = NewReadExact(r, o.raw[:sizeOf[T]()])
	return o
}

func (o *ReadInt[T]) Poll(cx *pollio.Context) pollio.Poll[T] {
	p := o.exact.Poll(cx)
	if p.IsPending() {
		return pollio.Pending[T]()
	}
	if err := p.Err(); err != nil {
		return pollio.Fail[T](err)
	}

	b := o.raw[:sizeOf[T]()]
	switch len(b) {
	case 1:
		return pollio.Ready(T(b[0]))
	case 2:
		return pollio.Ready(T(o.order.Uint16(b)))
	case 4:
		return pollio.Ready(T(o.order.Uint32(b)))
	default:
		return pollio.Ready(T(o.order.Uint64(b)))
	}
}

// WriteInt writes one fixed-size integer in the given byte order.
type WriteInt[T Integer] struct {
	all *WriteAll
	raw [8]byte
}

func NewWriteInt[T Integer](w pollio.Writer, v T, order binary.ByteOrder) *WriteInt[T] {
	o := &WriteInt[T]{}
	b := o.raw[:sizeOf[T]()]
	u := uint64(v)
	switch len(b) {
	case 1:
		b[0] = byte(u)
	case 2:
		order.PutUint16(b, uint16(u))
	case 4:
		order.PutUint32(b, uint32(u))
	default:
		order.PutUint64(b, u)
	}
	o.all = NewWriteAll(w, b)
	return o
}

func (o *WriteInt[T]) Poll(cx *pollio.Context) pollio.Poll[struct{}] {
	p := o.all.Poll(cx)
	if p.IsPending() {
		return pollio.Pending[struct{}]()
	}
	if err := p.Err(); err != nil {
		return pollio.Fail[struct{}](err)
	}
	return pollio.Done()
}

func sizeOf[T Integer]() int {
	var v T
	return binary.Size(v)
}
