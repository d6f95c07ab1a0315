package op

import "github.com/wippyai/pollio"

// Write performs a single write of buf.
type Write struct {
	w   pollio.Writer
	buf []byte
}

func NewWrite(w pollio.Writer, buf []byte) *Write {
	return &Write{w: w, buf: buf}
}

func (o *Write) Poll(cx *pollio.Context) pollio.Poll[int] {
	return o.w.PollWrite(cx, o.buf)
}

// WriteBuf performs a single write from a WriteBuffer.
type WriteBuf struct {
	w   pollio.Writer
	buf pollio.WriteBuffer
}

func NewWriteBuf(w pollio.Writer, buf pollio.WriteBuffer) *WriteBuf {
	return &WriteBuf{w: w, buf: buf}
}

func (o *WriteBuf) Poll(cx *pollio.Context) pollio.Poll[int] {
	return pollio.PollWriteBuf(cx, o.w, o.buf)
}

// Flush drains the writer's internal buffering.
type Flush struct {
	w pollio.Writer
}

func NewFlush(w pollio.Writer) *Flush {
	return &Flush{w: w}
}

func (o *Flush) Poll(cx *pollio.Context) pollio.Poll[struct{}] {
	return o.w.PollFlush(cx)
}

// Close shuts the writer down.
type Close struct {
	w pollio.Writer
}

func NewClose(w pollio.Writer) *Close {
	return &Close{w: w}
}

func (o *Close) Poll(cx *pollio.Context) pollio.Poll[struct{}] {
	return o.w.PollClose(cx)
}
