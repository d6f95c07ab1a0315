package op

import "github.com/wippyai/pollio"

// Read performs a single read into buf.
type Read struct {
	r   pollio.Reader
	buf []byte
}

func NewRead(r pollio.Reader, buf []byte) *Read {
	return &Read{r: r, buf: buf}
}

func (o *Read) Poll(cx *pollio.Context) pollio.Poll[int] {
	return o.r.PollRead(cx, o.buf)
}

// ReadBuf performs a single read into the spare room of a ReadBuffer.
type ReadBuf struct {
	r   pollio.Reader
	buf pollio.ReadBuffer
}

func NewReadBuf(r pollio.Reader, buf pollio.ReadBuffer) *ReadBuf {
	return &ReadBuf{r: r, buf: buf}
}

func (o *ReadBuf) Poll(cx *pollio.Context) pollio.Poll[int] {
	return pollio.PollReadBuf(cx, o.r, o.buf)
}
