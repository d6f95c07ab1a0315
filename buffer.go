package pollio

// Buffer is a fixed-capacity byte window that is both a ReadBuffer and a
// WriteBuffer. Bytes are appended at the fill mark and consumed from the
// read cursor; once everything is consumed both reset to the start.
type Buffer struct {
	buf []byte
	r   int
	w   int
}

// NewBuffer allocates an empty buffer with the given capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// NewBufferBytes wraps data as a full buffer ready to be written out.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{buf: data, w: len(data)}
}

func (b *Buffer) Spare() []byte {
	return b.buf[b.w:]
}

func (b *Buffer) Advance(n int) {
	if n < 0 || n > len(b.buf)-b.w {
		panic("pollio: Buffer.Advance past capacity")
	}
	b.w += n
}

func (b *Buffer) Remaining() []byte {
	return b.buf[b.r:b.w]
}

func (b *Buffer) Consume(n int) {
	if n < 0 || n > b.w-b.r {
		panic("pollio: Buffer.Consume past fill")
	}
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int { return b.w - b.r }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Reset discards all content.
func (b *Buffer) Reset() {
	b.r, b.w = 0, 0
}
