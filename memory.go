package pollio

// BytesReader is an always-ready Reader over a byte slice.
type BytesReader struct {
	data []byte
}

// NewBytesReader reads data from the start. The slice is not copied.
func NewBytesReader(data []byte) *BytesReader {
	return &BytesReader{data: data}
}

func (r *BytesReader) PollRead(_ *Context, p []byte) Poll[int] {
	n := copy(p, r.data)
	r.data = r.data[n:]
	return Ready(n)
}

// PrepareBuffer skips zeroing: every reported byte is copied in.
func (r *BytesReader) PrepareBuffer([]byte) bool {
	return false
}

// Len returns the number of unread bytes.
func (r *BytesReader) Len() int {
	return len(r.data)
}

// BytesWriter is an always-ready Writer that accumulates into memory.
type BytesWriter struct {
	data []byte
}

// NewBytesWriter creates an empty in-memory sink.
func NewBytesWriter() *BytesWriter {
	return &BytesWriter{}
}

func (w *BytesWriter) PollWrite(_ *Context, p []byte) Poll[int] {
	w.data = append(w.data, p...)
	return Ready(len(p))
}

func (w *BytesWriter) PollFlush(*Context) Poll[struct{}] { return Done() }
func (w *BytesWriter) PollClose(*Context) Poll[struct{}] { return Done() }

// Bytes returns everything written so far.
func (w *BytesWriter) Bytes() []byte {
	return w.data
}
