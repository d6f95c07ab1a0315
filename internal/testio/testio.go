// Package testio provides scripted streams for exercising pollio operations.
package testio

import (
	"fmt"

	"github.com/wippyai/pollio"
)

// Step is one scripted response.
//
// For a Reader, Data is delivered (possibly across several polls if the
// caller's buffer is short) and an empty Data means end of stream. For a
// Writer, Accept caps the bytes taken by that call; 0 is a zero-length write.
// Pending and Err take precedence over both.
type Step struct {
	Err     error
	Data    []byte
	Accept  int
	Pending bool
	// NoWake leaves a pending poll without a wake-up, as if waiting on a
	// reactor that never fires.
	NoWake bool
}

// Chunk delivers s.
func Chunk(s string) Step { return Step{Data: []byte(s)} }

// EOF reports end of stream once.
func EOF() Step { return Step{} }

// Pend returns Pending once and wakes immediately.
func Pend() Step { return Step{Pending: true} }

// Stall returns Pending once without waking.
func Stall() Step { return Step{Pending: true, NoWake: true} }

// Fail completes the call with err.
func Fail(err error) Step { return Step{Err: err} }

// Accept lets a Writer take at most n bytes on one call.
func Accept(n int) Step { return Step{Accept: n} }

// Journal records the order of calls across several doubles.
type Journal struct {
	Entries []string
}

func (j *Journal) add(format string, args ...any) {
	if j != nil {
		j.Entries = append(j.Entries, fmt.Sprintf(format, args...))
	}
}

// Reader replays Steps. Once the script runs out it reports end of stream.
type Reader struct {
	Journal   *Journal
	Steps     []Step
	Requested []int
	// Zeroed records, per call, whether p held only zero bytes on entry.
	Zeroed []bool
	Calls  int
}

// NewReader creates a reader that plays steps in order.
func NewReader(steps ...Step) *Reader {
	return &Reader{Steps: steps}
}

func (r *Reader) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	r.Calls++
	r.Requested = append(r.Requested, len(p))
	r.Zeroed = append(r.Zeroed, allZero(p))

	if len(r.Steps) == 0 {
		r.Journal.add("read:0")
		return pollio.Ready(0)
	}

	s := &r.Steps[0]
	switch {
	case s.Pending:
		wake := !s.NoWake
		r.Steps = r.Steps[1:]
		r.Journal.add("read:pending")
		if wake {
			cx.Wake()
		}
		return pollio.Pending[int]()
	case s.Err != nil:
		err := s.Err
		r.Steps = r.Steps[1:]
		r.Journal.add("read:err")
		return pollio.Fail[int](err)
	}

	n := copy(p, s.Data)
	s.Data = s.Data[n:]
	if len(s.Data) == 0 {
		r.Steps = r.Steps[1:]
	}
	r.Journal.add("read:%d", n)
	return pollio.Ready(n)
}

// Repeat is an endless source of one byte value.
type Repeat struct {
	Requested []int
	B         byte
}

func (r *Repeat) PollRead(_ *pollio.Context, p []byte) pollio.Poll[int] {
	r.Requested = append(r.Requested, len(p))
	for i := range p {
		p[i] = r.B
	}
	return pollio.Ready(len(p))
}

// Writer records what it accepts. Without a script every call accepts up to
// Max bytes (all of p when Max is 0).
type Writer struct {
	Journal  *Journal
	FlushErr error
	CloseErr error
	Steps    []Step
	Data     []byte
	Max      int
	// FlushPending is the number of times PollFlush answers Pending before
	// it completes.
	FlushPending int
	Writes       int
	Flushes      int
	Closes       int
}

// NewWriter creates a writer that accepts at most limit bytes per call.
func NewWriter(limit int) *Writer {
	return &Writer{Max: limit}
}

func (w *Writer) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	w.Writes++

	n := len(p)
	if w.Max > 0 && n > w.Max {
		n = w.Max
	}
	if len(w.Steps) > 0 {
		s := w.Steps[0]
		w.Steps = w.Steps[1:]
		switch {
		case s.Pending:
			w.Journal.add("write:pending")
			if !s.NoWake {
				cx.Wake()
			}
			return pollio.Pending[int]()
		case s.Err != nil:
			w.Journal.add("write:err")
			return pollio.Fail[int](s.Err)
		}
		n = min(s.Accept, len(p))
	}

	w.Data = append(w.Data, p[:n]...)
	w.Journal.add("write:%d", n)
	return pollio.Ready(n)
}

func (w *Writer) PollFlush(cx *pollio.Context) pollio.Poll[struct{}] {
	w.Flushes++
	if w.FlushPending > 0 {
		w.FlushPending--
		w.Journal.add("flush:pending")
		cx.Wake()
		return pollio.Pending[struct{}]()
	}
	w.Journal.add("flush")
	if w.FlushErr != nil {
		return pollio.Fail[struct{}](w.FlushErr)
	}
	return pollio.Done()
}

func (w *Writer) PollClose(*pollio.Context) pollio.Poll[struct{}] {
	w.Closes++
	w.Journal.add("close")
	if w.CloseErr != nil {
		return pollio.Fail[struct{}](w.CloseErr)
	}
	return pollio.Done()
}

// Outcome summarizes a Drive.
type Outcome[T any] struct {
	Value T
	Err   error
	Polls int
	// Done is false when the future stalled or ran out of polls.
	Done bool
}

// Drive polls f until it is ready, giving up after limit polls. A Pending
// result without a wake-up is a stall and also ends the drive.
func Drive[T any](f pollio.Future[T], limit int) Outcome[T] {
	var out Outcome[T]
	woken := false
	cx := pollio.NewContext(pollio.WakerFunc(func() { woken = true }))
	for out.Polls < limit {
		out.Polls++
		woken = false
		r := f.Poll(cx)
		if r.IsReady() {
			out.Value, out.Err = r.Result()
			out.Done = true
			return out
		}
		if !woken {
			return out
		}
	}
	return out
}

func allZero(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}
