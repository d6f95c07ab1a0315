// Package pollio provides poll-based byte stream contracts and the pieces
// needed to compose them without blocking a thread.
//
// A stream makes progress only when polled. Each poll either completes with a
// result or returns Pending after arranging, through the Context it was handed,
// for its Waker to be called once progress is possible again. The driver that
// reacts to those wake-ups lives outside this module.
//
// # Architecture Overview
//
//	pollio/              Reader and Writer contracts, Poll, Context, buffers
//	├── errors/          Structured errors tagged by operation, kind and side
//	├── op/              Operations: Read, ReadExact, ReadToEnd, WriteAll, Copy...
//	├── stream/          Combinators: Chain, Take
//	├── compat/stdio/    Bridge to and from the standard io interfaces
//	├── compat/wasifile/ Bridge to and from wazero experimental/sys files
//	├── resource/        Handle table with exclusive borrows
//	└── wasi/streams/    wasi:io/streams host serving pollio streams by handle
//
// # Quick Start
//
// Read a whole stream into memory:
//
//	src := stream.NewChain(pollio.NewBytesReader(header), body)
//	var buf []byte
//	n, err := pollio.Block(ctx, op.NewReadToEnd(src, &buf))
//
// Copy a source into a sink:
//
//	total, err := pollio.Block(ctx, op.NewCopy(src, sink))
//
// # The Poll Contract
//
// A Reader writes n bytes into p[:n]. A ready result of 0 for a non-empty p
// means end of stream. Reporting more bytes than len(p) is a contract
// violation and panics.
//
// A Writer accepts at most len(p) bytes per PollWrite. PollFlush drains
// internal buffering and PollClose shuts the sink down; closing twice is not an
// error. All three share one error channel.
//
// # Uninitialized Capacity
//
// Operations that grow a buffer expose capacity that may still hold bytes
// from an earlier use. Before such memory reaches a Reader it is zeroed by
// Prepare, unless the Reader implements Preparer and declines because it
// always overwrites what it reports.
//
// # Thread Safety
//
// Operations and combinators are single-owner state machines. They may be
// driven from any goroutine, but one instance must not be polled
// concurrently.
package pollio
