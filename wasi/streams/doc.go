// Package streams serves pollio streams to WebAssembly guests through the
// WASI preview2 I/O interfaces.
//
// Implements:
//   - wasi:io/streams@0.2.8 - input-stream and output-stream methods
//   - wasi:io/poll@0.2.8 - pollables and poll
//   - wasi:io/error@0.2.8 - last-operation-failed payloads
//
// Streams live in a resource.Table. Non-blocking methods poll the underlying
// stream once, using the stream's Pollable as the waker, so a guest that gets
// no data can subscribe and wait for the wake-up. Blocking methods repeat that
// until progress is made or the context ends. A handle is borrowed for the
// duration of a call; a second concurrent call on the same handle fails with
// last-operation-failed.
package streams
