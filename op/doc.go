// Package op implements the operations built on the pollio contracts.
//
// Every operation borrows its stream for its lifetime and is a Future: it is
// driven by repeated Poll calls and discarded after its first ready result.
// Abandoning an operation mid-flight is the way to cancel it; bytes already
// moved stay where they landed.
//
// Single-shot operations (Read, ReadBuf, Write, WriteBuf, Flush, Close) make
// exactly one contract call per Poll and return stream errors unchanged.
//
// Accumulating operations (ReadExact, WriteAll, ReadToEnd, ReadToString,
// ReadInt, WriteInt) retry until their goal is met and wrap stream errors in
// an *errors.Error tagged with the operation.
//
// Copy relays a Reader into a Writer through a pooled buffer.
package op
