// Package errors provides the structured error type shared by every pollio
// operation.
//
// Errors are tagged with the Op that failed, a Kind, and for composed
// operations the Side (first/second stream of a chain, source/sink of a copy)
// that produced them. Stream errors are never interpreted: they travel as the
// Cause of a KindTransport error and stay reachable through errors.Unwrap.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpCopy, errors.KindTransport).
//		Side(errors.SideSink).
//		Progress(written).
//		Cause(err).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEOF(errors.OpReadExact, 3, 5)
//	err := errors.WriteZero(errors.OpWriteAll, 2, 3)
//
// Sentinels such as ErrUnexpectedEOF leave Op empty, so errors.Is matches the
// kind regardless of the operation.
package errors
