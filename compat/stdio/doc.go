// Package stdio bridges pollio streams and the standard io interfaces.
//
// Source and Sink present blocking io.Reader and io.Writer values as pollio
// streams. Reader and Writer go the other way, parking the calling goroutine
// until the wrapped stream wakes it.
package stdio
