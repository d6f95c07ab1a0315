// Package wasifile bridges pollio streams and wazero's experimental/sys File.
//
// Stream reads and writes a non-blocking sys.File as a pollio stream:
// EAGAIN and EINTR become Pending. File exposes pollio streams to a guest as
// a sys.File: Pending becomes EAGAIN and stream errors are converted to Errno.
package wasifile
