// Package stream provides structural combinators over pollio readers.
//
// Chain concatenates two readers. Take caps how many bytes a reader may
// yield. Both are themselves readers, so they nest:
//
//	r := stream.NewTake(stream.NewChain(header, body), 1<<20)
package stream
