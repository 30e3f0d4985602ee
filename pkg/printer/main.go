// Package printer writes rendered bar lines to an output stream.
package printer

// Printer provides an interface to write to an output stream.
type Printer interface {
	// PrintLine writes line followed by a newline and flushes, so a status
	// bar reading the stream sees it immediately.
	PrintLine(line string) error
}
