package printer

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

var _ Printer = (*Stdout)(nil)

// Stdout implements [Printer] for standard output or any other writer.
// The zero value writes to os.Stdout.
type Stdout struct {
	w *bufio.Writer
}

// NewStdout creates a printer for standard output.
func NewStdout() *Stdout {
	return NewWriter(os.Stdout)
}

// NewWriter creates a printer for w.
func NewWriter(w io.Writer) *Stdout {
	return &Stdout{w: bufio.NewWriter(w)}
}

// PrintLine implements [Printer].
func (s *Stdout) PrintLine(line string) error {
	if s.w == nil {
		s.w = bufio.NewWriter(os.Stdout)
	}

	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("could not write line: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("could not write line: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
