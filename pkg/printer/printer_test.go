package printer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestStdout_ImplementsPrinter(t *testing.T) {
	t.Parallel()

	// Verify Stdout implements Printer interface
	var _ Printer = (*Stdout)(nil)
	var _ Printer = NewStdout()
}

func TestStdout_PrintLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single line",
			lines: []string{"BTC €50000.00 (1.5%)"},
			want:  "BTC €50000.00 (1.5%)\n",
		},
		{
			name:  "multiple lines",
			lines: []string{"first", "second"},
			want:  "first\nsecond\n",
		},
		{
			name:  "empty line",
			lines: []string{""},
			want:  "\n",
		},
		{
			name:  "polybar markup passes through",
			lines: []string{"%{F#50fa7b}1.5%%{F-}"},
			want:  "%{F#50fa7b}1.5%%{F-}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewWriter(&buf)

			for _, line := range tt.lines {
				if err := p.PrintLine(line); err != nil {
					t.Fatalf("PrintLine() error = %v", err)
				}
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStdout_PrintLine_Flushes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWriter(&buf)

	if err := p.PrintLine("tick"); err != nil {
		t.Fatalf("PrintLine() error = %v", err)
	}

	// Each line must be visible before the next one is printed.
	if buf.String() != "tick\n" {
		t.Errorf("line not flushed, buffer = %q", buf.String())
	}
}

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestStdout_PrintLine_Error(t *testing.T) {
	t.Parallel()

	p := NewWriter(errWriter{})

	err := p.PrintLine("tick")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("error should wrap write error, got %v", err)
	}
}

func TestStdout_ZeroValue(t *testing.T) {
	// Not parallel: swaps os.Stdout.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	p := &Stdout{}
	printErr := p.PrintLine("zero value")

	_ = w.Close()
	os.Stdout = oldStdout

	if printErr != nil {
		t.Fatalf("PrintLine() error = %v", printErr)
	}

	out, _ := io.ReadAll(r)
	if !strings.Contains(string(out), "zero value\n") {
		t.Errorf("output = %q", out)
	}
}
