package diff

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const noNewline = "\\ No newline at end of file\n"

// Builtin renders the normal diff format in-process.
type Builtin struct{}

func (Builtin) Diff(ctx context.Context, path1, path2 string, w io.Writer) error {
	a, err := os.ReadFile(path1)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path2)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteNormal(w, splitLines(string(a)), splitLines(string(b)))
}

// WriteNormal writes the hunks turning a into b. Lines keep their
// terminators; a line without one gets a no-newline marker.
func WriteNormal(w io.Writer, a, b []string) error {
	bw := bufio.NewWriter(w)
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			fmt.Fprintf(bw, "%sc%s\n", span(op.I1, op.I2), span(op.J1, op.J2))
			quote(bw, "< ", a[op.I1:op.I2])
			bw.WriteString("---\n")
			quote(bw, "> ", b[op.J1:op.J2])
		case 'd':
			fmt.Fprintf(bw, "%sd%d\n", span(op.I1, op.I2), op.J1)
			quote(bw, "< ", a[op.I1:op.I2])
		case 'i':
			fmt.Fprintf(bw, "%da%s\n", op.I1, span(op.J1, op.J2))
			quote(bw, "> ", b[op.J1:op.J2])
		}
	}
	return bw.Flush()
}

// span formats the 0-based half-open range [lo, hi) as 1-based line numbers.
func span(lo, hi int) string {
	if hi-lo == 1 {
		return fmt.Sprint(hi)
	}
	return fmt.Sprintf("%d,%d", lo+1, hi)
}

func quote(w *bufio.Writer, marker string, lines []string) {
	for _, line := range lines {
		w.WriteString(marker)
		w.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			w.WriteString("\n")
			w.WriteString(noNewline)
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
