package merge

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader is a forward-only line cursor over a source file or diff stream.
type LineReader struct {
	r    *bufio.Reader
	line int
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Line reports how many lines have been read so far.
func (lr *LineReader) Line() int {
	return lr.line
}

// ReadLine returns the next line with its terminator, if any. A final line
// without a newline is returned as is; io.EOF follows it.
func (lr *LineReader) ReadLine() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			lr.line++
			return s, nil
		}
		return "", err
	}
	lr.line++
	return s, nil
}

// Skip discards up to n lines and returns how many were discarded.
// Running out of input is not an error.
func (lr *LineReader) Skip(n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := lr.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return i, nil
			}
			return i, err
		}
	}
	return max(n, 0), nil
}

// Copy writes up to n lines to out and returns how many were written.
func (lr *LineReader) Copy(out *Output, n int) (int, error) {
	for i := 0; i < n; i++ {
		line, err := lr.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return i, nil
			}
			return i, err
		}
		if err := out.WriteLine(line); err != nil {
			return i, err
		}
	}
	return max(n, 0), nil
}

// CopyAll writes every remaining line to out.
func (lr *LineReader) CopyAll(out *Output) (int, error) {
	n := 0
	for {
		line, err := lr.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		if err := out.WriteLine(line); err != nil {
			return n, err
		}
		n++
	}
}

// Collect reads up to n lines into memory.
func (lr *LineReader) Collect(n int) ([]string, error) {
	var lines []string
	for i := 0; i < n; i++ {
		line, err := lr.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// nextStartsWith reports whether the next unread line begins with c.
func (lr *LineReader) nextStartsWith(c byte) bool {
	b, err := lr.r.Peek(1)
	return err == nil && b[0] == c
}

// Output writes whole lines and counts them. A line that arrived without a
// newline is terminated before another line is written after it.
type Output struct {
	w       *bufio.Writer
	lines   int
	pending bool
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: bufio.NewWriter(w)}
}

func (o *Output) WriteLine(line string) error {
	if o.pending {
		if err := o.w.WriteByte('\n'); err != nil {
			return err
		}
		o.pending = false
	}
	if _, err := o.w.WriteString(line); err != nil {
		return err
	}
	o.lines++
	o.pending = !strings.HasSuffix(line, "\n")
	return nil
}

// Lines reports how many lines have been written.
func (o *Output) Lines() int {
	return o.lines
}

func (o *Output) Flush() error {
	return o.w.Flush()
}
