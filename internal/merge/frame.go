package merge

import (
	"errors"
	"fmt"
	"io"
)

// noNewlineMarker starts the "\ No newline at end of file" lines diff inserts
// after a quoted line that lacked a terminator. They are not part of the count.
const noNewlineMarker = '\\'

// separator divides the two quoted blocks of a change hunk, and the two
// disputed blocks of a manual-edit scratch file.
const separator = "---\n"

// BodyLines is the number of diff-output lines after the header that belong to h.
func (h Hunk) BodyLines() int {
	n := (h.To1 - h.From1) + (h.To2 - h.From2) + 1
	if h.Cmd == Change {
		n += 2
	}
	return n
}

// Start1 is the first line of h's span in the first source. An add hunk names
// the line its content follows, so its span begins one line later.
func (h Hunk) Start1() int {
	if h.Cmd == Add {
		return h.From1 + 1
	}
	return h.From1
}

// Start2 is the first line of h's span in the second source. A delete hunk
// names the line the removed content followed.
func (h Hunk) Start2() int {
	if h.Cmd == Delete {
		return h.From2 + 1
	}
	return h.From2
}

// Frame reads the body of h from the diff stream, leaving the stream at the
// next header.
func Frame(diff *LineReader, h Hunk) ([]string, error) {
	want := h.BodyLines()
	body := make([]string, 0, want)
	for n := 0; n < want; {
		line, err := diff.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return body, fmt.Errorf("%w: body of %s ends after %d of %d lines", ErrMalformedHunk, h, n, want)
			}
			return body, err
		}
		body = append(body, line)
		if line[0] != noNewlineMarker {
			n++
		}
	}
	for diff.nextStartsWith(noNewlineMarker) {
		line, err := diff.ReadLine()
		if err != nil {
			return body, err
		}
		body = append(body, line)
	}
	return body, nil
}
