package merge

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is the edit letter between the two ranges of a hunk header.
type Command byte

const (
	Add    Command = 'a'
	Change Command = 'c'
	Delete Command = 'd'
)

func (c Command) String() string {
	switch c {
	case Add:
		return "add"
	case Change:
		return "change"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Command(%q)", byte(c))
	}
}

// Hunk is one difference record. Ranges are inclusive and 1-based.
type Hunk struct {
	From1, To1 int
	From2, To2 int
	Cmd        Command
}

// String formats h back into its header form, e.g. "2,3c2".
func (h Hunk) String() string {
	return formatRange(h.From1, h.To1) + string(h.Cmd) + formatRange(h.From2, h.To2)
}

func formatRange(from, to int) string {
	if from == to {
		return strconv.Itoa(from)
	}
	return strconv.Itoa(from) + "," + strconv.Itoa(to)
}

// maxLine bounds parsed line numbers so accumulation cannot overflow.
const maxLine = 1 << 31

// ParseHunk parses a header of the form <range><cmd><range>, where a range is N or N,M.
func ParseHunk(line string) (Hunk, error) {
	s := strings.TrimRight(line, "\r\n")

	var h Hunk
	var err error
	if h.From1, h.To1, s, err = parseRange(s); err != nil {
		return Hunk{}, err
	}

	if s == "" {
		return Hunk{}, fmt.Errorf("%w: missing command letter", ErrMalformedHunk)
	}
	h.Cmd = Command(s[0])
	switch h.Cmd {
	case Add, Change, Delete:
	default:
		return Hunk{}, fmt.Errorf("%w: unknown command %q", ErrMalformedHunk, s[0])
	}

	if h.From2, h.To2, s, err = parseRange(s[1:]); err != nil {
		return Hunk{}, err
	}
	if s != "" {
		return Hunk{}, fmt.Errorf("%w: unexpected %q after second range", ErrMalformedHunk, s)
	}
	return h, nil
}

func parseRange(s string) (from, to int, rest string, err error) {
	if from, rest, err = parseNumber(s); err != nil {
		return 0, 0, "", err
	}
	to = from
	if strings.HasPrefix(rest, ",") {
		if to, rest, err = parseNumber(rest[1:]); err != nil {
			return 0, 0, "", err
		}
		if to < from {
			return 0, 0, "", fmt.Errorf("%w: range %d,%d ends before it starts", ErrMalformedHunk, from, to)
		}
	}
	return from, to, rest, nil
}

func parseNumber(s string) (int, string, error) {
	n, i := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = 10*n + int(s[i]-'0')
		if n >= maxLine {
			return 0, "", fmt.Errorf("%w: line number too large", ErrMalformedHunk)
		}
	}
	if i == 0 {
		if s == "" {
			return 0, "", fmt.Errorf("%w: expected a line number at end of header", ErrMalformedHunk)
		}
		return 0, "", fmt.Errorf("%w: expected a line number at %q", ErrMalformedHunk, s)
	}
	return n, s[i:], nil
}
