package merge

import "fmt"

// Choice is how the operator resolved a hunk.
type Choice int

const (
	UseFirst Choice = iota
	UseSecond
	Manual
)

func (c Choice) String() string {
	switch c {
	case UseFirst:
		return "use-first"
	case UseSecond:
		return "use-second"
	case Manual:
		return "manual"
	default:
		return fmt.Sprintf("Choice(%d)", int(c))
	}
}

// Strategy decides which source a side selection skips and which it copies.
type Strategy string

const (
	// Mirrored keeps the chosen file's lines: use-first copies the first
	// source, use-second copies the second.
	Mirrored Strategy = "mirrored"

	// Legacy keeps the asymmetric pairing: use-second skips the first source
	// and then copies from the first source again.
	Legacy Strategy = "legacy"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{Mirrored, Legacy}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q (want %s or %s)", name, Mirrored, Legacy)
}

// Sources are the two files being merged.
type Sources struct {
	First  *LineReader
	Second *LineReader
}

// selection is one skip-then-copy pairing.
type selection struct {
	skip      *LineReader
	skipLines int
	copy      *LineReader
	copyLines int
}

func (s Strategy) selection(c Choice, h Hunk, ledger *Ledger, src Sources) selection {
	consumed1, consumed2 := ledger.Consumed()
	if c == UseFirst {
		return selection{
			skip: src.Second, skipLines: h.To2 - consumed2,
			copy: src.First, copyLines: h.To1 - consumed1,
		}
	}
	sel := selection{
		skip: src.First, skipLines: h.To1 - consumed1,
		copy: src.Second, copyLines: h.To2 - consumed2,
	}
	if s == Legacy {
		sel.copy = src.First
	}
	return sel
}

func (sel selection) apply(out *Output) error {
	if _, err := sel.skip.Skip(sel.skipLines); err != nil {
		return fmt.Errorf("skipping %d lines: %w", sel.skipLines, err)
	}
	if _, err := sel.copy.Copy(out, sel.copyLines); err != nil {
		return fmt.Errorf("copying %d lines: %w", sel.copyLines, err)
	}
	return nil
}
