package merge

import "fmt"

// Ledger counts the lines of each source already committed to the merged output.
// Both counts start at zero and never decrease.
type Ledger struct {
	consumed1 int
	consumed2 int
}

// Consumed returns the committed line counts of the first and second source.
func (l *Ledger) Consumed() (int, int) {
	return l.consumed1, l.consumed2
}

// Check rejects a hunk that begins inside lines the ledger has already committed.
func (l *Ledger) Check(h Hunk) error {
	if h.Start1()-1 < l.consumed1 || h.Start2()-1 < l.consumed2 {
		return fmt.Errorf("%w: %s starts before lines %d/%d already merged",
			ErrHunkOutOfOrder, h, l.consumed1, l.consumed2)
	}
	return nil
}

// Advance records that both sources are committed up to to1 and to2.
func (l *Ledger) Advance(to1, to2 int) error {
	if to1 < l.consumed1 || to2 < l.consumed2 {
		return fmt.Errorf("%w: cannot move ledger from %d/%d back to %d/%d",
			ErrHunkOutOfOrder, l.consumed1, l.consumed2, to1, to2)
	}
	l.consumed1, l.consumed2 = to1, to2
	return nil
}
