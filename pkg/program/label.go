package program

// Label identifies a jump target in the source. It is the literal
// bit sequence of the label as written ('0' for space, '1' for tab),
// kept verbatim so labels that differ only in leading zeroes or in
// length stay distinct.
type Label string

// String returns a printable representation of the label
func (l Label) String() string {
	if l == "" {
		return "<empty>"
	}

	return string(l)
}
