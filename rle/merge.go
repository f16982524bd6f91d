package rle

import "fmt"

// Op is a pixel-wise boolean operator.
type Op uint8

const (
	And Op = iota
	Or
	Xor
)

func (op Op) Apply(x, y uint8) uint8 {
	switch op {
	case And:
		return x & y
	case Or:
		return x | y
	case Xor:
		return x ^ y
	}
	panic(fmt.Sprintf("rle: unknown operator %d", op))
}

func (op Op) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	}
	return fmt.Sprintf("Op(%d)", op)
}

// ParseOp maps an operator name to its Op.
func ParseOp(s string) (Op, error) {
	for _, op := range []Op{And, Or, Xor} {
		if op.String() == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// spans walks two rows of the same width one span at a time. A span is the
// longest stretch over which neither row changes value.
type spans struct {
	a, b   []int
	ia, ib int
	ra, rb int
	va, vb uint8
}

func newSpans(a, b Row) *spans {
	if len(a.runs) == 0 || len(b.runs) == 0 {
		panic("rle: empty row")
	}
	return &spans{
		a: a.runs, b: b.runs,
		ra: a.runs[0], rb: b.runs[0],
		va: a.first, vb: b.first,
	}
}

// next returns the current span and advances past it. ok is false once
// either row is exhausted.
func (s *spans) next() (n int, va, vb uint8, ok bool) {
	if s.ia == len(s.a) || s.ib == len(s.b) {
		return 0, 0, 0, false
	}
	n, va, vb = min(s.ra, s.rb), s.va, s.vb
	if n <= 0 {
		panic(fmt.Sprintf("rle: invalid run length %d", n))
	}

	s.ra -= n
	if s.ra == 0 {
		if s.ia++; s.ia < len(s.a) {
			s.ra = s.a[s.ia]
			s.va ^= 1
		}
	}
	s.rb -= n
	if s.rb == 0 {
		if s.ib++; s.ib < len(s.b) {
			s.rb = s.b[s.ib]
			s.vb ^= 1
		}
	}
	return n, va, vb, true
}

// done reports whether both rows were consumed together.
func (s *spans) done() bool {
	return s.ia == len(s.a) && s.ib == len(s.b)
}

// Merge combines two rows of the same width with op without decoding
// them. It also returns the number of spans consumed, which is bounded by
// RunCount(a)+RunCount(b)-1.
func Merge(a, b Row, op Op) (Row, int) {
	s := newSpans(a, b)
	out := Row{
		first: op.Apply(a.first, b.first),
		runs:  make([]int, 0, max(len(a.runs), len(b.runs))),
	}

	cur, steps := out.first, 0
	for {
		n, va, vb, ok := s.next()
		if !ok {
			break
		}
		steps++

		v := op.Apply(va, vb)
		if v == cur && len(out.runs) > 0 {
			out.runs[len(out.runs)-1] += n
		} else {
			out.runs = append(out.runs, n)
			cur = v
		}
	}
	if !s.done() {
		panic(fmt.Sprintf("rle: width mismatch %d != %d", a.Width(), b.Width()))
	}

	return out, steps
}

// Equal reports whether a and b encode the same pixels.
func Equal(a, b Row) bool {
	if a.Width() != b.Width() {
		return false
	}
	s := newSpans(a, b)
	for {
		_, va, vb, ok := s.next()
		if !ok {
			return true
		}
		if va != vb {
			return false
		}
	}
}
