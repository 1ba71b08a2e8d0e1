// Defines the Value carried by signals and the Edge qualifiers used in
// sensitivity lists (posedge/negedge/any-change).

package sim

import "fmt"

// Value is the payload of a Signal. Single-bit signals use Low/High;
// multi-bit buses use the full int64 range. Edge detection treats zero
// as the low level and any non-zero value as high.
type Value int64

const (
	Low  Value = 0
	High Value = 1
)

// Edge qualifies which transitions of a signal wake a waiting process.
type Edge int

const (
	// AnyChange matches every committed transition to a different value.
	AnyChange Edge = iota
	// Rising matches transitions from zero to non-zero.
	Rising
	// Falling matches transitions from non-zero to zero.
	Falling
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	case AnyChange:
		return "any-change"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Matches reports whether a committed old→new transition satisfies the edge.
// A commit that leaves the value unchanged matches nothing.
func (e Edge) Matches(old, new Value) bool {
	if old == new {
		return false
	}
	switch e {
	case Rising:
		return old == 0 && new != 0
	case Falling:
		return old != 0 && new == 0
	default:
		return true
	}
}
