package selection

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode is the state of a rectangle drag. Off means no drag is in progress;
// Select and Deselect only differ in overlay colour and in how callers apply
// the result.
type Mode int

const (
	Off Mode = iota
	Select
	Deselect
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case Select:
		return "select"
	case Deselect:
		return "deselect"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ContainsPolicy decides whether Rectangle.Contains ends the drag
type ContainsPolicy int

const (
	// ConsumeOnContains ends the drag on the first Contains call. The
	// rectangle is evaluated exactly once, at release.
	ConsumeOnContains ContainsPolicy = iota
	// QueryOnly leaves the drag running so Contains can be polled every
	// frame for live highlighting. The caller ends the drag with StopDragging.
	QueryOnly
)

func (p ContainsPolicy) String() string {
	if p == QueryOnly {
		return "query"
	}
	return "consume"
}

// ParseContainsPolicy accepts the names produced by String
func ParseContainsPolicy(s string) (ContainsPolicy, error) {
	switch s {
	case "consume", "":
		return ConsumeOnContains, nil
	case "query":
		return QueryOnly, nil
	}
	return ConsumeOnContains, errors.Errorf("unknown contains policy %q (expected consume or query)", s)
}
