package shader

import "fmt"

type locationState uint8

const (
	unresolved locationState = iota
	absent
	resolved
)

// Location is where a uniform or attribute lives inside a linked program.
// The zero value is Unresolved: the name has not been queried yet.
type Location struct {
	state locationState
	index int32
}

var (
	// Unresolved means the location has not been queried
	Unresolved = Location{state: unresolved}
	// Absent means the name was queried but the linked program does not use it
	Absent = Location{state: absent}
)

// At returns a resolved location
func At(index int32) Location {
	return Location{state: resolved, index: index}
}

// LocationFrom maps a raw GL location, where -1 means "not found".
func LocationFrom(raw int32) Location {
	if raw < 0 {
		return Absent
	}
	return At(raw)
}

// Resolved reports whether the name was queried, whether or not it was found.
func (l Location) Resolved() bool {
	return l.state != unresolved
}

// Index returns the location index if the name was found in the program.
func (l Location) Index() (int32, bool) {
	return l.index, l.state == resolved
}

func (l Location) String() string {
	switch l.state {
	case unresolved:
		return "unresolved"
	case absent:
		return "absent"
	default:
		return fmt.Sprintf("%d", l.index)
	}
}
