package core

import "fmt"

// Policy governs how a field's value combines across one inheritance step.
type Policy int

const (
	// InheritOrOverride follows the normal inheritance procedure: an
	// explicitly supplied child value wins, otherwise the parent's value is
	// carried down. This is the zero value, so fields without a policy get
	// it implicitly.
	InheritOrOverride Policy = iota

	// DoNotInherit resets the field to its default across an inheritance
	// boundary instead of carrying the parent's value. Fields with this
	// policy must declare a default.
	DoNotInherit

	// Accumulate concatenates list, set or map values through inheritance.
	// Fields with this policy must be of a collection kind.
	Accumulate
)

func (p Policy) String() string {
	switch p {
	case InheritOrOverride:
		return "inherit_or_override"
	case DoNotInherit:
		return "do_not_inherit"
	case Accumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a manifest policy name to a Policy.
// An empty name means InheritOrOverride.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "inherit_or_override":
		return InheritOrOverride, nil
	case "do_not_inherit":
		return DoNotInherit, nil
	case "accumulate":
		return Accumulate, nil
	default:
		return 0, fmt.Errorf("unknown merge policy: %q", name)
	}
}
