package types

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// InvalidCodes is the set of field names that failed validation on one
// record. It is a value type: With and Without return new sets.
type InvalidCodes struct {
	set mapset.Set[string]
}

// NewInvalidCodes builds a set from codes.
func NewInvalidCodes(codes ...string) InvalidCodes {
	return InvalidCodes{set: mapset.NewThreadUnsafeSet(codes...)}
}

// Has reports membership.
func (c InvalidCodes) Has(code string) bool {
	return c.set != nil && c.set.Contains(code)
}

// Len returns the number of codes.
func (c InvalidCodes) Len() int {
	if c.set == nil {
		return 0
	}
	return c.set.Cardinality()
}

// Empty reports a clean record.
func (c InvalidCodes) Empty() bool { return c.Len() == 0 }

// With returns a copy that contains code.
func (c InvalidCodes) With(code string) InvalidCodes {
	if c.Has(code) {
		return c
	}
	out := c.copy()
	out.set.Add(code)
	return out
}

// Without returns a copy that does not contain code.
func (c InvalidCodes) Without(code string) InvalidCodes {
	if !c.Has(code) {
		return c
	}
	out := c.copy()
	out.set.Remove(code)
	return out
}

// Sorted returns the codes in ascending order, nil when empty.
func (c InvalidCodes) Sorted() []string {
	if c.Empty() {
		return nil
	}
	out := c.set.ToSlice()
	sort.Strings(out)
	return out
}

func (c InvalidCodes) copy() InvalidCodes {
	if c.set == nil {
		return NewInvalidCodes()
	}
	return InvalidCodes{set: c.set.Clone()}
}
