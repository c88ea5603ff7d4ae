package urlgen

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// RouteKeyer is implemented by values that know their own URL identifier.
// Domain entities can be passed directly as route parameters:
//
//	func (u User) RouteKey() string { return u.Slug }
//
//	gen.Route("users.show", urlgen.Positional(user))
type RouteKeyer interface {
	RouteKey() string
}

// param is a single entry of a parameter bag.
type param struct {
	value      any
	key        string
	index      int // position among positional entries
	positional bool
}

// Params is an ordered bag of named and positional route parameters.
//
// Named entries fill the parameter with the same name. Positional entries
// fill, in order, parameters that have no named value. Entries left over
// after substitution become the query string, in their original order.
//
// Params values are immutable: With and Append return a new bag.
type Params struct {
	entries   []param
	positions int
}

// P builds a bag from alternating key/value pairs.
// It panics if the pairs are unbalanced or a key is not a string.
//
//	urlgen.P("id", 42, "tab", "settings")
func P(pairs ...any) Params {
	if len(pairs)%2 != 0 {
		panic("urlgen.P: odd number of arguments")
	}
	var p Params
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("urlgen.P: key at position %d is %T, not string", i, pairs[i]))
		}
		p = p.With(key, pairs[i+1])
	}
	return p
}

// Positional builds a bag of unkeyed values.
func Positional(values ...any) Params {
	return Params{}.Append(values...)
}

// FromMap builds a bag from a map. Keys are added in sorted order
// since map iteration order is unspecified.
func FromMap(m map[string]any) Params {
	var p Params
	for _, k := range slices.Sorted(maps.Keys(m)) {
		p = p.With(k, m[k])
	}
	return p
}

// With returns a copy of p with key set to value.
// An existing key keeps its position and gets the new value.
func (p Params) With(key string, value any) Params {
	entries := slices.Clone(p.entries)
	for i := range entries {
		if !entries[i].positional && entries[i].key == key {
			entries[i].value = value
			return Params{entries: entries, positions: p.positions}
		}
	}
	entries = append(entries, param{key: key, value: value})
	return Params{entries: entries, positions: p.positions}
}

// Append returns a copy of p with values added as positional entries.
func (p Params) Append(values ...any) Params {
	entries := slices.Clone(p.entries)
	positions := p.positions
	for _, v := range values {
		entries = append(entries, param{value: v, index: positions, positional: true})
		positions++
	}
	return Params{entries: entries, positions: positions}
}

// Merge returns a copy of p with all entries of other added.
// Named entries of other override those of p.
func (p Params) Merge(other Params) Params {
	out := p
	for _, e := range other.entries {
		if e.positional {
			out = out.Append(e.value)
			continue
		}
		out = out.With(e.key, e.value)
	}
	return out
}

// Get returns the value of a named entry.
func (p Params) Get(key string) (any, bool) {
	for _, e := range p.entries {
		if !e.positional && e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Keys returns the query keys of all entries in order.
// Positional entries are keyed by their position index.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		keys = append(keys, e.queryKey())
	}
	return keys
}

// Len returns the number of entries.
func (p Params) Len() int {
	return len(p.entries)
}

// IsEmpty reports whether the bag has no entries.
func (p Params) IsEmpty() bool {
	return len(p.entries) == 0
}

func (e param) queryKey() string {
	if e.positional {
		return strconv.Itoa(e.index)
	}
	return e.key
}

// consumer tracks which entries of a bag substitution has used.
type consumer struct {
	params  Params
	used    []bool
	nextPos int
}

func newConsumer(p Params) *consumer {
	return &consumer{params: p, used: make([]bool, len(p.entries))}
}

// take returns the value for a parameter: the named entry first, then the
// next unused positional entry.
func (c *consumer) take(name string) (any, bool) {
	for i, e := range c.params.entries {
		if !c.used[i] && !e.positional && e.key == name {
			c.used[i] = true
			return e.value, true
		}
	}
	for ; c.nextPos < len(c.params.entries); c.nextPos++ {
		if e := c.params.entries[c.nextPos]; e.positional && !c.used[c.nextPos] {
			c.used[c.nextPos] = true
			c.nextPos++
			return e.value, true
		}
	}
	return nil, false
}

// remaining returns the unused entries in their original order.
func (c *consumer) remaining() Params {
	var out Params
	for i, e := range c.params.entries {
		if !c.used[i] {
			out.entries = append(out.entries, e)
		}
	}
	out.positions = c.params.positions
	return out
}
