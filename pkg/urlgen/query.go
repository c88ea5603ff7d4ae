package urlgen

import (
	"fmt"
	"net/url"
	"strings"
)

// Encode renders the bag as a query string without the leading "?".
//
// Entries keep their order. Keys and values are query-escaped. Slice values
// repeat the key with a "[]" suffix: tags[]=a&tags[]=b. Positional entries
// use their position index as the key. Nil values and nil pointers, at the
// top level or inside a slice, are left out; use "" to send an empty value.
func (p Params) Encode() (string, error) {
	var b strings.Builder
	for _, e := range p.entries {
		if isNil(e.value) {
			continue
		}
		key := url.QueryEscape(e.queryKey())

		if list, ok := listValues(e.value); ok {
			for _, item := range list {
				if isNil(item) {
					continue
				}
				s, err := Stringify(item)
				if err != nil {
					return "", fmt.Errorf("query parameter %q: %w", e.queryKey(), err)
				}
				writePair(&b, key+"[]", s)
			}
			continue
		}

		s, err := Stringify(e.value)
		if err != nil {
			return "", fmt.Errorf("query parameter %q: %w", e.queryKey(), err)
		}
		writePair(&b, key, s)
	}
	return b.String(), nil
}

func writePair(b *strings.Builder, key, value string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

// AppendQuery appends the remaining parameters to path as a query string.
// The path is returned unchanged when nothing remains. An existing query
// is extended with "&" and a fragment stays at the end.
func AppendQuery(path string, remaining Params) (string, error) {
	if remaining.IsEmpty() {
		return path, nil
	}

	q, err := remaining.Encode()
	if err != nil {
		return "", err
	}
	if q == "" {
		return path, nil
	}

	base, fragment, hasFragment := strings.Cut(path, "#")

	switch {
	case !strings.Contains(base, "?"):
		base += "?" + q
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		base += q
	default:
		base += "&" + q
	}

	if hasFragment {
		return base + "#" + fragment, nil
	}
	return base, nil
}
