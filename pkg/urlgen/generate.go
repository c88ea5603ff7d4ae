package urlgen

import (
	"fmt"
	"net/url"
	"strings"
)

// GeneratePath renders def with values from params.
//
// Literal segments are copied unchanged. Each parameter takes the named
// value with the same name, or else the next unused positional value.
// A missing optional parameter drops the rest of the template together
// with the trailing slash; a missing required parameter is an error.
// Empty values count as missing.
//
// Values are escaped per path segment, so "/" inside a value becomes %2F.
// Catch-all parameters keep their "/" separators.
//
// Entries not used for substitution are returned in their original order.
func GeneratePath(def Definition, params Params) (string, Params, error) {
	return generatePath("", def, params)
}

func generatePath(route string, def Definition, params Params) (string, Params, error) {
	c := newConsumer(params)

	var (
		b         strings.Builder
		truncated bool
	)

	for _, seg := range def.segments {
		if seg.Kind == LiteralSegment {
			b.WriteString(seg.Text)
			continue
		}

		var s string
		if v, ok := c.take(seg.Name); ok {
			str, err := Stringify(v)
			if err != nil {
				return "", Params{}, fmt.Errorf("parameter %q: %w", seg.Name, err)
			}
			s = str
		}

		if s == "" {
			if seg.Optional {
				truncated = true
				break
			}
			return "", Params{}, &MissingParameterError{Route: route, Name: seg.Name}
		}

		if seg.CatchAll {
			b.WriteString(escapeCatchAll(s))
		} else {
			b.WriteString(url.PathEscape(s))
		}
	}

	path := b.String()
	if truncated {
		path = trimPath(path)
	}
	return path, c.remaining(), nil
}

// escapeCatchAll escapes each "/"-separated piece of a wildcard value.
func escapeCatchAll(s string) string {
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
