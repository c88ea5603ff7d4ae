package urlgen

import (
	"slices"
	"strings"
)

// SegmentKind distinguishes literal text from parameter placeholders.
type SegmentKind uint8

const (
	// LiteralSegment is emitted verbatim.
	LiteralSegment SegmentKind = iota
	// ParameterSegment is replaced by a supplied value.
	ParameterSegment
)

// catchAllName is the parameter name chi uses for a bare "*" wildcard.
const catchAllName = "*"

// Segment is one element of a route definition.
type Segment struct {
	// Text is the literal text (LiteralSegment only).
	Text string
	// Name is the parameter name (ParameterSegment only).
	Name string
	// Pattern is the matching constraint used by the router.
	// It is never enforced at generation time.
	Pattern string
	Kind    SegmentKind
	// Optional parameters may be omitted; the rest of the template is dropped.
	Optional bool
	// CatchAll parameters keep "/" separators in the substituted value.
	CatchAll bool
}

// Literal returns a literal segment.
func Literal(text string) Segment {
	return Segment{Kind: LiteralSegment, Text: text}
}

// Parameter returns a required parameter segment.
func Parameter(name, pattern string) Segment {
	return Segment{Kind: ParameterSegment, Name: name, Pattern: pattern}
}

// OptionalParameter returns a parameter segment that may be omitted.
func OptionalParameter(name, pattern string) Segment {
	return Segment{Kind: ParameterSegment, Name: name, Pattern: pattern, Optional: true}
}

// CatchAll returns a trailing wildcard segment.
// An empty name is registered as chi's "*".
func CatchAll(name string) Segment {
	if name == "" {
		name = catchAllName
	}
	return Segment{Kind: ParameterSegment, Name: name, CatchAll: true}
}

// IsParameter reports whether the segment is a placeholder.
func (s Segment) IsParameter() bool {
	return s.Kind == ParameterSegment
}

// template renders the segment back into route template syntax.
func (s Segment) template() string {
	if s.Kind == LiteralSegment {
		return s.Text
	}
	if s.CatchAll {
		if s.Name == catchAllName {
			return "*"
		}
		return "{" + s.Name + "*}"
	}
	name := s.Name
	if s.Optional {
		name += "?"
	}
	if s.Pattern != "" {
		return "{" + name + ":" + s.Pattern + "}"
	}
	return "{" + name + "}"
}

// chi renders the segment in chi's routing syntax.
func (s Segment) chi() string {
	switch {
	case s.Kind == LiteralSegment:
		return s.Text
	case s.CatchAll:
		return "*"
	case s.Pattern != "":
		return "{" + s.Name + ":" + s.Pattern + "}"
	default:
		return "{" + s.Name + "}"
	}
}

// Definition is an immutable, ordered route template.
// The zero value is an empty definition that renders to "".
type Definition struct {
	pattern  string
	segments []Segment
}

// NewDefinition builds a definition from explicit segments.
// Adjacent literals are merged. The segments are validated with the same
// rules as ParsePattern.
func NewDefinition(segments ...Segment) (Definition, error) {
	merged := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Kind == LiteralSegment {
			if seg.Text == "" {
				continue
			}
			if n := len(merged); n > 0 && merged[n-1].Kind == LiteralSegment {
				merged[n-1].Text += seg.Text
				continue
			}
		}
		merged = append(merged, seg)
	}

	var b strings.Builder
	for _, seg := range merged {
		b.WriteString(seg.template())
	}
	return newDefinition(b.String(), merged)
}

// ParsePattern parses a chi-compatible route template.
//
// Supported placeholders:
//
//	{id}          required parameter
//	{id:[0-9]+}   required parameter with a routing constraint
//	{page?}       optional parameter
//	{path*}       named catch-all (must be last)
//	*             chi catch-all (must be last)
func ParsePattern(pattern string) (Definition, error) {
	var (
		segments []Segment
		lit      strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, Literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '{':
			end := closingBrace(pattern, i)
			if end < 0 {
				return Definition{}, &PatternError{Pattern: pattern, Reason: "unclosed '{'"}
			}
			seg, err := parsePlaceholder(pattern, pattern[i+1:end])
			if err != nil {
				return Definition{}, err
			}
			flush()
			segments = append(segments, seg)
			i = end + 1
		case '}':
			return Definition{}, &PatternError{Pattern: pattern, Reason: "unexpected '}'"}
		case '*':
			flush()
			segments = append(segments, CatchAll(""))
			i++
		default:
			lit.WriteByte(pattern[i])
			i++
		}
	}
	flush()

	return newDefinition(pattern, segments)
}

// MustParse is like ParsePattern but panics on error.
// Use it for templates known at compile time.
func MustParse(pattern string) Definition {
	d, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	return d
}

// closingBrace returns the index of the brace closing the one at start.
// Regexp constraints such as {id:[0-9]{3}} nest.
func closingBrace(s string, start int) int {
	depth := 0
	for j := start; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func parsePlaceholder(pattern, body string) (Segment, error) {
	name, constraint, _ := strings.Cut(body, ":")

	var seg Segment
	switch {
	case strings.HasSuffix(name, "?"):
		seg = OptionalParameter(strings.TrimSuffix(name, "?"), constraint)
	case strings.HasSuffix(name, "*"):
		if constraint != "" {
			return Segment{}, &PatternError{Pattern: pattern, Reason: "catch-all parameter cannot have a constraint"}
		}
		seg = CatchAll(strings.TrimSuffix(name, "*"))
	default:
		seg = Parameter(name, constraint)
	}

	if seg.Name == "" {
		return Segment{}, &PatternError{Pattern: pattern, Reason: "empty parameter name"}
	}
	return seg, nil
}

func newDefinition(pattern string, segments []Segment) (Definition, error) {
	seen := make(map[string]struct{}, len(segments))
	optional := false

	for i, seg := range segments {
		if seg.Kind != ParameterSegment {
			continue
		}
		if seg.Name == "" {
			return Definition{}, &PatternError{Pattern: pattern, Reason: "empty parameter name"}
		}
		if _, dup := seen[seg.Name]; dup {
			return Definition{}, &PatternError{Pattern: pattern, Reason: "duplicate parameter " + seg.Name}
		}
		seen[seg.Name] = struct{}{}

		if seg.CatchAll && seg.Pattern != "" {
			return Definition{}, &PatternError{Pattern: pattern, Reason: "catch-all parameter cannot have a constraint"}
		}
		if seg.CatchAll && i != len(segments)-1 {
			return Definition{}, &PatternError{Pattern: pattern, Reason: "catch-all must be the last segment"}
		}
		if seg.Optional {
			optional = true
		} else if optional && !seg.CatchAll {
			return Definition{}, &PatternError{Pattern: pattern, Reason: "required parameter " + seg.Name + " follows an optional one"}
		}
	}

	return Definition{pattern: pattern, segments: segments}, nil
}

// Pattern returns the template the definition was built from.
func (d Definition) Pattern() string {
	return d.pattern
}

// Segments returns a copy of the definition's segments.
func (d Definition) Segments() []Segment {
	return slices.Clone(d.segments)
}

// Parameters returns parameter names in template order.
func (d Definition) Parameters() []string {
	var names []string
	for _, seg := range d.segments {
		if seg.Kind == ParameterSegment {
			names = append(names, seg.Name)
		}
	}
	return names
}

// IsZero reports whether the definition has no segments.
func (d Definition) IsZero() bool {
	return len(d.segments) == 0
}

// ChiPatterns returns the chi route patterns that together match this
// definition. Each optional parameter adds a shorter pattern that ends
// right before it.
//
//	"/posts/{page?}" -> ["/posts", "/posts/{page}"]
func (d Definition) ChiPatterns() []string {
	var (
		patterns []string
		b        strings.Builder
	)

	for _, seg := range d.segments {
		if seg.Optional {
			patterns = appendUnique(patterns, trimPath(b.String()))
		}
		b.WriteString(seg.chi())
	}
	return appendUnique(patterns, b.String())
}

// trimPath drops trailing slashes but never returns an empty path.
func trimPath(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	return p
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}
