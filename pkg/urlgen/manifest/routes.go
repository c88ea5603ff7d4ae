package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// record is the explicit form of a route segment.
type record struct {
	Type     string `yaml:"type"`
	Value    string `yaml:"value"`
	Pattern  string `yaml:"pattern"`
	Optional bool   `yaml:"optional"`
	CatchAll bool   `yaml:"catch_all"`
}

const (
	typeLiteral   = "literal"
	typeParameter = "parameter"
)

func decodeRoutes(node *yaml.Node) ([]Entry, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: routes must be a mapping", ErrInvalidManifest, node.Line)
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: empty route name", ErrInvalidManifest, node.Content[i].Line)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: route %q: %w", ErrInvalidManifest, name, urlgen.ErrDuplicateRoute)
		}
		seen[name] = struct{}{}
		def, err := decodeDefinition(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: route %q: %w", ErrInvalidManifest, name, err)
		}
		entries = append(entries, Entry{Name: name, Definition: def})
	}
	return entries, nil
}

// decodeDefinition accepts a template string or a list of segments.
// A segment is a literal string, a [name, pattern] pair or a record.
// A "?" suffix on a pair name marks the parameter optional.
//
//	users.show: /users/{id}
//	bar: ["/foo/", [bar?, "[^/]+"]]
//	files:
//	  - {type: literal, value: /files/}
//	  - {type: parameter, value: path, catch_all: true}
func decodeDefinition(node *yaml.Node) (urlgen.Definition, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return urlgen.ParsePattern(node.Value)
	case yaml.SequenceNode:
		segments := make([]urlgen.Segment, 0, len(node.Content))
		for _, item := range node.Content {
			seg, err := decodeSegment(item)
			if err != nil {
				return urlgen.Definition{}, err
			}
			segments = append(segments, seg)
		}
		return urlgen.NewDefinition(segments...)
	default:
		return urlgen.Definition{}, fmt.Errorf("line %d: expected a template or a list of segments", node.Line)
	}
}

func decodeSegment(node *yaml.Node) (urlgen.Segment, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return urlgen.Literal(node.Value), nil

	case yaml.SequenceNode:
		var pair []string
		if err := node.Decode(&pair); err != nil {
			return urlgen.Segment{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(pair) == 0 || len(pair) > 2 {
			return urlgen.Segment{}, fmt.Errorf("line %d: parameter must be [name] or [name, pattern]", node.Line)
		}
		pattern := ""
		if len(pair) == 2 {
			pattern = pair[1]
		}
		if name, ok := strings.CutSuffix(pair[0], "?"); ok {
			return urlgen.OptionalParameter(name, pattern), nil
		}
		return urlgen.Parameter(pair[0], pattern), nil

	case yaml.MappingNode:
		var rec record
		if err := node.Decode(&rec); err != nil {
			return urlgen.Segment{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return rec.segment(node.Line)
	}

	return urlgen.Segment{}, fmt.Errorf("line %d: unsupported segment", node.Line)
}

func (r record) segment(line int) (urlgen.Segment, error) {
	switch r.Type {
	case typeLiteral:
		return urlgen.Literal(r.Value), nil
	case typeParameter:
		if r.Value == "" {
			return urlgen.Segment{}, fmt.Errorf("line %d: parameter needs a value", line)
		}
		switch {
		case r.CatchAll:
			seg := urlgen.CatchAll(r.Value)
			seg.Pattern = r.Pattern
			return seg, nil
		case r.Optional:
			return urlgen.OptionalParameter(r.Value, r.Pattern), nil
		default:
			return urlgen.Parameter(r.Value, r.Pattern), nil
		}
	case "":
		return urlgen.Segment{}, fmt.Errorf("line %d: segment type is required", line)
	}
	return urlgen.Segment{}, fmt.Errorf("line %d: unknown segment type %q", line, r.Type)
}
