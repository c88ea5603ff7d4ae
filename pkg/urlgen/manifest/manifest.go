package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Entry is a named route read from a manifest.
type Entry struct {
	Name       string
	Definition urlgen.Definition
}

// Manifest is a parsed route manifest. Routes keep document order.
type Manifest struct {
	Root      urlgen.Root
	AssetRoot urlgen.Root
	Routes    []Entry
}

type document struct {
	Root      string    `yaml:"root"`
	AssetRoot string    `yaml:"asset_root"`
	Routes    yaml.Node `yaml:"routes"`
}

// Load reads a manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}
	return Parse(data)
}

// LoadFile reads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %q: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads the manifest named name from fsys.
func LoadFS(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %q: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, err)
	}

	m := &Manifest{}

	if doc.Root != "" {
		root, err := urlgen.ParseRoot(doc.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: root: %w", ErrInvalidManifest, err)
		}
		m.Root = root
	}
	if doc.AssetRoot != "" {
		root, err := urlgen.ParseRoot(doc.AssetRoot)
		if err != nil {
			return nil, fmt.Errorf("%w: asset_root: %w", ErrInvalidManifest, err)
		}
		m.AssetRoot = root
	}

	routes, err := decodeRoutes(&doc.Routes)
	if err != nil {
		return nil, err
	}
	m.Routes = routes
	return m, nil
}

// Table builds a frozen route table from the manifest.
func (m *Manifest) Table() (*urlgen.Table, error) {
	table := urlgen.NewTable()
	if err := m.Register(table); err != nil {
		return nil, err
	}
	table.Freeze()
	return table, nil
}

// Register adds the manifest routes to an existing table.
func (m *Manifest) Register(table *urlgen.Table) error {
	for _, e := range m.Routes {
		if err := table.AddDefinition(e.Name, e.Definition); err != nil {
			return fmt.Errorf("%w: route %q: %w", ErrInvalidManifest, e.Name, err)
		}
	}
	return nil
}

// Options returns the generator options the manifest configures.
func (m *Manifest) Options() []urlgen.Option {
	var opts []urlgen.Option
	if !m.Root.IsZero() {
		opts = append(opts, urlgen.WithRoot(m.Root))
	}
	if !m.AssetRoot.IsZero() {
		opts = append(opts, urlgen.WithAssetRoot(m.AssetRoot))
	}
	return opts
}

// FromTable builds a manifest describing the routes of table.
func FromTable(table *urlgen.Table) *Manifest {
	m := &Manifest{}
	for _, r := range table.Routes() {
		m.Routes = append(m.Routes, Entry{Name: r.Name, Definition: r.Definition})
	}
	return m
}

// Encode writes the manifest as YAML. Routes are written in their
// compact template form.
func (m *Manifest) Encode(w io.Writer) error {
	routes := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.Routes {
		routes.Content = append(routes.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Definition.Pattern(), Style: yaml.DoubleQuotedStyle},
		)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	if !m.Root.IsZero() {
		doc.Content = append(doc.Content, scalar("root"), scalar(m.Root.String()))
	}
	if !m.AssetRoot.IsZero() {
		doc.Content = append(doc.Content, scalar("asset_root"), scalar(m.AssetRoot.String()))
	}
	doc.Content = append(doc.Content, scalar("routes"), routes)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return enc.Close()
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
