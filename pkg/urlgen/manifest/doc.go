// Package manifest loads named routes from a YAML document.
//
// A manifest lists routes by name, either as a route template or as an
// explicit list of segments, and may pin the root URL used for absolute
// URLs:
//
//	root: https://example.com
//	asset_root: https://cdn.example.com
//	routes:
//	  home: /
//	  users.show: /users/{id:[0-9]+}
//	  posts.index: /posts/{page?}
//	  bar: ["/foo/", [bar?, "[^/]+"]]
//	  files:
//	    - {type: literal, value: /files/}
//	    - {type: parameter, value: path, catch_all: true}
//
// Table builds a frozen urlgen.Table and Options returns the matching
// generator options:
//
//	m, err := manifest.LoadFile("routes.yaml")
//	if err != nil {
//	    return err
//	}
//	table, err := m.Table()
//	if err != nil {
//	    return err
//	}
//	gen := urlgen.New(table, m.Options()...)
//
// All validation errors wrap ErrInvalidManifest and name the offending route.
package manifest
