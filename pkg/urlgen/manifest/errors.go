package manifest

import "errors"

var ErrInvalidManifest = errors.New("manifest: invalid route manifest")
