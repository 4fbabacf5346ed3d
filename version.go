package autostream

import _ "embed"

// Version is the library version, sourced from the VERSION file at the
// repository root. Callers should trim surrounding whitespace.
//
//go:embed VERSION
var Version string
