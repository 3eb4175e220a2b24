package web

import _ "embed"

// IndexHTML is the static homepage served at /
//
//go:embed index.html
var IndexHTML []byte
