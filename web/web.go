// Package web holds the embedded single-page form served at the root route.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
