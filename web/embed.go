// Package web holds the embedded UI assets: page templates and static files.
package web

import "embed"

// AssetsFS contains the HTML page templates and the static assets they
// reference.
//
//go:embed templates static
var AssetsFS embed.FS
