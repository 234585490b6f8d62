// Package docs bundles long-form Markdown docs with the canopy binary.
package docs

import "embed"

// FS contains the bundled guides.
//
//go:embed guide
var FS embed.FS
