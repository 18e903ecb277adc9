package viewer

import _ "embed"

// indexPage is the single-page map viewer. It fetches /api/layer and renders
// the polygons with deck.gl in the browser.
//
//go:embed index.html
var indexPage []byte
