package sink

import "github.com/matzehuels/bigbang/pkg/layout"

// RenderJSON exports the layout as pretty-printed JSON. The output can be
// read back with [layout.Unmarshal] and rendered again identically.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return layout.Marshal(l)
}
