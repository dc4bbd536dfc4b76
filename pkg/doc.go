// Package pkg provides the core libraries for bigbang word-usage bubble charts.
//
// # Overview
//
// Bigbang turns per-character word counts from The Big Bang Theory scripts
// into clustered bubble charts: one cluster per character, bubble area
// proportional to how often the word is said, and each character's most used
// word pulled to the middle of its cluster. The pkg directory is organized
// into these areas:
//
//  1. [core/bubble] - The force-directed layout engine
//  2. [dataset] and [layout] - Input records and the settled output
//  3. [render] - SVG, PNG, PDF, JSON and DOT output
//  4. [pipeline] - Orchestration (load → layout → render)
//  5. [cache], [store], [config], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	word-usage CSV / JSON
//	         ↓
//	    [dataset] package (parse, filter by season/character/top-N)
//	         ↓
//	    [core/bubble] package (simulate until settled)
//	         ↓
//	    [layout] package (serializable positions)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
//	recs, _ := dataset.ImportCSV("main_cast_unique_words_seasons.csv")
//	recs = dataset.Filter{Season: 3, Categories: dataset.MainCast, Limit: 15}.Apply(recs)
//
//	e := bubble.NewEngine()
//	sim, _ := e.Run(dataset.ToItems(recs))
//	ev, _ := sim.Settle()
//
//	w, h := e.Canvas()
//	l := layout.FromEvent(ev, w, h, e.Seed())
//	svg := sink.RenderSVG(l, sink.WithLegend())
//
// # Main Packages
//
// [core/bubble] - The engine. Items are sized on a square-root scale, category
// anchors are spread on a ring around the canvas center, and each tick applies
// anchor attraction, collision, containment and the largest-bubble pull while
// alpha cools. A [Simulation] is a pull-based stream of tick events ending in
// exactly one settled event; starting a new run supersedes the previous one.
//
// [dataset] - CSV and JSON import, [Filter], and conversion to engine items.
//
// [layout] - The JSON form of a settled layout, with content-derived IDs.
//
// [render] - Formats, palettes and SVG conversion through rsvg-convert.
// [render/sink] writes the individual formats, including Graphviz DOT.
//
// [pipeline] - Load, layout and render with layout and artifact caching. Used
// by both the CLI and the HTTP server.
//
// [cache] - File, Redis and no-op caches with content-hash keys.
//
// [store] - Archive of settled layouts in memory or MongoDB.
//
// [config] - TOML configuration file.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/bubble/...        # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [core/bubble]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/core/bubble
// [Simulation]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/core/bubble#Simulation
// [dataset]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/dataset
// [Filter]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/dataset#Filter
// [layout]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/observability
package pkg
