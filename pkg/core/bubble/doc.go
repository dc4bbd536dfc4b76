// Package bubble computes category-clustered, non-overlapping bubble layouts.
//
// # Overview
//
// Each input [Item] becomes a circle whose area grows with its weight. Items
// are grouped by category; every category gets an [Anchor] on a ring around
// the canvas center and its items are pulled toward it. A small physics
// simulation resolves overlaps and keeps circles inside the canvas:
//
//  1. Category attraction: velocity nudged toward the category anchor
//  2. Collision: pairwise relaxation pushes overlapping circles apart
//  3. Largest-of-category centering: the heaviest item of each category is
//     steered directly to its anchor, replacing its other forces
//  4. Boundary containment: soft inward push for circles whose next
//     position would cross an edge
//
// The simulation energy ("alpha") decays geometrically every tick. The run
// settles when alpha drops below [Params.AlphaMin] or after
// [Params.MaxTicks] ticks, whichever comes first. The settled event then
// carries a resting layout: overlaps are relaxed once more and every circle
// is moved fully inside the canvas.
//
// # Usage
//
// The engine is pull-based. [Engine.Run] returns a [Simulation]; the caller
// advances it one tick at a time, typically once per animation frame:
//
//	eng := bubble.NewEngine(bubble.WithSeed(42))
//	if err := eng.Configure(700, 500, bubble.RadiusRange{Min: 5, Max: 50}); err != nil {
//	    return err
//	}
//	sim, err := eng.Run(items)
//	if err != nil {
//	    return err // *errors.ValidationError naming the bad item
//	}
//	for ev := range sim.Events() {
//	    draw(ev.Bubbles)
//	    if ev.Kind == bubble.EventSettled {
//	        showLabels()
//	    }
//	}
//
// Callers that only need the final positions can use [Simulation.Settle].
//
// # Determinism
//
// Starting positions come from a PCG generator seeded by [WithSeed]. Two runs
// with the same items, configuration and seed produce identical layouts.
//
// # Concurrency
//
// An Engine and its simulations are not safe for concurrent use. Each tick is
// computed synchronously inside [Simulation.Next]. Calling [Engine.Run] again
// supersedes the previous simulation: its Next returns false and its Err
// reports [ErrSuperseded].
package bubble
