package bubble_test

import (
	"fmt"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
)

func ExampleEngine_Run() {
	e := bubble.NewEngine(bubble.WithSeed(1))
	if err := e.Configure(700, 500, bubble.RadiusRange{Min: 5, Max: 50}); err != nil {
		panic(err)
	}

	sim, err := e.Run([]bubble.Item{
		{Category: "Sheldon", Weight: 120, Label: "bazinga"},
		{Category: "Sheldon", Weight: 40, Label: "physics"},
		{Category: "Howard", Weight: 80, Label: "engineer"},
	})
	if err != nil {
		panic(err)
	}

	ticks := 0
	for ev := range sim.Events() {
		if ev.Kind == bubble.EventSettled {
			fmt.Println("ticks:", ticks)
			fmt.Println("labels:", ev.LabelsVisible)
			for _, b := range ev.Bubbles {
				fmt.Printf("%s %s largest=%v\n", b.ID, b.Label, b.Largest)
			}
			break
		}
		ticks++
	}
	// Output:
	// ticks: 458
	// labels: true
	// bubble-0 bazinga largest=true
	// bubble-1 physics largest=false
	// bubble-2 engineer largest=true
}

func ExampleSimulation_Settle() {
	sim, err := bubble.NewEngine().Run(nil)
	if err != nil {
		panic(err)
	}
	ev, err := sim.Settle()
	fmt.Println(ev.Kind, ev.Tick, len(ev.Bubbles), err)
	// Output:
	// settled 0 0 <nil>
}
