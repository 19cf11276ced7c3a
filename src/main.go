package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"torlife/src/universe"
	"torlife/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	frames      bool
	template    string
}

func main() {
	eo, uo := initOptions()

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := universe.New(uo, stateCh)
	if err != nil {
		log.Fatalf("can't create the universe: %v", err)
	}

	if eo.interactive {
		v, err := view.NewViewTerminal()
		if err != nil {
			log.Fatalf("can't start the terminal view: %v", err)
		}
		u.RegisterViewer(v)
		settle(u, eo)
		v.Start()
		u.Close()
		return
	}

	v := view.NewConsoleOut(os.Stdout, eo.frames, true)
	u.RegisterViewer(v)
	settle(u, eo)
	if eo.randomData {
		//random data is settled by the control loop
		waitFor(stateCh, universe.RunningStateManual)
	}

	v.Start()
	startTime := time.Now()
	u.Run()
	st := waitFor(stateCh, universe.RunningStateFinished)
	fmt.Printf("Finished, iteration is: %v, total running time: %v\n", st.IterationNum, time.Since(startTime).Round(time.Millisecond))
	u.Close()
}

func settle(u universe.Universe, eo *EnvOptions) {
	if eo.randomData {
		u.SettleWithRandomData()
		return
	}
	if err := u.SettleTemplate(eo.template); err != nil {
		log.Fatal(err)
	}
}

func waitFor(stateCh chan universe.Status, mode universe.RunningState) universe.Status {
	for {
		st := <-stateCh
		if st.RunningMode == mode {
			return st
		}
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	uo = &o
	templateNames := make([]string, 0, len(universe.DefaultTemplates))
	for _, t := range universe.DefaultTemplates {
		templateNames = append(templateNames, t.Name)
	}
	eo = &EnvOptions{template: "sample"}
	flaggy.SetName("torlife")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 - unlimited")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random data")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Bool(&eo.frames, "f", "frames", "Print every generation")
	flaggy.String(&eo.template, "t", "template", "Template to settle ["+strings.Join(templateNames, "|")+"]")

	flaggy.Parse()

	known := false
	for _, n := range templateNames {
		known = known || n == eo.template
	}
	if !known {
		flaggy.ShowHelpAndExit("unknown template")
	}
	if uo.Width < 3 || uo.Height < 3 {
		flaggy.ShowHelpAndExit("the field must be at least 3 x 3")
	}

	return
}
