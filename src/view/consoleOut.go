package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"

	"torlife/src/universe"
)

//ConsoleOut prints the simulation progress, and optionally every generation, to the writer
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	au        aurora.Aurora
	frames    bool
	startTime time.Time
	lastFrame int
	mu        sync.Mutex
}

func NewConsoleOut(out io.Writer, frames bool, colors bool) *ConsoleOut {
	return &ConsoleOut{out: out, frames: frames, au: aurora.NewAurora(colors), lastFrame: -1}
}

func (c *ConsoleOut) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.u.Status()
	if c.frames && st.RunningMode != universe.RunningStateStep && st.IterationNum != c.lastFrame {
		c.lastFrame = st.IterationNum
		fmt.Fprintf(c.out, "%s %v\n%s\n", c.au.Green("Generation"), st.IterationNum, c.u.Render())
	}
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
			"Reason":         st.Reason,
		}
		fmt.Fprintln(c.out, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun && !c.frames {
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.out, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Seed":           o.Seed,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, c.au.Cyan("\nSimulation started..."))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", c.au.Green(propName), d[propName])
	}
}
