package universe

import (
	"time"

	"torlife/src/table"
)

//Universe is the simulation driver around a toroidal table
//all the commands are asynchronous, they are executed in order by the universe's control loop
type Universe interface {
	Status() Status
	Options() Options
	Snapshot() [][]bool
	Generation() *table.Table
	Render() string
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []string
	SettleTemplate(name string) error
	SettleWithRandomData()
	Settle(points []table.Point)
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the Universe's configurable options
type Options struct {
	Width    int
	Height   int
	Interval time.Duration
	MaxSteps int //0 - unlimited
	Seed     int64
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Reason        FinishReason //why the universe is finished, ReasonNone otherwise
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name   string        //template name
	Descr  string        //template descr
	Points []table.Point //live cells
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

//FinishReason tells which condition finished the universe
type FinishReason int

const (
	ReasonNone FinishReason = iota
	ReasonExtinct
	ReasonStable
	ReasonMaxSteps
)

func (r FinishReason) String() string {
	switch r {
	case ReasonExtinct:
		return "extinct"
	case ReasonStable:
		return "generation unchanged"
	case ReasonMaxSteps:
		return "max steps reached"
	}
	return ""
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultUniverseOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
	Seed:     1,
}

func points(xy ...[2]int) []table.Point {
	p := make([]table.Point, len(xy))
	for i, v := range xy {
		p[i] = table.NewPoint(v[0], v[1])
	}
	return p
}

//DefaultTemplates are registered on every new universe
var DefaultTemplates = []Template{
	{"sample", "the test sample with 3 stable patterns", points(
		[2]int{1, 1}, [2]int{1, 2},
		[2]int{2, 1}, [2]int{2, 2},
		[2]int{3, 3},
		[2]int{4, 2},
		[2]int{4, 3},
		[2]int{5, 3},
	)},
	{"block", "2x2 still life", points([2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}, [2]int{2, 2})},
	{"blinker", "period 2 oscillator", points([2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})},
	{"glider", "moves one cell diagonally every 4 steps", points(
		[2]int{1, 0}, [2]int{2, 1}, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2},
	)},
	{"column", "5 cells in the leftmost column", points(
		[2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4},
	)},
}
