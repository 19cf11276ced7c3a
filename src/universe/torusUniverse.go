package universe

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"torlife/src/table"
)

var ErrUnknownTemplate = errors.New("universe: unknown template")

//TorusUniverse drives a toroidal table
//implements Universe interface
//every state change is done by the mainLoop goroutine, the table is guarded by the area mutex
type TorusUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*table.Table
		sync.Mutex
	}
	templates struct {
		m map[string]Template
		sync.Mutex
	}
	rnd       *rand.Rand
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//New creates the TorusUniverse instance and starts its control loop
//stateCh may be nil, otherwise it receives the Status on every running state change and must be drained
func New(o *Options, stateCh chan Status) (*TorusUniverse, error) {
	if o == nil {
		d := DefaultUniverseOptions
		o = &d
	}
	t, err := table.OfSize(o.Width, o.Height)
	if err != nil {
		return nil, fmt.Errorf("universe: %w", err)
	}

	u := TorusUniverse{
		options:   *o,
		rnd:       rand.New(rand.NewSource(o.Seed)),
		stateCh:   stateCh,
		controlCh: make(chan func(), 10),
		closeCh:   make(chan struct{}),
	}
	u.area.Table = t
	u.templates.m = map[string]Template{}
	for _, tmpl := range DefaultTemplates {
		u.AddTemplate(tmpl)
	}
	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *TorusUniverse) AddTemplate(tmpl Template) {
	u.templates.Lock()
	u.templates.m[tmpl.Name] = tmpl
	u.templates.Unlock()
}

//Templates returns the sorted names of the known templates
func (u *TorusUniverse) Templates() []string {
	u.templates.Lock()
	defer u.templates.Unlock()
	names := make([]string, 0, len(u.templates.m))
	for k := range u.templates.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Settle makes the cells at points alive, points outside the area are skipped
func (u *TorusUniverse) Settle(points []table.Point) {
	u.area.Lock()
	u.settle(points)
	live := u.area.Population()
	u.area.Unlock()
	u.setLiveCells(live)
	u.refreshView()
}

//SettleTemplate populates the universe with the seeding template
func (u *TorusUniverse) SettleTemplate(name string) error {
	u.templates.Lock()
	tmpl, ok := u.templates.m[name]
	u.templates.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	u.Settle(tmpl.Points)
	return nil
}

//SettleWithRandomData clears the universe and populates it with random data, returns immediately
//ignored while the simulation is running
func (u *TorusUniverse) SettleWithRandomData() {
	u.send(func() {
		if u.Status().RunningMode == RunningStateRun {
			return
		}
		u.area.Lock()
		u.area.Clear()
		w, h := u.area.Width(), u.area.Height()
		for i := 0; i < w*h; i++ {
			u.settle([]table.Point{table.NewPoint(u.rnd.Intn(w), u.rnd.Intn(h))})
		}
		live := u.area.Population()
		u.area.Unlock()
		u.resetCounters(live)
		u.switchRunningState(RunningStateManual)
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y
func (u *TorusUniverse) InverseCell(x int, y int) {
	u.area.Lock()
	_, err := u.area.Toggle(x, y)
	live := u.area.Population()
	u.area.Unlock()
	if err != nil {
		return
	}
	u.setLiveCells(live)
	u.refreshView()
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *TorusUniverse) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *TorusUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *TorusUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *TorusUniverse) Options() Options {
	return u.options
}

//Snapshot returns the copy of the current generation as rows of booleans
func (u *TorusUniverse) Snapshot() [][]bool {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.ToBooleanGrid()
}

//Generation returns the copy of the current generation
func (u *TorusUniverse) Generation() *table.Table {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.Clone()
}

//Render returns the current generation as the bordered text block
func (u *TorusUniverse) Render() string {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.Render()
}

//Run starts the universe simulation, returns immediately
func (u *TorusUniverse) Run() {
	u.send(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *TorusUniverse) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *TorusUniverse) Step() {
	u.send(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *TorusUniverse) Clear() {
	u.send(u.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (u *TorusUniverse) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//send queues the command for the main loop
func (u *TorusUniverse) send(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.closeCh:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *TorusUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//settle places live cells, the area must be locked
func (u *TorusUniverse) settle(points []table.Point) {
	for _, p := range points {
		_ = u.area.SetPoint(p, table.Alive)
	}
}

func (u *TorusUniverse) setLiveCells(n int) {
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

func (u *TorusUniverse) resetCounters(live int) {
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.IterationTime = 0
	u.state.LiveCells = live
	u.state.Reason = ReasonNone
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *TorusUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *TorusUniverse) run() {
	if u.Status().RunningMode == RunningStateRun {
		return
	}
	u.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan struct{}, 1)
		for {
			if u.Status().RunningMode != RunningStateRun {
				return
			}
			select {
			case u.controlCh <- func() {
				//Stop could be executed after the previous check
				if u.Status().RunningMode == RunningStateRun {
					u.step()
				}
				done <- struct{}{}
			}:
			case <-u.closeCh:
				return
			}
			select {
			case <-done:
			case <-u.closeCh:
				return
			}
			if u.options.Interval > 0 {
				select {
				case <-time.After(u.options.Interval):
				case <-u.closeCh:
					return
				}
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *TorusUniverse) stop() {
	if u.Status().RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//the universe is finished when all cells are dead, nothing changed or MaxSteps is reached
func (u *TorusUniverse) step() {
	rm := u.Status().RunningMode
	if rm != RunningStateRun {
		rm = RunningStateManual
	}
	u.switchRunningState(RunningStateStep)

	alive, changed, iter := u.nextIteration()
	reason := ReasonNone
	switch maxIter := u.options.MaxSteps; {
	case !alive:
		reason = ReasonExtinct
	case !changed:
		reason = ReasonStable
	case maxIter != 0 && iter >= maxIter:
		reason = ReasonMaxSteps
	}
	u.state.Lock()
	u.state.Reason = reason
	u.state.Unlock()
	if reason != ReasonNone {
		u.switchRunningState(RunningStateFinished)
	} else {
		u.switchRunningState(rm)
	}
	u.refreshView()
}

//clear clears the universe data, reset all counters
func (u *TorusUniverse) clear() {
	u.area.Lock()
	u.area.Clear()
	u.area.Unlock()
	u.resetCounters(0)
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//nextIteration ticks the table and updates the counters
func (u *TorusUniverse) nextIteration() (alive bool, changed bool, iter int) {
	u.area.Lock()
	start := time.Now()
	changed = u.area.Tick()
	alive = u.area.IsAliveAnywhere()
	live := u.area.Population()
	elapsed := time.Since(start)
	u.area.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = live
	u.state.IterationTime = elapsed
	iter = u.state.IterationNum
	u.state.Unlock()
	return
}

//refreshView calls Refresh event for all registered views
func (u *TorusUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
