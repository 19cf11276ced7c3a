package universe

import (
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"torlife/src/table"
)

func newTestUniverse(t *testing.T, o Options) (*TorusUniverse, chan Status) {
	t.Helper()
	stateCh := make(chan Status, 10)
	u, err := New(&o, stateCh)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(u.Close)
	return u, stateCh
}

func testOptions(w, h int) Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = w
	o.Height = h
	return o
}

//waitFor reads the state channel until the mode is received
func waitFor(t *testing.T, stateCh chan Status, mode RunningState) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == mode {
				return st
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %v", mode)
		}
	}
}

func TestNewTooSmall(t *testing.T) {
	o := testOptions(2, 10)
	u, err := New(&o, nil)
	if !errors.Is(err, table.ErrTooSmall) {
		t.Fatalf("err = %v", err)
	}
	if u != nil {
		t.Fatal("universe created")
	}
}

func TestNewDefaults(t *testing.T) {
	u, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()
	g := u.Snapshot()
	if len(g) != DefHeight || len(g[0]) != DefWidth {
		t.Fatalf("size %dx%d", len(g[0]), len(g))
	}
	if !reflect.DeepEqual(u.Templates(), []string{"blinker", "block", "column", "glider", "sample"}) {
		t.Fatalf("templates %v", u.Templates())
	}
}

func TestSettleTemplate(t *testing.T) {
	u, _ := newTestUniverse(t, testOptions(5, 5))
	if err := u.SettleTemplate("nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("err = %v", err)
	}
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	if u.Status().LiveCells != 3 {
		t.Fatalf("live cells %d", u.Status().LiveCells)
	}
	g := u.Snapshot()
	if !g[1][2] || !g[2][2] || !g[3][2] {
		t.Fatalf("snapshot %v", g)
	}
}

func TestSettleSkipsOutside(t *testing.T) {
	u, _ := newTestUniverse(t, testOptions(3, 3))
	u.Settle([]table.Point{{X: 1, Y: 1}, {X: 3, Y: 0}, {X: -1, Y: 2}})
	if u.Status().LiveCells != 1 {
		t.Fatalf("live cells %d", u.Status().LiveCells)
	}
}

func TestStep(t *testing.T) {
	u, stateCh := newTestUniverse(t, testOptions(5, 5))
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	u.Step()
	waitFor(t, stateCh, RunningStateStep)
	st := waitFor(t, stateCh, RunningStateManual)
	if st.IterationNum != 1 || st.LiveCells != 3 {
		t.Fatalf("status %+v", st)
	}
	g := u.Snapshot()
	if !g[2][1] || !g[2][2] || !g[2][3] || g[1][2] {
		t.Fatalf("snapshot after step:\n%s", u.Render())
	}
}

func TestStepStillLifeFinishes(t *testing.T) {
	u, stateCh := newTestUniverse(t, testOptions(6, 6))
	if err := u.SettleTemplate("block"); err != nil {
		t.Fatal(err)
	}
	u.Step()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.IterationNum != 1 || st.LiveCells != 4 || st.Reason != ReasonStable {
		t.Fatalf("status %+v", st)
	}
}

func TestRunMaxSteps(t *testing.T) {
	o := testOptions(5, 5)
	o.MaxSteps = 5
	u, stateCh := newTestUniverse(t, o)
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	u.Run()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.IterationNum != 5 || st.Reason != ReasonMaxSteps {
		t.Fatalf("finished at %d: %v", st.IterationNum, st.Reason)
	}
	if u.Status().RunningMode != RunningStateFinished {
		t.Fatalf("mode %v", u.Status().RunningMode)
	}
}

func TestRunExtinction(t *testing.T) {
	u, stateCh := newTestUniverse(t, testOptions(5, 5))
	u.Settle([]table.Point{{X: 2, Y: 2}})
	u.Run()
	st := waitFor(t, stateCh, RunningStateFinished)
	if st.IterationNum != 1 || st.LiveCells != 0 || st.Reason != ReasonExtinct {
		t.Fatalf("status %+v", st)
	}

	u.Clear()
	if st := waitFor(t, stateCh, RunningStateManual); st.Reason != ReasonNone {
		t.Fatalf("reason %v after clear", st.Reason)
	}
}

func TestGenerationIsACopy(t *testing.T) {
	u, _ := newTestUniverse(t, testOptions(4, 3))
	u.InverseCell(1, 2)
	g := u.Generation()
	if s, _ := g.Get(1, 2); s != table.Alive {
		t.Fatalf("generation:\n%s", g.Render())
	}
	_ = g.Set(1, 2, table.Dead)
	if !u.Snapshot()[2][1] {
		t.Fatal("generation shares the universe table")
	}
}

func TestRunStop(t *testing.T) {
	o := testOptions(8, 8)
	o.MaxSteps = 0
	o.Interval = time.Millisecond
	u, stateCh := newTestUniverse(t, o)
	if err := u.SettleTemplate("glider"); err != nil {
		t.Fatal(err)
	}
	u.Run()
	waitFor(t, stateCh, RunningStateRun)
	u.Stop()
	waitFor(t, stateCh, RunningStateManual)

	//at most one queued step can still finish after Stop
	time.Sleep(20 * time.Millisecond)
	n := u.Status().IterationNum
	time.Sleep(20 * time.Millisecond)
	if u.Status().IterationNum != n {
		t.Fatal("universe keeps running after Stop")
	}
}

func TestClear(t *testing.T) {
	u, stateCh := newTestUniverse(t, testOptions(5, 5))
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	u.Step()
	waitFor(t, stateCh, RunningStateManual)
	u.Clear()
	st := waitFor(t, stateCh, RunningStateManual)
	if st.IterationNum != 0 || st.LiveCells != 0 {
		t.Fatalf("status %+v", st)
	}
	for _, row := range u.Snapshot() {
		for _, c := range row {
			if c {
				t.Fatal("live cell after clear")
			}
		}
	}
}

func TestSettleWithRandomDataIsSeeded(t *testing.T) {
	o := testOptions(10, 10)
	o.Seed = 42
	u1, ch1 := newTestUniverse(t, o)
	u2, ch2 := newTestUniverse(t, o)
	u1.SettleWithRandomData()
	u2.SettleWithRandomData()
	st := waitFor(t, ch1, RunningStateManual)
	waitFor(t, ch2, RunningStateManual)
	if st.LiveCells == 0 {
		t.Fatal("no live cells")
	}
	if !reflect.DeepEqual(u1.Snapshot(), u2.Snapshot()) {
		t.Fatal("same seed, different data")
	}
}

func TestInverseCell(t *testing.T) {
	u, _ := newTestUniverse(t, testOptions(4, 3))
	u.InverseCell(3, 2)
	if !u.Snapshot()[2][3] || u.Status().LiveCells != 1 {
		t.Fatal("cell not inverted")
	}
	u.InverseCell(3, 2)
	u.InverseCell(4, 0)
	if u.Status().LiveCells != 0 {
		t.Fatalf("live cells %d", u.Status().LiveCells)
	}
}

type countingViewer struct {
	u         Universe
	refreshes int32
}

func (c *countingViewer) Refresh()            { atomic.AddInt32(&c.refreshes, 1) }
func (c *countingViewer) Register(u Universe) { c.u = u }
func (c *countingViewer) Start()              {}

func TestRegisterViewer(t *testing.T) {
	u, stateCh := newTestUniverse(t, testOptions(5, 5))
	v := &countingViewer{}
	u.RegisterViewer(v)
	if v.u != u {
		t.Fatal("viewer not registered")
	}
	if err := u.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	u.Step()
	waitFor(t, stateCh, RunningStateManual)
	//the view is refreshed right after the state is published
	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&v.refreshes) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("refreshes %d", atomic.LoadInt32(&v.refreshes))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCloseDropsCommands(t *testing.T) {
	o := testOptions(5, 5)
	u, err := New(&o, make(chan Status))
	if err != nil {
		t.Fatal(err)
	}
	u.Close()
	u.Close()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			u.Step()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("commands block after Close")
	}
}
