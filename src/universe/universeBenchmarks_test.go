package universe

import (
	"testing"
)

const (
	width  = 200
	height = 200
)

func universeStep(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		_ = u.SettleTemplate("sample")
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		_ = u.SettleTemplate("glider")
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func newUniverse(b *testing.B, maxSteps int) Universe {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.MaxSteps = maxSteps
	u, err := New(&o, make(chan Status, 10))
	if err != nil {
		b.Fatal(err)
	}
	return u
}

func Benchmark_Step(b *testing.B) {
	universeStep(newUniverse(b, 0), b)
}

func Benchmark_Universe(b *testing.B) {
	universeRun(newUniverse(b, 100), b)
}
