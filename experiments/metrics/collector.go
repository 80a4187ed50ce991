package metrics

import (
	"time"

	"golang.org/x/exp/slices"
)

type SolveMetric struct {
	StartTime time.Time
	Duration  time.Duration
	Sweeps    int
	Backups   int       // State-action evaluations across all sweeps
	Deltas    []float64 // Max value change per sweep, in order
}

// FinalDelta returns the delta of the last sweep, or zero before any sweep.
func (m SolveMetric) FinalDelta() float64 {
	if len(m.Deltas) == 0 {
		return 0
	}
	return m.Deltas[len(m.Deltas)-1]
}

type Collector interface {
	Start()
	AddSweep(delta float64)
	AddBackups(n int)
	Complete() SolveMetric
}

type collector struct {
	startTime time.Time
	backups   int
	deltas    []float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.backups = 0
	m.deltas = nil
}

func (m *collector) AddSweep(delta float64) {
	m.deltas = append(m.deltas, delta)
}

func (m *collector) AddBackups(n int) {
	m.backups += n
}

func (m *collector) Complete() SolveMetric {
	return SolveMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Sweeps:    len(m.deltas),
		Backups:   m.backups,
		Deltas:    slices.Clone(m.deltas),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddSweep(delta float64) {}
func (m *dummyCollector) AddBackups(n int)       {}
func (m *dummyCollector) Complete() SolveMetric  { return SolveMetric{} }
