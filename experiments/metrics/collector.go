package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm string
	Seed      uint64
	Duration  time.Duration
	Rollouts  int
	Flips     int
	States    int
	Commits   int
	Score     float64
}

type RunMetric struct {
	File   string
	Solved bool
	SearchMetric
}

type Collector interface {
	Start(algorithm string, seed uint64)
	AddRollout(flips int)
	AddState()
	AddCommit()
	Complete(score float64) SearchMetric
}

type collector struct {
	algorithm string
	seed      uint64
	startTime time.Time
	rollouts  atomic.Int64
	flips     atomic.Int64
	states    atomic.Int64
	commits   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, seed uint64) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.seed = seed
}

func (m *collector) AddRollout(flips int) {
	m.rollouts.Add(1)
	m.flips.Add(int64(flips))
}

func (m *collector) AddState() {
	m.states.Add(1)
}

func (m *collector) AddCommit() {
	m.commits.Add(1)
}

func (m *collector) Complete(score float64) SearchMetric {
	return SearchMetric{
		Algorithm: m.algorithm,
		Seed:      m.seed,
		Duration:  time.Since(m.startTime),
		Rollouts:  int(m.rollouts.Load()),
		Flips:     int(m.flips.Load()),
		States:    int(m.states.Load()),
		Commits:   int(m.commits.Load()),
		Score:     score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, seed uint64) {}
func (m *dummyCollector) AddRollout(flips int)                {}
func (m *dummyCollector) AddState()                           {}
func (m *dummyCollector) AddCommit()                          {}
func (m *dummyCollector) Complete(score float64) SearchMetric { return SearchMetric{Score: score} }
