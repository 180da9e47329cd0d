package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarises one rollout decision.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	SampleCap    int
	Cutoff       int
	Candidates   int // Candidates actually scored after sampling
	Rollouts     int // Trials counted per candidate
	Episodes     int // Playouts run, including any discarded by the time budget
	FullPlayouts int // Playouts that reached a completed line
}

type MoveMetric struct {
	Step     int
	Player   int // Player ID
	Attempts int // Requests needed to obtain a legal move
	Duration time.Duration
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, -1 when the game did not finish
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	RejectedMoves  int
}

type Collector interface {
	Start(goroutines, sampleCap, cutoff int)
	AddEpisode()
	AddFullPlayout()
	Complete(candidates, rollouts int) SearchMetric
}

type collector struct {
	goroutines   int
	sampleCap    int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, sampleCap, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.sampleCap = sampleCap
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete(candidates, rollouts int) SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		SampleCap:    m.sampleCap,
		Cutoff:       m.cutoff,
		Candidates:   candidates,
		Rollouts:     rollouts,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, sampleCap, cutoff int)         {}
func (m *dummyCollector) AddEpisode()                                     {}
func (m *dummyCollector) AddFullPlayout()                                 {}
func (m *dummyCollector) Complete(candidates, rollouts int) SearchMetric { return SearchMetric{} }
