package a3c

import (
	"sync"

	"github.com/rs/zerolog"
)

// Result is the record a worker reports for one finished episode.
type Result struct {
	Reward  float64
	Success bool
	SPL     float64
}

// Slice returns the result as [reward, success, spl] with the success
// flag encoded as 0 or 1.
func (r Result) Slice() [3]float64 {
	s := 0.0
	if r.Success {
		s = 1.0
	}
	return [3]float64{r.Reward, s, r.SPL}
}

// ResultSink is a channel-backed queue workers push episode results
// into. Every push is logged. A sink must be closed by the producer
// side once; Drain collects everything pushed so far.
type ResultSink struct {
	ch     chan Result
	log    zerolog.Logger
	closed sync.Once
}

// NewResultSink creates a sink buffering up to capacity results.
func NewResultSink(capacity int, log zerolog.Logger) *ResultSink {
	if capacity <= 0 {
		capacity = 64
	}
	return &ResultSink{
		ch:  make(chan Result, capacity),
		log: log,
	}
}

// Push records an episode result. Blocks when the buffer is full until
// a consumer receives from Results.
func (s *ResultSink) Push(r Result) {
	s.log.Info().
		Float64("reward", r.Reward).
		Bool("success", r.Success).
		Float64("spl", r.SPL).
		Msg("episode finished")
	s.ch <- r
}

// Results returns the receive side of the sink for streaming consumers.
func (s *ResultSink) Results() <-chan Result {
	return s.ch
}

// Close marks the sink finished. Safe to call more than once.
func (s *ResultSink) Close() {
	s.closed.Do(func() { close(s.ch) })
}

// Drain closes the sink and collects all remaining results.
func (s *ResultSink) Drain() []Result {
	s.Close()
	var results []Result
	for r := range s.ch {
		results = append(results, r)
	}
	return results
}
