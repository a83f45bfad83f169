package word2vec

import (
	"math"
	"sync/atomic"
)

const minAlphaRatio = 1e-4

// A Schedule decays the learning rate linearly over the
// whole run.
//
// Workers update and read it without locks.
// A reader may see a slightly stale rate, which the next
// update corrects.
type Schedule struct {
	start    float64
	biWeight float64
	iters    int
	alpha    atomic.Uint64
}

// NewSchedule creates a schedule for iters epochs that
// starts at the given rate.
func NewSchedule(start float64, iters int, biWeight float64) *Schedule {
	s := &Schedule{start: start, biWeight: biWeight, iters: iters}
	s.alpha.Store(math.Float64bits(start))
	return s
}

// Update recomputes the rate after actual of trainWords
// words have been processed in epoch iter.
//
// The rate never falls below 1e-4 times the initial rate.
func (s *Schedule) Update(iter int, trainWords, actual int64) float64 {
	done := float64(int64(iter)*trainWords + actual)
	total := float64(int64(s.iters)*trainWords + 1)
	alpha := s.start * (1 - done/total)
	if alpha < s.start*minAlphaRatio {
		alpha = s.start * minAlphaRatio
	}
	s.alpha.Store(math.Float64bits(alpha))
	learningRateGauge.Set(alpha)
	return alpha
}

// Alpha returns the current monolingual rate.
func (s *Schedule) Alpha() float64 {
	return math.Float64frombits(s.alpha.Load())
}

// BiAlpha returns the current cross-lingual rate.
func (s *Schedule) BiAlpha() float64 {
	return s.Alpha() * s.biWeight
}
