// Package engine contains the generative core: the self-exciting onset
// scheduler, the deterministic voice-pattern generators, and the live and
// offline scheduling shells that drive them.
package engine

import (
	"math"
	"math/rand/v2"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// Per-bar parameters of the deterministic boost applied ahead of each
// rhythm-cell onset. The boost decays sharply so notes cluster tight
// around the pulse.
const (
	rhythmBoostAmp   = 24.0
	rhythmBoostDecay = 64.0
)

// hawkes is the self-exciting point process sampled by Ogata thinning.
// All three parameters are per-bar; conversion to per-second happens
// against barSec so the musical character is invariant to tempo.
type hawkes struct {
	base       float64
	excitation float64
	decay      float64
	barSec     float64

	// history holds recent emission times, pruned beyond one bar.
	history []float64

	src rand.Source
	rng *rand.Rand
}

func newHawkes(base, excitation, decay, barSec float64, src rand.Source) *hawkes {
	return &hawkes{
		base:       base,
		excitation: excitation,
		decay:      decay,
		barSec:     barSec,
		src:        src,
		rng:        rand.New(src),
	}
}

// intensity is lambda(t): base rate plus the decayed excitation of every
// recent emission plus the boost of upcoming onsets within the forward
// window. Always >= the base rate.
func (h *hawkes) intensity(t float64, onsets []float64) float64 {
	rate := h.base / h.barSec
	for _, et := range h.history {
		dt := t - et
		if dt < 0 || dt > h.barSec {
			continue
		}
		rate += h.excitation / h.barSec * math.Exp(-h.decay/h.barSec*dt)
	}
	return rate + h.boost(t, onsets)
}

// boost looks ahead of the schedule, not the wall clock: each rhythm-cell
// onset within an eighth of a bar ahead of t contributes a sharply
// decaying bonus.
func (h *hawkes) boost(t float64, onsets []float64) float64 {
	window := h.barSec / 8
	var b float64
	for _, u := range onsets {
		dt := u - t
		if dt < 0 || dt > window {
			continue
		}
		b += rhythmBoostAmp / h.barSec * math.Exp(-rhythmBoostDecay/h.barSec*dt)
	}
	return b
}

// bound is a conservative upper estimate of the intensity from t onward
// until the next event: excitation only decays, and each upcoming onset
// can contribute at most its full amplitude.
func (h *hawkes) bound(t float64, onsets []float64) float64 {
	m := h.base / h.barSec
	for _, et := range h.history {
		dt := t - et
		if dt < 0 || dt > h.barSec {
			continue
		}
		m += h.excitation / h.barSec * math.Exp(-h.decay/h.barSec*dt)
	}
	for _, u := range onsets {
		if u >= t {
			m += rhythmBoostAmp / h.barSec
		}
	}
	return m
}

// next draws the next emission time after t0 by rejection thinning. The
// search never runs more than one bar ahead; past that a fallback time is
// synthesized within the next half-bar so the stream is never interrupted.
func (h *hawkes) next(t0 float64, onsets []float64) float64 {
	t := t0
	limit := t0 + h.barSec
	for t < limit {
		m := h.bound(t, onsets)
		t += distuv.Exponential{Rate: m, Src: h.src}.Rand()
		if t >= limit {
			break
		}
		if h.rng.Float64()*m <= h.intensity(t, onsets) {
			h.record(t)
			return t
		}
	}
	log.WithFields(log.Fields{
		"function": "hawkes.next",
		"from":     t0,
	}).Warn("thinning exceeded safety bound, synthesizing fallback time")
	ft := t0 + h.rng.Float64()*h.barSec/2
	h.record(ft)
	return ft
}

func (h *hawkes) record(t float64) {
	h.history = append(h.history, t)
	// prune anything older than one bar
	cut := 0
	for cut < len(h.history) && h.history[cut] < t-h.barSec {
		cut++
	}
	h.history = h.history[cut:]
}
