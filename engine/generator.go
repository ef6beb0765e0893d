package engine

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/phrase"
	"github.com/ncg777/musicbox2/rhythm"
)

// Voice indices within a generator.
const (
	VoiceFlorid = iota
	VoiceStrum
	VoiceArpeggio
)

// Observer receives the notifications the core produces for external
// collaborators: chord changes and triggered notes. Callbacks must treat
// their arguments as immutable.
type Observer interface {
	ChordChanged(bits string)
	NoteTriggered(pitchClass int)
}

// Generator is the single-timeline generative core. It owns the phrase
// generator, the point process, and the voice cursors, and produces the
// event stream one bar at a time. It is not safe for concurrent use; the
// scheduling shells drive it from one goroutine.
type Generator struct {
	cfg     model.Config
	rng     *rand.Rand
	phrases *phrase.Generator

	current  phrase.Phrase
	barCount int

	proc      *hawkes
	prevChord pcs.Set
	hasChord  bool

	floridReg *register
	strumReg  *register
	strumV    *strum
	arpV      *arpeggio

	obs Observer

	floridDur float64
	strumDur  float64
	arpDur    float64
}

// NewGenerator seeds from the wall clock: output is intentionally not
// reproducible across runs.
func NewGenerator(cfg model.Config, chordGraph *graph.Graph[pcs.Set], rhythmGraph *graph.Graph[rhythm.Cell]) *Generator {
	now := uint64(time.Now().UnixNano())
	return NewGeneratorSeeded(cfg, chordGraph, rhythmGraph, now, now>>32|1)
}

// NewGeneratorSeeded pins the random source, for tests and for offline
// renders that must not share the live generator's source.
func NewGeneratorSeeded(cfg model.Config, chordGraph *graph.Graph[pcs.Set], rhythmGraph *graph.Graph[rhythm.Cell], seed1, seed2 uint64) *Generator {
	cfg.Clamp()
	src := rand.NewPCG(seed1, seed2)
	rng := rand.New(src)
	g := &Generator{
		cfg:       cfg,
		rng:       rng,
		phrases:   phrase.New(chordGraph, rhythmGraph, phrase.ParseStrategy(cfg.Strategy), rng),
		proc:      newHawkes(cfg.BaseRate, cfg.Excitation, cfg.Decay, cfg.BarSeconds(), src),
		floridReg: newRegister(cfg.OctaveMin, cfg.OctaveMax, rng),
		strumReg:  newRegister(cfg.OctaveMin, cfg.OctaveMax, rng),
		floridDur: rhythm.DurationSeconds("eighth", cfg.Tempo),
		strumDur:  rhythm.DurationSeconds("sixteenth", cfg.Tempo),
		arpDur:    rhythm.DurationSeconds("triplet eighth", cfg.Tempo),
	}
	return g
}

// SetObserver installs the notification sink. Passing nil silences
// notifications.
func (g *Generator) SetObserver(obs Observer) { g.obs = obs }

// Config returns the clamped configuration in effect.
func (g *Generator) Config() model.Config { return g.cfg }

// BarCount is the number of bars generated so far.
func (g *Generator) BarCount() int { return g.barCount }

// Horizon is the transport time up to which events have been generated.
func (g *Generator) Horizon() float64 {
	return float64(g.barCount) * g.cfg.BarSeconds()
}

// NextBar advances the transport by one bar and returns its events sorted
// by time. Phrase boundaries regenerate the phrase; chord changes rebuild
// the deterministic voice patterns and notify the observer.
func (g *Generator) NextBar() []model.Event {
	barIdx := g.barCount % constants.PhraseBars
	if barIdx == 0 {
		g.current = g.phrases.Next()
	}
	bar := g.current.Bars[barIdx]
	barSec := g.cfg.BarSeconds()
	barStart := float64(g.barCount) * barSec

	if !g.hasChord || !bar.Chord.Equal(g.prevChord) {
		g.chordChanged(bar.Chord)
	}

	var events model.Events
	events = append(events, g.floridEvents(bar, barStart, barSec)...)
	if g.cfg.Voices >= 2 {
		events = append(events, g.strumEvents(bar, barStart, barSec)...)
	}
	if g.cfg.Voices >= 3 {
		events = append(events, g.arpeggioEvents(bar, barStart, barSec)...)
	}
	sort.Sort(events)

	g.barCount++
	return events
}

// chordChanged rebuilds every chord-derived voice pattern from scratch.
func (g *Generator) chordChanged(chord pcs.Set) {
	g.prevChord = chord
	g.hasChord = true
	tones := chord.Cardinality()
	if tones > 0 {
		g.strumV = newStrum(tones, g.divider(VoiceStrum), g.rng)
		g.arpV = newArpeggio(tones, 3, g.cfg.OctaveMin, g.cfg.OctaveMax, g.rng)
	} else {
		g.strumV = nil
		g.arpV = nil
	}
	if g.obs != nil {
		g.obs.ChordChanged(chord.Bits())
	}
}

func (g *Generator) divider(voice int) int {
	if voice < len(g.cfg.RateDividers) {
		return g.cfg.RateDividers[voice]
	}
	return 1
}

// floridEvents samples the self-exciting process across the bar. The
// rhythm cell's onsets feed the intensity boost; pitch classes are drawn
// uniformly from the active chord.
func (g *Generator) floridEvents(bar phrase.Bar, barStart, barSec float64) []model.Event {
	tones := bar.Chord.Classes()
	onsets := bar.Cell.OnsetTimes(barSec)
	for i := range onsets {
		onsets[i] += barStart
	}
	var events []model.Event
	t := barStart
	for {
		t = g.proc.next(t, onsets)
		if t >= barStart+barSec {
			break
		}
		if len(tones) == 0 {
			continue
		}
		events = append(events, model.Event{
			Time:       t,
			Voice:      VoiceFlorid,
			PitchClass: tones[g.rng.IntN(len(tones))],
			Octave:     g.floridReg.step(),
			Duration:   g.floridDur,
		})
	}
	return events
}

// strumEvents fires the strum cursor once per rhythm-cell onset.
func (g *Generator) strumEvents(bar phrase.Bar, barStart, barSec float64) []model.Event {
	tones := bar.Chord.Classes()
	if g.strumV == nil || len(tones) == 0 {
		return nil
	}
	var events []model.Event
	for _, slot := range bar.Cell.OnsetTimes(barSec) {
		idx, emit := g.strumV.next()
		if !emit {
			continue
		}
		events = append(events, model.Event{
			Time:       barStart + slot,
			Voice:      VoiceStrum,
			PitchClass: tones[idx%len(tones)],
			Octave:     g.strumReg.step(),
			Duration:   g.strumDur,
		})
	}
	return events
}

// arpeggioEvents runs the permuted arpeggio on an independent eighth-note
// grid, in lockstep with the bar rather than the cell.
func (g *Generator) arpeggioEvents(bar phrase.Bar, barStart, barSec float64) []model.Event {
	tones := bar.Chord.Classes()
	if g.arpV == nil || len(tones) == 0 {
		return nil
	}
	div := g.divider(VoiceArpeggio)
	if div < 1 {
		div = 1
	}
	var events []model.Event
	for step := 0; step < 8; step++ {
		tone, oct := g.arpV.next()
		if div > 1 && step%div != 0 {
			continue
		}
		events = append(events, model.Event{
			Time:       barStart + float64(step)/8*barSec,
			Voice:      VoiceArpeggio,
			PitchClass: tones[tone%len(tones)],
			Octave:     oct,
			Duration:   g.arpDur,
		})
	}
	return events
}
