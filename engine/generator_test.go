package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
	"github.com/ncg777/musicbox2/store"
)

var graphsOnce sync.Once
var cachedChordGraph *graph.Graph[pcs.Set]
var cachedRhythmGraph *graph.Graph[rhythm.Cell]

// testGraphs builds the graphs once; they are immutable and shared.
func testGraphs() (*graph.Graph[pcs.Set], *graph.Graph[rhythm.Cell]) {
	graphsOnce.Do(func() {
		cachedChordGraph = store.BuildChordGraph(1, false, 3, 5)
		cachedRhythmGraph = store.BuildRhythmGraph(rhythm.DefaultCorpus)
	})
	return cachedChordGraph, cachedRhythmGraph
}

type recordingObserver struct {
	chords []string
	notes  []int
}

func (r *recordingObserver) ChordChanged(bits string) { r.chords = append(r.chords, bits) }
func (r *recordingObserver) NoteTriggered(pc int)     { r.notes = append(r.notes, pc) }

func TestNextBarEventsStayInsideBar(t *testing.T) {
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(model.DefaultConfig(), cg, rg, 1, 2)
	barSec := gen.Config().BarSeconds()
	for bar := 0; bar < 32; bar++ {
		start := float64(bar) * barSec
		for _, ev := range gen.NextBar() {
			if ev.Time < start || ev.Time >= start+barSec {
				t.Fatalf("bar %d: event at %v outside [%v,%v)", bar, ev.Time, start, start+barSec)
			}
		}
	}
}

func TestNextBarEventsAreWellFormed(t *testing.T) {
	cfg := model.DefaultConfig()
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(cfg, cg, rg, 3, 4)
	assert := assert.New(t)
	for bar := 0; bar < 32; bar++ {
		prev := -1.0
		for _, ev := range gen.NextBar() {
			assert.GreaterOrEqual(ev.Time, prev, "events unsorted within bar")
			prev = ev.Time
			assert.GreaterOrEqual(ev.PitchClass, 0)
			assert.Less(ev.PitchClass, 12)
			assert.GreaterOrEqual(ev.Octave, cfg.OctaveMin)
			assert.LessOrEqual(ev.Octave, cfg.OctaveMax)
			assert.Greater(ev.Duration, 0.0)
			assert.Less(ev.Voice, cfg.Voices)
		}
	}
}

func TestPitchClassesComeFromActiveChord(t *testing.T) {
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(model.DefaultConfig(), cg, rg, 5, 6)
	obs := &recordingObserver{}
	gen.SetObserver(obs)
	for bar := 0; bar < 16; bar++ {
		events := gen.NextBar()
		chordBits := obs.chords[len(obs.chords)-1]
		chord, err := pcs.ParseBits(chordBits)
		assert.NoError(t, err)
		for _, ev := range events {
			assert.True(t, chord.Contains(ev.PitchClass),
				"bar %d: pitch class %d not in chord %s", bar, ev.PitchClass, chordBits)
		}
	}
}

func TestChordChangedFiresOnChanges(t *testing.T) {
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(model.DefaultConfig(), cg, rg, 7, 8)
	obs := &recordingObserver{}
	gen.SetObserver(obs)
	for bar := 0; bar < constants.PhraseBars; bar++ {
		gen.NextBar()
	}
	// scale-subset phrases hold 4 chords over 8 bars
	assert.Equal(t, 4, len(obs.chords))
}

func TestSingleVoiceConfigEmitsOnlyFloridVoice(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Voices = 1
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(cfg, cg, rg, 9, 10)
	for bar := 0; bar < 8; bar++ {
		for _, ev := range gen.NextBar() {
			assert.Equal(t, VoiceFlorid, ev.Voice)
		}
	}
}

func TestRenderProducesSortedEvents(t *testing.T) {
	cg, rg := testGraphs()
	events := RenderSeeded(model.DefaultConfig(), cg, rg, 3, 11, 12)
	assert := assert.New(t)
	assert.NotEmpty(events)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(events[i-1].Time, events[i].Time)
	}
	total := 3 * constants.PhraseBars * model.DefaultConfig().BarSeconds()
	for _, ev := range events {
		assert.GreaterOrEqual(ev.Time, 0.0)
		assert.Less(ev.Time, total)
	}
}

func TestRenderDoesNotDisturbLiveGenerator(t *testing.T) {
	cg, rg := testGraphs()
	live := NewGeneratorSeeded(model.DefaultConfig(), cg, rg, 13, 14)
	live.NextBar()
	before := live.BarCount()

	RenderSeeded(model.DefaultConfig(), cg, rg, 2, 15, 16)

	assert := assert.New(t)
	assert.Equal(before, live.BarCount())
	// the live generator keeps producing from where it was
	assert.NotNil(live.NextBar())
	assert.Equal(before+1, live.BarCount())
}

func TestClampedConfigNeverPanics(t *testing.T) {
	cfg := model.Config{Tempo: -5, Strategy: "nonsense", BaseRate: -1, Voices: 99,
		OctaveMin: 8, OctaveMax: 2}
	cg, rg := testGraphs()
	gen := NewGeneratorSeeded(cfg, cg, rg, 17, 18)
	for bar := 0; bar < 8; bar++ {
		gen.NextBar()
	}
	got := gen.Config()
	assert := assert.New(t)
	assert.Equal(20.0, got.Tempo)
	assert.Equal("scale", got.Strategy)
	assert.Equal(3, got.Voices)
	assert.LessOrEqual(got.OctaveMin, got.OctaveMax)
}
