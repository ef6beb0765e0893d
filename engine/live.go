package engine

import (
	"time"

	"github.com/bep/debounce"
	log "github.com/sirupsen/logrus"

	"github.com/ncg777/musicbox2/model"
)

// Consumer renders emitted events. Play runs in the consumer's own
// execution context and must treat events as immutable and already
// time-stamped; ReleaseAll is the stop signal to silence everything
// currently sounding.
type Consumer interface {
	Play(ev model.Event)
	ReleaseAll()
}

// Engine is the live scheduling shell: a cooperative lookahead loop that
// advances a virtual transport clock and hands due events to the
// consumer just ahead of their deadline.
type Engine struct {
	cfg      model.Config
	gen      *Generator
	consumer Consumer

	obs       Observer
	debounced func(f func())

	pending model.Events

	stopChan chan struct{}
	doneChan chan struct{}
}

func NewEngine(gen *Generator, consumer Consumer) *Engine {
	e := &Engine{
		cfg:       gen.Config(),
		gen:       gen,
		consumer:  consumer,
		debounced: debounce.New(50 * time.Millisecond),
	}
	gen.SetObserver(e)
	return e
}

// SetObserver installs the UI notification sink. Chord-change
// notifications are debounced so a settling window produces one callback.
func (e *Engine) SetObserver(obs Observer) { e.obs = obs }

// ChordChanged implements Observer on behalf of the generator.
func (e *Engine) ChordChanged(bits string) {
	if e.obs == nil {
		return
	}
	e.debounced(func() {
		e.obs.ChordChanged(bits)
	})
}

// NoteTriggered notifications are fired at emission time by the loop, not
// by the generator.
func (e *Engine) NoteTriggered(int) {}

// Start launches the lookahead loop. Stop halts it.
func (e *Engine) Start() {
	e.stopChan = make(chan struct{})
	e.doneChan = make(chan struct{})
	go e.loop()
}

// Stop halts the loop, releases every sounding resource, and leaves all
// generative state valid for a resume or a fresh start.
func (e *Engine) Stop() {
	close(e.stopChan)
	<-e.doneChan
}

// loop is level-triggered: every wake re-evaluates what is due instead of
// trusting precise timer firing, so host scheduling jitter cannot stall
// or reorder the stream.
func (e *Engine) loop() {
	logger := log.WithFields(log.Fields{
		"function": "Engine.loop",
	})
	defer close(e.doneChan)
	defer e.consumer.ReleaseAll()

	start := time.Now()
	ticker := time.NewTicker(time.Duration(e.cfg.Tick * float64(time.Second)))
	defer ticker.Stop()

	logger.Infof("live loop started: tempo %v, lookahead %vs", e.cfg.Tempo, e.cfg.Lookahead)
	for {
		select {
		case <-e.stopChan:
			logger.Info("live loop stopped")
			return
		case <-ticker.C:
			now := time.Since(start).Seconds()
			e.advance(now)
		}
	}
}

// advance generates bars up to the lookahead horizon (which regenerates
// the phrase ahead of its boundary) and emits every pending event inside
// the window. Emission times are clamped to now plus the safety margin so
// late wakes never reorder against already-issued audio commands.
func (e *Engine) advance(now float64) {
	for e.gen.Horizon() < now+e.cfg.Lookahead+e.cfg.BarSeconds() {
		e.pending = append(e.pending, e.gen.NextBar()...)
	}
	due := 0
	for due < len(e.pending) && e.pending[due].Time <= now+e.cfg.Lookahead {
		ev := e.pending[due]
		if ev.Time < now+e.cfg.SafetyMargin {
			ev.Time = now + e.cfg.SafetyMargin
		}
		e.consumer.Play(ev)
		if e.obs != nil {
			e.obs.NoteTriggered(ev.PitchClass)
		}
		due++
	}
	e.pending = e.pending[due:]
}
