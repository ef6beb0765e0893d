package engine

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
)

// Render runs the identical generative algorithms without a wall clock,
// producing a flat time-ordered event list for the requested number of
// phrases. It constructs a fresh generator seeded independently, so a
// concurrently live session's mutable state is never touched.
func Render(cfg model.Config, chordGraph *graph.Graph[pcs.Set], rhythmGraph *graph.Graph[rhythm.Cell], phrases int) []model.Event {
	now := uint64(time.Now().UnixNano())
	return RenderSeeded(cfg, chordGraph, rhythmGraph, phrases, now^0x9e3779b97f4a7c15, now|1)
}

// RenderSeeded is Render with a pinned random source.
func RenderSeeded(cfg model.Config, chordGraph *graph.Graph[pcs.Set], rhythmGraph *graph.Graph[rhythm.Cell], phrases int, seed1, seed2 uint64) []model.Event {
	if phrases < 1 {
		phrases = 1
	}
	gen := NewGeneratorSeeded(cfg, chordGraph, rhythmGraph, seed1, seed2)
	var all model.Events
	for bar := 0; bar < phrases*constants.PhraseBars; bar++ {
		all = append(all, gen.NextBar()...)
	}
	sort.Sort(all)
	log.WithFields(log.Fields{
		"function": "RenderSeeded",
		"phrases":  phrases,
		"events":   len(all),
	}).Info("offline render complete")
	return all
}
