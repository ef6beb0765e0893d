// Package phrase generates hyperbars: fixed 8-bar cycles binding one chord
// and one rhythm cell to each bar.
package phrase

import (
	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
)

// Bar binds exactly one chord and one rhythm cell.
type Bar struct {
	Chord pcs.Set
	Cell  rhythm.Cell
}

// Phrase is the active structural unit. Exactly one phrase is live at a
// time; a new one is generated when the transport crosses its boundary.
type Phrase struct {
	Bars [constants.PhraseBars]Bar
}

// DistinctChords counts membership-distinct chords across the bars.
func (p Phrase) DistinctChords() int {
	var distinct []pcs.Set
outer:
	for _, bar := range p.Bars {
		for _, seen := range distinct {
			if seen.Equal(bar.Chord) {
				continue outer
			}
		}
		distinct = append(distinct, bar.Chord)
	}
	return len(distinct)
}
