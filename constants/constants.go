package constants

import "os"

func GetIndexDir() string {
	path := os.Getenv("INDEX_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

const ChordGraphFile = "chordGraph.dat"
const RhythmGraphFile = "rhythmGraph.dat"

// PitchClasses is the size of the equal-tempered pitch universe.
const PitchClasses = 12

// BeatsPerBar fixes the meter; a bar is always four beats.
const BeatsPerBar = 4

// CellSlots is the number of sixteenth-note slots in a rhythm cell.
const CellSlots = 16

// PhraseBars is the length of a hyperbar in bars.
const PhraseBars = 8

// WalkLength is how many graph steps feed the arch layout of a phrase.
const WalkLength = 5
