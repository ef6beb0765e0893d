package model

// Event is a single dated note onset. Times are seconds from transport
// start, already in the consumer's clock domain. Events are immutable once
// emitted.
type Event struct {
	Time       float64 `json:"time"`
	Voice      int     `json:"voice"`
	PitchClass int     `json:"pitch_class"`
	Octave     int     `json:"octave"`
	Duration   float64 `json:"duration"`
}

// MidiKey maps the pitch class and octave onto a MIDI key number.
func (e Event) MidiKey() uint8 {
	k := (e.Octave+1)*12 + e.PitchClass
	if k < 0 {
		k = 0
	}
	if k > 127 {
		k = 127
	}
	return uint8(k)
}

// Events sorts by time, then voice for equal times.
type Events []Event

func (p Events) Len() int { return len(p) }

func (p Events) Less(i, j int) bool {
	if p[i].Time != p[j].Time {
		return p[i].Time < p[j].Time
	}
	return p[i].Voice < p[j].Voice
}

func (p Events) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

// RhythmRecord is one entry of the reference rhythm corpus. Only hex-mode
// records spanning 4 or 8 units are consumed by the engine.
type RhythmRecord struct {
	Hex         string `json:"hex"`
	Numerator   int    `json:"numerator"`
	Denominator int    `json:"denominator"`
	Mode        string `json:"mode"`
}
