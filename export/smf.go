// Package export serializes offline renders to Standard MIDI Files and
// JSON artifacts.
package export

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ncg777/musicbox2/model"
)

const ticksPerQuarter = 960

// WriteSMF renders the event list as a multi-track SMF, one track per
// voice plus a tempo track, and writes it to path.
func WriteSMF(path string, events []model.Event, tempo float64) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(tempo))
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return err
	}

	for _, voice := range voices(events) {
		track := buildTrack(events, voice, tempo)
		if err := s.Add(track); err != nil {
			return err
		}
	}
	return s.WriteFile(path)
}

func voices(events []model.Event) []int {
	seen := make(map[int]bool)
	var out []int
	for _, ev := range events {
		if !seen[ev.Voice] {
			seen[ev.Voice] = true
			out = append(out, ev.Voice)
		}
	}
	sort.Ints(out)
	return out
}

// buildTrack lays one voice's onsets and note-offs out as delta-timed
// messages.
func buildTrack(events []model.Event, voice int, tempo float64) smf.Track {
	type message struct {
		ticks uint32
		msg   midi.Message
	}
	var msgs []message
	for _, ev := range events {
		if ev.Voice != voice {
			continue
		}
		on := secondsToTicks(ev.Time, tempo)
		off := secondsToTicks(ev.Time+ev.Duration, tempo)
		if off <= on {
			off = on + 1
		}
		key := ev.MidiKey()
		msgs = append(msgs, message{on, midi.NoteOn(0, key, 96)})
		msgs = append(msgs, message{off, midi.NoteOff(0, key)})
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].ticks < msgs[j].ticks
	})

	var track smf.Track
	var prev uint32
	for _, m := range msgs {
		track.Add(m.ticks-prev, m.msg)
		prev = m.ticks
	}
	track.Close(0)
	return track
}

func secondsToTicks(t float64, tempo float64) uint32 {
	beats := t * tempo / 60
	return uint32(beats * ticksPerQuarter)
}
