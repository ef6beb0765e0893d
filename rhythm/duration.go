package rhythm

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

var durationBeats = map[string]float64{
	"whole":        4,
	"half":         2,
	"quarter":      1,
	"eighth":       0.5,
	"sixteenth":    0.25,
	"thirtysecond": 0.125,
}

// ParseDuration resolves a symbolic duration token to beats. Tokens are a
// duration name optionally preceded by "dotted" (x1.5) or "triplet"
// (x2/3), e.g. "dotted eighth". Unknown tokens clamp to a quarter note
// rather than failing: generation never stops for a bad token.
func ParseDuration(token string) float64 {
	fields := strings.Fields(strings.ToLower(token))
	factor := 1.0
	name := ""
	for _, f := range fields {
		switch f {
		case "dotted":
			factor *= 1.5
		case "triplet":
			factor *= 2.0 / 3.0
		default:
			name = f
		}
	}
	beats, ok := durationBeats[name]
	if !ok {
		log.WithFields(log.Fields{
			"function": "ParseDuration",
			"token":    token,
		}).Warn("unknown duration token, using quarter")
		beats = 1
	}
	return beats * factor
}

// DurationSeconds converts a symbolic duration to seconds at a tempo.
func DurationSeconds(token string, tempo float64) float64 {
	return ParseDuration(token) * 60 / tempo
}
