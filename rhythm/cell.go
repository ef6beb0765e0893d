// Package rhythm decodes the hexadecimal rhythm-cell encoding and the
// reference corpus the rhythm relation graph is derived from.
package rhythm

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a 16-step onset pattern serialized as 4 hexadecimal digits. The
// top bit of each digit is the earliest of its four sixteenth-note slots,
// so "A53C" places onsets at {0, 2, 5, 7, 10, 11, 12, 13}.
type Cell string

// DefaultCell carries one onset per beat; it is the fallback when the
// rhythm graph is too sparse to walk.
const DefaultCell Cell = "8888"

// Parse validates a 4-hex-digit cell string.
func Parse(s string) (Cell, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 4 {
		return "", fmt.Errorf("rhythm cell must be 4 hex digits, got %q", s)
	}
	if _, err := strconv.ParseUint(s, 16, 16); err != nil {
		return "", fmt.Errorf("rhythm cell %q is not hexadecimal", s)
	}
	return Cell(s), nil
}

// Onsets lists the slot indices (0..15) holding an onset. An invalid cell
// yields no onsets rather than an error; validation belongs to Parse.
func (c Cell) Onsets() []int {
	var onsets []int
	if len(c) != 4 {
		return onsets
	}
	for digit := 0; digit < 4; digit++ {
		v, err := strconv.ParseUint(string(c[digit]), 16, 8)
		if err != nil {
			return nil
		}
		for bit := 0; bit < 4; bit++ {
			if v&(8>>uint(bit)) != 0 {
				onsets = append(onsets, digit*4+bit)
			}
		}
	}
	return onsets
}

// OnsetTimes converts the onset slots to seconds from bar start for a bar
// of the given duration.
func (c Cell) OnsetTimes(barSeconds float64) []float64 {
	onsets := c.Onsets()
	times := make([]float64, len(onsets))
	for i, slot := range onsets {
		times[i] = float64(slot) / 16 * barSeconds
	}
	return times
}
