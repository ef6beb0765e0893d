package rhythm

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/util"
)

// DefaultCorpus is the embedded reference corpus. The 8-unit records are
// macro-cells whose halves define the co-occurrence relation; the 4-unit
// records contribute candidate cells on their own.
var DefaultCorpus = []model.RhythmRecord{
	{Hex: "8888", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "A53C", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "8A8A", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "AAAA", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "9248", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "8808", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "A5A5", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "C3C3", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "8421", Numerator: 4, Denominator: 4, Mode: "hex"},
	{Hex: "8888A53C", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "A53C8A8A", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "8A8A8888", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "AAAA8808", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "88088888", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "9248A5A5", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "A5A5C3C3", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "C3C38888", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "84218A8A", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "AAAA9248", Numerator: 8, Denominator: 4, Mode: "hex"},
	{Hex: "8888AAAA", Numerator: 8, Denominator: 4, Mode: "hex"},
}

// LoadRecords reads a JSON corpus file.
func LoadRecords(path string) ([]model.RhythmRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []model.RhythmRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FilterRecords keeps only the records the engine consumes: hex-mode with
// a 4- or 8-unit span whose hex string length matches.
func FilterRecords(records []model.RhythmRecord) []model.RhythmRecord {
	var out []model.RhythmRecord
	for _, r := range records {
		if r.Mode != "hex" {
			continue
		}
		if r.Numerator != 4 && r.Numerator != 8 {
			continue
		}
		if len(r.Hex) != r.Numerator {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Corpus is the co-occurrence view of a filtered record set: the candidate
// cell universe plus the pairs observed inside 8-unit macro-cells.
type Corpus struct {
	cells []Cell
	pairs map[[2]Cell]bool
}

// NewCorpus digests records into a Corpus. Cells come from 4-unit records
// and from both halves of 8-unit records; a pair is recorded when two
// cells form the halves of some macro-cell, in either order.
func NewCorpus(records []model.RhythmRecord) *Corpus {
	c := &Corpus{pairs: make(map[[2]Cell]bool)}
	seen := make(map[Cell]bool)
	add := func(raw string) (Cell, bool) {
		cell, err := Parse(raw)
		if err != nil {
			return "", false
		}
		seen[cell] = true
		return cell, true
	}
	for _, r := range FilterRecords(records) {
		hex := strings.ToUpper(r.Hex)
		switch r.Numerator {
		case 4:
			add(hex)
		case 8:
			a, okA := add(hex[:4])
			b, okB := add(hex[4:])
			if okA && okB && a != b {
				c.pairs[[2]Cell{a, b}] = true
				c.pairs[[2]Cell{b, a}] = true
			}
		}
	}
	c.cells = util.GetKeysSorted(seen)
	return c
}

// Cells returns the candidate cell universe in deterministic order.
func (c *Corpus) Cells() []Cell { return c.cells }

// Related reports whether two cells co-occur within some macro-cell.
func (c *Corpus) Related(a, b Cell) bool {
	return c.pairs[[2]Cell{a, b}]
}
