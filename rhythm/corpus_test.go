package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ncg777/musicbox2/model"
)

func TestFilterRecords(t *testing.T) {
	records := []model.RhythmRecord{
		{Hex: "8888", Numerator: 4, Denominator: 4, Mode: "hex"},
		{Hex: "8888A53C", Numerator: 8, Denominator: 4, Mode: "hex"},
		{Hex: "888", Numerator: 3, Denominator: 4, Mode: "hex"},
		{Hex: "8888", Numerator: 4, Denominator: 4, Mode: "binary"},
		{Hex: "8888", Numerator: 8, Denominator: 4, Mode: "hex"},
	}
	kept := FilterRecords(records)
	assert.Len(t, kept, 2)
}

func TestCorpusCoOccurrence(t *testing.T) {
	records := []model.RhythmRecord{
		{Hex: "8888A53C", Numerator: 8, Denominator: 4, Mode: "hex"},
		{Hex: "AAAA", Numerator: 4, Denominator: 4, Mode: "hex"},
	}
	c := NewCorpus(records)
	assert := assert.New(t)

	// both orders of the macro-cell halves relate
	assert.True(c.Related("8888", "A53C"))
	assert.True(c.Related("A53C", "8888"))

	// the lone 4-unit record is a candidate cell with no relations
	assert.Contains(c.Cells(), Cell("AAAA"))
	assert.False(c.Related("AAAA", "8888"))
}

func TestCorpusIgnoresSelfPairs(t *testing.T) {
	records := []model.RhythmRecord{
		{Hex: "88888888", Numerator: 8, Denominator: 4, Mode: "hex"},
	}
	c := NewCorpus(records)
	assert.False(t, c.Related("8888", "8888"))
}

func TestDefaultCorpusYieldsConnectedCells(t *testing.T) {
	c := NewCorpus(DefaultCorpus)
	assert := assert.New(t)
	assert.NotEmpty(c.Cells())

	related := 0
	for _, a := range c.Cells() {
		for _, b := range c.Cells() {
			if c.Related(a, b) {
				related++
				break
			}
		}
	}
	assert.Greater(related, 3)
}
