// Package store builds the relation graphs and persists them as gob
// binaries in the index dir, so startup can load precomputed graphs
// instead of re-deriving them.
package store

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
)

// BuildChordGraph derives the pitch-class-set universe, keeps the sets
// whose cardinality falls inside [cardMin, cardMax], and relates every
// unordered pair under the chord-similarity predicate. Determinism of the
// universe makes the result reproducible bit for bit.
func BuildChordGraph(minCommon int, equalCard bool, cardMin, cardMax int) *graph.Graph[pcs.Set] {
	var nodes []pcs.Set
	for _, s := range pcs.Universe() {
		if k := s.Cardinality(); k >= cardMin && k <= cardMax {
			nodes = append(nodes, s)
		}
	}
	g := graph.Build(nodes, func(a, b pcs.Set) bool {
		return pcs.Related(a, b, minCommon, equalCard)
	}, false)
	log.WithFields(log.Fields{
		"function": "BuildChordGraph",
		"nodes":    g.Size(),
		"edges":    g.Edges(),
	}).Info("built chord graph")
	return g
}

// BuildRhythmGraph relates cells that co-occur inside a macro-cell of the
// corpus. Cells that never co-occur are pruned here, at construction.
func BuildRhythmGraph(records []model.RhythmRecord) *graph.Graph[rhythm.Cell] {
	corpus := rhythm.NewCorpus(records)
	g := graph.Build(corpus.Cells(), corpus.Related, true)
	log.WithFields(log.Fields{
		"function": "BuildRhythmGraph",
		"nodes":    g.Size(),
		"edges":    g.Edges(),
	}).Info("built rhythm graph")
	return g
}

type savedChordNode struct {
	Bits      string
	Order     int
	Transpose int
}

type savedChordGraph struct {
	Nodes []savedChordNode
	Adj   [][]int
}

type savedRhythmGraph struct {
	Nodes []string
	Adj   [][]int
}

func createBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0777)
}

func readBinary(path string, data any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(data)
}

// SaveChordGraph writes the chord graph under the index dir.
func SaveChordGraph(g *graph.Graph[pcs.Set]) error {
	var saved savedChordGraph
	for _, s := range g.Nodes {
		saved.Nodes = append(saved.Nodes, savedChordNode{
			Bits:      s.Bits(),
			Order:     s.Order,
			Transpose: s.Transpose,
		})
	}
	saved.Adj = g.Adj
	path := filepath.Join(constants.GetIndexDir(), constants.ChordGraphFile)
	return createBinary(path, saved)
}

// LoadChordGraph reads a previously saved chord graph.
func LoadChordGraph() (*graph.Graph[pcs.Set], error) {
	var saved savedChordGraph
	path := filepath.Join(constants.GetIndexDir(), constants.ChordGraphFile)
	if err := readBinary(path, &saved); err != nil {
		return nil, err
	}
	g := &graph.Graph[pcs.Set]{Adj: saved.Adj}
	for _, n := range saved.Nodes {
		s, err := pcs.ParseBits(n.Bits)
		if err != nil {
			return nil, err
		}
		s.Order = n.Order
		s.Transpose = n.Transpose
		g.Nodes = append(g.Nodes, s)
	}
	return g, nil
}

// SaveRhythmGraph writes the rhythm graph under the index dir.
func SaveRhythmGraph(g *graph.Graph[rhythm.Cell]) error {
	var saved savedRhythmGraph
	for _, c := range g.Nodes {
		saved.Nodes = append(saved.Nodes, string(c))
	}
	saved.Adj = g.Adj
	path := filepath.Join(constants.GetIndexDir(), constants.RhythmGraphFile)
	return createBinary(path, saved)
}

// LoadRhythmGraph reads a previously saved rhythm graph.
func LoadRhythmGraph() (*graph.Graph[rhythm.Cell], error) {
	var saved savedRhythmGraph
	path := filepath.Join(constants.GetIndexDir(), constants.RhythmGraphFile)
	if err := readBinary(path, &saved); err != nil {
		return nil, err
	}
	g := &graph.Graph[rhythm.Cell]{Adj: saved.Adj}
	for _, n := range saved.Nodes {
		c, err := rhythm.Parse(n)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, c)
	}
	return g, nil
}

// LoadOrBuild returns saved graphs when present and otherwise builds them
// in process. Building the chord graph takes a moment but never fails.
func LoadOrBuild(cfg model.Config, records []model.RhythmRecord) (*graph.Graph[pcs.Set], *graph.Graph[rhythm.Cell]) {
	logger := log.WithFields(log.Fields{
		"function": "LoadOrBuild",
	})
	cg, err := LoadChordGraph()
	if err != nil {
		logger.Infof("no saved chord graph (%v), building", err)
		cg = BuildChordGraph(cfg.MinCommon, cfg.EqualCardinality, cfg.ChordCardMin, cfg.ChordCardMax)
	}
	rg, err := LoadRhythmGraph()
	if err != nil {
		logger.Infof("no saved rhythm graph (%v), building", err)
		rg = BuildRhythmGraph(records)
	}
	return cg, rg
}
