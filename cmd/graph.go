package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/store"
)

var graphCorpusPath string
var graphMinCommon int
var graphEqualCard bool
var graphCardMin int
var graphCardMax int

func init() {
	graphCmd.Flags().StringVar(&graphCorpusPath, "corpus", "", "JSON rhythm corpus file (embedded corpus when empty)")
	graphCmd.Flags().IntVar(&graphMinCommon, "min-common", model.DefaultConfig().MinCommon, "minimum shared pitch classes for chord similarity")
	graphCmd.Flags().BoolVar(&graphEqualCard, "equal-cardinality", false, "require equal cardinality for chord similarity")
	graphCmd.Flags().IntVar(&graphCardMin, "card-min", model.DefaultConfig().ChordCardMin, "smallest chord cardinality kept in the graph")
	graphCmd.Flags().IntVar(&graphCardMax, "card-max", model.DefaultConfig().ChordCardMax, "largest chord cardinality kept in the graph")
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Builds and saves the relation graphs",
	Long:  `Builds the chord and rhythm relation graphs and saves them under the index dir so playback and rendering can load them precomputed.`,
	Run: func(cmd *cobra.Command, args []string) {
		buildGraphs()
	},
}

func buildGraphs() {
	if err := os.MkdirAll(constants.GetIndexDir(), 0777); err != nil {
		panic("Could not create index dir: " + err.Error())
	}
	cg := store.BuildChordGraph(graphMinCommon, graphEqualCard, graphCardMin, graphCardMax)
	if err := store.SaveChordGraph(cg); err != nil {
		panic("Could not save chord graph: " + err.Error())
	}
	rg := store.BuildRhythmGraph(loadCorpus(graphCorpusPath))
	if err := store.SaveRhythmGraph(rg); err != nil {
		panic("Could not save rhythm graph: " + err.Error())
	}
}
