package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ncg777/musicbox2/engine"
	"github.com/ncg777/musicbox2/export"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/store"
)

var renderPhrases int
var renderOut string
var renderTempo float64
var renderStrategy string
var renderCorpusPath string

func init() {
	renderCmd.Flags().IntVar(&renderPhrases, "phrases", 4, "number of 8-bar phrases to render")
	renderCmd.Flags().StringVar(&renderOut, "out", "render.mid", "output file (.mid or .json)")
	renderCmd.Flags().Float64Var(&renderTempo, "tempo", model.DefaultConfig().Tempo, "tempo in BPM")
	renderCmd.Flags().StringVar(&renderStrategy, "strategy", model.DefaultConfig().Strategy, "phrase strategy: scale or walk")
	renderCmd.Flags().StringVar(&renderCorpusPath, "corpus", "", "JSON rhythm corpus file")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders phrases offline to a file",
	Long:  `Runs the generative core without a wall clock and writes the flat event list as a Standard MIDI File or JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		render()
	},
}

func render() {
	cfg := model.DefaultConfig()
	cfg.Tempo = renderTempo
	cfg.Strategy = renderStrategy
	cfg.Clamp()

	cg, rg := store.LoadOrBuild(cfg, loadCorpus(renderCorpusPath))
	events := engine.Render(cfg, cg, rg, renderPhrases)

	var err error
	if strings.HasSuffix(renderOut, ".json") {
		err = export.WriteJSON(renderOut, export.NewRender(events, cfg.Tempo))
	} else {
		err = export.WriteSMF(renderOut, events, cfg.Tempo)
	}
	if err != nil {
		panic("Could not write render: " + err.Error())
	}
	fmt.Printf("Wrote %v events to %v\n", len(events), renderOut)
}
