package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/rhythm"
)

var rootCmd = &cobra.Command{
	Use:   "musicbox2",
	Short: "Generative ambient composition engine",
	Long:  `Continuously generates an evolving, non-repeating ambient piece from pitch-class-set and rhythm-cell relation graphs.`,
}

var debugFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if debugFlag {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	})
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadCorpus reads a JSON rhythm corpus, or falls back to the embedded
// reference corpus when no path is given.
func loadCorpus(path string) []model.RhythmRecord {
	if path == "" {
		return rhythm.DefaultCorpus
	}
	records, err := rhythm.LoadRecords(path)
	if err != nil {
		panic("Could not load rhythm corpus: " + err.Error())
	}
	return records
}
