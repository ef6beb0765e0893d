package cmd

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/ncg777/musicbox2/constants"
	"github.com/ncg777/musicbox2/engine"
	"github.com/ncg777/musicbox2/export"
	"github.com/ncg777/musicbox2/graph"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/pcs"
	"github.com/ncg777/musicbox2/rhythm"
	"github.com/ncg777/musicbox2/store"
)

var serveCorpusPath string
var serveAddr string

var serveChordGraph *graph.Graph[pcs.Set]
var serveRhythmGraph *graph.Graph[rhythm.Cell]

func init() {
	serveCmd.Flags().StringVar(&serveCorpusPath, "corpus", "", "JSON rhythm corpus file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves offline renders over HTTP",
	Long:  `Serves offline renders over HTTP: POST /render returns the event list for a requested number of phrases, GET /graphs reports graph stats.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles prepares the graphs the handlers render against.
func LoadServeFiles(records []model.RhythmRecord) {
	cfg := model.DefaultConfig()
	serveChordGraph, serveRhythmGraph = store.LoadOrBuild(cfg, records)
}

type renderRequest struct {
	Phrases  int     `json:"phrases"`
	Tempo    float64 `json:"tempo"`
	Strategy string  `json:"strategy"`
}

// HandleRender renders the requested phrases offline and returns the
// artifact. Bad parameter values are clamped, not rejected.
func HandleRender(w http.ResponseWriter, r *http.Request) {
	var input renderRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Could not parse request body: "+err.Error(), 400)
		return
	}

	cfg := model.DefaultConfig()
	if input.Tempo != 0 {
		cfg.Tempo = input.Tempo
	}
	if input.Strategy != "" {
		cfg.Strategy = input.Strategy
	}
	cfg.Clamp()

	events := engine.Render(cfg, serveChordGraph, serveRhythmGraph, input.Phrases)
	res := export.NewRender(events, cfg.Tempo)
	if _, err := export.WriteArtifact(constants.GetIndexDir(), res); err != nil {
		log.Printf("Could not write render artifact: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type graphStats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// HandleGraphs reports the size of both relation graphs.
func HandleGraphs(w http.ResponseWriter, r *http.Request) {
	res := map[string]graphStats{
		"chord":  {Nodes: serveChordGraph.Size(), Edges: serveChordGraph.Edges()},
		"rhythm": {Nodes: serveRhythmGraph.Size(), Edges: serveRhythmGraph.Edges()},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func serve() {
	LoadServeFiles(loadCorpus(serveCorpusPath))

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/graphs", HandleGraphs).Methods("GET")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
