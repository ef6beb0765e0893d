package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/ncg777/musicbox2/engine"
	"github.com/ncg777/musicbox2/model"
	"github.com/ncg777/musicbox2/store"
)

var playTempo float64
var playStrategy string
var playVoices int
var playCorpusPath string

func init() {
	playCmd.Flags().Float64Var(&playTempo, "tempo", model.DefaultConfig().Tempo, "tempo in BPM")
	playCmd.Flags().StringVar(&playStrategy, "strategy", model.DefaultConfig().Strategy, "phrase strategy: scale or walk")
	playCmd.Flags().IntVar(&playVoices, "voices", model.DefaultConfig().Voices, "number of simultaneous voices (1..3)")
	playCmd.Flags().StringVar(&playCorpusPath, "corpus", "", "JSON rhythm corpus file")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plays live out a MIDI port",
	Long:  `Runs the live lookahead loop and sends the event stream out the first available MIDI port until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		play()
	},
}

// midiConsumer renders events on a MIDI out port. It keeps its own clock
// aligned with the engine's transport and schedules note-offs itself.
type midiConsumer struct {
	start time.Time
	send  func(midi.Message) error
}

func (m *midiConsumer) Play(ev model.Event) {
	delay := time.Duration(ev.Time*float64(time.Second)) - time.Since(m.start)
	if delay < 0 {
		delay = 0
	}
	key := ev.MidiKey()
	time.AfterFunc(delay, func() {
		m.send(midi.NoteOn(0, key, 96))
	})
	time.AfterFunc(delay+time.Duration(ev.Duration*float64(time.Second)), func() {
		m.send(midi.NoteOff(0, key))
	})
}

func (m *midiConsumer) ReleaseAll() {
	// CC 123: all notes off
	m.send(midi.ControlChange(0, 123, 0))
}

// logObserver is the UI-feedback stand-in: chord changes and triggered
// notes go to the log.
type logObserver struct{}

func (logObserver) ChordChanged(bits string) {
	log.WithFields(log.Fields{
		"function": "logObserver.ChordChanged",
		"chord":    bits,
	}).Info("chord changed")
}

func (logObserver) NoteTriggered(pitchClass int) {
	log.WithFields(log.Fields{
		"function": "logObserver.NoteTriggered",
		"pc":       pitchClass,
	}).Debug("note triggered")
}

func play() {
	defer midi.CloseDriver()
	out, err := midi.OutPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI out port:", err)
		return
	}
	send, err := midi.SendTo(out)
	if err != nil {
		panic("Could not open MIDI out port: " + err.Error())
	}

	cfg := model.DefaultConfig()
	cfg.Tempo = playTempo
	cfg.Strategy = playStrategy
	cfg.Voices = playVoices
	cfg.Clamp()

	cg, rg := store.LoadOrBuild(cfg, loadCorpus(playCorpusPath))
	gen := engine.NewGenerator(cfg, cg, rg)

	consumer := &midiConsumer{start: time.Now(), send: send}
	e := engine.NewEngine(gen, consumer)
	e.SetObserver(logObserver{})
	e.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	e.Stop()
	fmt.Println("Done")
}
