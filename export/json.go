package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ncg777/musicbox2/model"
)

// Render is the JSON artifact shape: the render's identity, the tempo it
// was generated at, and the flat event list.
type Render struct {
	Id     string        `json:"id"`
	Tempo  float64       `json:"tempo"`
	Events []model.Event `json:"events"`
}

// NewRender wraps an event list with a fresh identity.
func NewRender(events []model.Event, tempo float64) Render {
	return Render{
		Id:     uuid.New().String(),
		Tempo:  tempo,
		Events: events,
	}
}

// WriteJSON writes the render to path.
func WriteJSON(path string, r Render) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0777)
}

// WriteArtifact writes the render into dir under its own uuid filename
// and returns the path.
func WriteArtifact(dir string, r Render) (string, error) {
	path := filepath.Join(dir, r.Id+".json")
	return path, WriteJSON(path, r)
}
