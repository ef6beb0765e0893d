package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ncg777/musicbox2/export"
	"github.com/ncg777/musicbox2/rhythm"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "musicbox2-serve")
	if err != nil {
		panic("Could not create temp index dir: " + err.Error())
	}
	os.Setenv("INDEX_PATH", dir)
	LoadServeFiles(rhythm.DefaultCorpus)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestHandleRender(t *testing.T) {
	body := bytes.NewBufferString(`{"phrases": 2, "tempo": 90, "strategy": "scale"}`)
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	HandleRender(w, req)

	assert := assert.New(t)
	assert.Equal(200, w.Code)

	var res export.Render
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(res.Id)
	assert.Equal(90.0, res.Tempo)
	assert.NotEmpty(res.Events)
	for i := 1; i < len(res.Events); i++ {
		assert.LessOrEqual(res.Events[i-1].Time, res.Events[i].Time)
	}
}

func TestHandleRenderClampsBadInput(t *testing.T) {
	body := bytes.NewBufferString(`{"phrases": 1, "tempo": 1000, "strategy": "nonsense"}`)
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	HandleRender(w, req)

	assert := assert.New(t)
	assert.Equal(200, w.Code)

	var res export.Render
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(300.0, res.Tempo)
	assert.NotEmpty(res.Events)
}

func TestHandleRenderRejectsGarbageBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	HandleRender(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestHandleGraphs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/graphs", nil)
	w := httptest.NewRecorder()
	HandleGraphs(w, req)

	assert := assert.New(t)
	assert.Equal(200, w.Code)

	var res map[string]graphStats
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Greater(res["chord"].Nodes, 0)
	assert.Greater(res["chord"].Edges, 0)
	assert.Greater(res["rhythm"].Nodes, 0)
	assert.Greater(res["rhythm"].Edges, 0)
}
