package delivery

import (
	"net/http"
	"path/filepath"
	"regexp"

	"github.com/go-chi/chi/v5"
)

const generatedPrefix = "/generated/"

var generatedName = regexp.MustCompile(`^[0-9a-f-]{36}\.mp3$`)

// StaticHandler serves the demo clip and synthesized files.
type StaticHandler struct {
	demoFile     string
	generatedDir string
}

func NewStaticHandler(demoFile, generatedDir string) *StaticHandler {
	return &StaticHandler{demoFile: demoFile, generatedDir: generatedDir}
}

func (h *StaticHandler) Demo(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, h.demoFile)
}

func (h *StaticHandler) Generated(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !generatedName.MatchString(name) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, filepath.Join(h.generatedDir, name))
}
