package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Server handles web requests for the recursive raytracer
type Server struct {
	port     int
	sceneDir string              // Directory searched for JSON scene files
	renders  *semaphore.Weighted // Bounds concurrent renders
	nextID   atomic.Int64
}

// NewServer creates a new web server. At most maxRenders renders run at
// once; further requests wait for a slot.
func NewServer(port int, sceneDir string, maxRenders int) *Server {
	if maxRenders <= 0 {
		maxRenders = 1
	}
	return &Server{
		port:     port,
		sceneDir: sceneDir,
		renders:  semaphore.NewWeighted(int64(maxRenders)),
	}
}

// Handler returns the HTTP handler serving all endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.ListBuiltinScenes()
	if s.sceneDir != "" {
		files, err := scene.ListFileScenes(s.sceneDir)
		if err != nil {
			log.Printf("Listing scene files in %s: %v", s.sceneDir, err)
		}
		scenes = append(scenes, files...)
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the recommended configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":       sceneName,
		"description": sceneObj.Description,
		"defaults":    sceneObj.SamplingConfig,
		"limits": map[string]interface{}{
			"width":  map[string]int{"min": minSize, "max": maxSize},
			"height": map[string]int{"min": minSize, "max": maxSize},
			"depth":  map[string]int{"min": 1, "max": maxDepth},
			"aa":     map[string]int{"min": 0, "max": maxGrid},
		},
	})
}

// createScene resolves a scene name. File names are looked up in the
// server's scene directory only.
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if sc, err := scene.ByName(sceneName); err == nil {
		return sc, nil
	}
	if s.sceneDir != "" {
		files, err := scene.ListFileScenes(s.sceneDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == sceneName {
				return scene.Load(info.FilePath)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", scene.ErrUnknownScene, sceneName)
}

// parseIntParam parses an integer parameter from URL query with validation.
// An absent parameter yields defaultValue clamped to [lo, hi], since scene
// files carry their own recommended settings.
func parseIntParam(values url.Values, key string, defaultValue, lo, hi int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < lo || parsed > hi {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, lo, hi, parsed)
		}
		return parsed, nil
	}
	return min(max(defaultValue, lo), hi), nil
}

// parseFloatParam parses a float parameter from URL query with validation.
// An absent parameter yields defaultValue clamped to [lo, hi].
func parseFloatParam(values url.Values, key string, defaultValue, lo, hi float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < lo || parsed > hi {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, lo, hi, parsed)
		}
		return parsed, nil
	}
	return min(max(defaultValue, lo), hi), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
