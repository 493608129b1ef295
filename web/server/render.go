package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/raster"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Request limits. A surface that both reflects and transmits splits every
// ray in two, so a pixel may cost up to 2^(depth+1) rays per sample.
const (
	minSize  = 1
	maxSize  = 2000
	maxDepth = 12
	maxGrid  = 16
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string  `json:"scene"`  // Scene name or scene file ID
	Width  int     `json:"width"`  // Image width
	Height int     `json:"height"` // Image height
	Depth  int     `json:"depth"`  // Combined reflection/transparency budget
	AA     int     `json:"aa"`     // Antialiasing grid size, 0 = off
	Stereo bool    `json:"stereo"` // Render a red/cyan anaglyph
	IPD    float64 `json:"ipd"`    // Interocular distance for stereo renders
	Eye    string  `json:"eye"`    // "composite", "left" or "right"
	Format string  `json:"format"` // "png" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	TotalRays   int     `json:"totalRays"`
	AverageRays float64 `json:"averageRays"`
	MinRays     int     `json:"minRays"`
	MaxRays     int     `json:"maxRays"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// RenderResponse is returned for format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels: rs.TotalPixels,
		TotalRays:   rs.TotalRays,
		AverageRays: rs.AverageRays,
		MinRays:     rs.MinRays,
		MaxRays:     rs.MaxRays,
		ElapsedMs:   rs.Elapsed.Milliseconds(),
	}
}

// handleRender renders a scene and returns it as a PNG, or as JSON with
// the PNG embedded when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Use request context to detect client disconnection
	ctx := r.Context()
	if err := s.renders.Acquire(ctx, 1); err != nil {
		writeError(w, http.StatusServiceUnavailable, "render cancelled while waiting for a slot")
		return
	}
	defer s.renders.Release(1)

	renderID := fmt.Sprintf("render-%d", s.nextID.Add(1))
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)

	buf, stats, err := s.render(ctx, req, sceneObj, logger)
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("[%s] client went away: %v", renderID, err)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	if req.Format == "json" {
		imageData, err := s.imageToBase64PNG(buf)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			ImageData: imageData,
			Stats:     newStats(stats),
			Console:   drainConsole(consoleChan),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Rays", strconv.Itoa(stats.TotalRays))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	if err := buf.Encode(w); err != nil {
		log.Printf("[%s] writing image: %v", renderID, err)
	}
}

// render runs a mono or stereo render and picks the requested image
func (s *Server) render(ctx context.Context, req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) (*raster.Buffer, renderer.RenderStats, error) {
	config := renderer.ConfigFromScene(sceneObj)
	config.Width = req.Width
	config.Height = req.Height
	config.MaxDepth = req.Depth
	config.Antialiasing = renderer.Off()
	if req.AA > 0 {
		config.Antialiasing = renderer.Grid(req.AA)
	}

	if !req.Stereo {
		return renderer.NewRaytracer(sceneObj, config, logger).Render(ctx)
	}

	result, err := renderer.NewAnaglyph(sceneObj, config, req.IPD, logger).Render(ctx)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	stats := result.LeftStats.Merge(result.RightStats)
	switch req.Eye {
	case "left":
		return result.Left, stats, nil
	case "right":
		return result.Right, stats, nil
	default:
		return result.Composite, stats, nil
	}
}

// parseRenderRequest parses request parameters. Unset parameters default to
// the scene's recommended settings.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}
	defaults := renderer.ConfigFromScene(sceneObj)

	if req.Width, err = parseIntParam(query, "width", defaults.Width, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, nil, err
	}
	if req.AA, err = parseIntParam(query, "aa", defaults.Antialiasing.GridSize, 0, maxGrid); err != nil {
		return nil, nil, err
	}
	if req.IPD, err = parseFloatParam(query, "ipd", 0.3, 0, 10); err != nil {
		return nil, nil, err
	}
	if stereo := query.Get("stereo"); stereo != "" {
		if req.Stereo, err = strconv.ParseBool(stereo); err != nil {
			return nil, nil, fmt.Errorf("invalid stereo: %s", stereo)
		}
	}

	req.Eye = query.Get("eye")
	switch req.Eye {
	case "", "composite", "left", "right":
	default:
		return nil, nil, fmt.Errorf("invalid eye: %s", req.Eye)
	}

	req.Format = query.Get("format")
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, nil, fmt.Errorf("invalid format: %s", req.Format)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.AA > 4 {
		log.Printf("Render warning: Large image with heavy antialiasing may render slowly")
	}

	return req, sceneObj, nil
}

// imageToBase64PNG converts a buffer to base64-encoded PNG
func (s *Server) imageToBase64PNG(buf *raster.Buffer) (string, error) {
	var out bytes.Buffer
	if err := buf.Encode(&out); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}
