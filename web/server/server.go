package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits shared by the render and scene-config endpoints
const (
	MinWidth      = 16
	MaxWidth      = 2000
	MaxSamples    = 10000
	MaxPasses     = 100
	MaxDepthLimit = 1000
)

// Server handles web requests for the path tracer preview
type Server struct {
	port       int
	staticDir  string // Served at "/" when non-empty
	textureDir string // Passed to scenes that load image textures
	logger     core.Logger
}

// NewServer creates a new web server
func NewServer(port int, staticDir, textureDir string, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{
		port:       port,
		staticDir:  staticDir,
		textureDir: textureDir,
		logger:     logger,
	}
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
}

// Handler returns the routes served by the preview server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("GET /api/render", s.handleRender)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("Starting web server on http://localhost%s\n", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the scene catalog grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneEntry struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
	}
	type groupEntry struct {
		Name   string       `json:"name"`
		Scenes []sceneEntry `json:"scenes"`
	}

	groups := []groupEntry{}
	for _, group := range scene.Groups() {
		entry := groupEntry{Name: group.Name}
		for _, info := range group.Scenes {
			entry.Scenes = append(entry.Scenes, sceneEntry{
				ID:          info.ID,
				DisplayName: info.DisplayName,
				Description: info.Description,
			})
		}
		groups = append(groups, entry)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": scene.DefaultSceneID,
		"groups":  groups,
	})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneID
	}

	sceneObj, err := scene.Build(sceneName, scene.Options{
		Seed:       42,
		TextureDir: s.textureDir,
		Logger:     core.NopLogger{},
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.GetSamplingConfig()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": MinWidth, "max": MaxWidth},
			"maxSamples": map[string]int{"min": 1, "max": MaxSamples},
			"maxPasses":  map[string]int{"min": 1, "max": MaxPasses},
			"maxDepth":   map[string]int{"min": 1, "max": MaxDepthLimit},
		},
	})
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseSeedParam parses an optional int64 seed
func parseSeedParam(values url.Values, defaultValue int64) (int64, error) {
	value := values.Get("seed")
	if value == "" {
		return defaultValue, nil
	}
	seed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed: %s", value)
	}
	return seed, nil
}
