package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// sseEvent is one parsed Server-Sent Event
type sseEvent struct {
	Type string
	Data string
}

// parseSSE splits a response body into events
func parseSSE(body string) []sseEvent {
	var events []sseEvent
	for _, block := range strings.Split(body, "\n\n") {
		var event sseEvent
		for _, line := range strings.Split(block, "\n") {
			if value, ok := strings.CutPrefix(line, "event: "); ok {
				event.Type = value
			} else if value, ok := strings.CutPrefix(line, "data: "); ok {
				event.Data = value
			}
		}
		if event.Type != "" {
			events = append(events, event)
		}
	}
	return events
}

func newTestServer() *Server {
	return NewServer(0, "", ".", nil)
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := serve(t, newTestServer(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := serve(t, newTestServer(), httptest.NewRequest(http.MethodGet, "/api/scenes", nil))

	var body struct {
		Default string `json:"default"`
		Groups  []struct {
			Name   string `json:"name"`
			Scenes []struct {
				ID string `json:"id"`
			} `json:"scenes"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	if body.Default != scene.DefaultSceneID {
		t.Errorf("Expected default %s, got %s", scene.DefaultSceneID, body.Default)
	}
	count := 0
	for _, group := range body.Groups {
		count += len(group.Scenes)
	}
	if count != len(scene.IDs()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.IDs()), count)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/scene-config?scene=cornell", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body struct {
		Scene    string `json:"scene"`
		Defaults struct {
			Width           int `json:"width"`
			Height          int `json:"height"`
			SamplesPerPixel int `json:"samplesPerPixel"`
			MaxDepth        int `json:"maxDepth"`
		} `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Scene != "cornell" || body.Defaults.Width != 600 || body.Defaults.Height != 600 {
		t.Errorf("Unexpected cornell defaults %+v", body)
	}
	if body.Defaults.SamplesPerPixel != 400 || body.Defaults.MaxDepth != 50 {
		t.Errorf("Unexpected cornell sampling defaults %+v", body.Defaults)
	}

	rec = serve(t, s, httptest.NewRequest(http.MethodGet, "/api/scene-config?scene=teapot", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown scene, got %d", rec.Code)
	}
}

func TestParseRenderRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"defaults", "", false},
		{"all set", "scene=empty&width=32&maxSamples=4&maxPasses=2&maxDepth=5&seed=7", false},
		{"unknown scene", "scene=teapot", true},
		{"width too small", "width=4", true},
		{"width not a number", "width=wide", true},
		{"zero samples", "maxSamples=0", true},
		{"too many passes", "maxPasses=101", true},
		{"negative depth", "maxDepth=-1", true},
		{"bad seed", "seed=x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil)
			_, err := parseRenderRequest(req.URL.Query())
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/render", nil)
	parsed, err := parseRenderRequest(req.URL.Query())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed.Scene != "cornell" || parsed.Width != 400 || parsed.MaxSamples != 50 || parsed.MaxPasses != 7 || parsed.Seed != 42 {
		t.Errorf("Unexpected defaults %+v", parsed)
	}
}

func TestHandleRender_StreamsPasses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=empty&width=16&maxSamples=2&maxPasses=2", nil)
	rec := serve(t, newTestServer(), req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Expected event stream, got %q", ct)
	}

	events := parseSSE(rec.Body.String())
	var progress []ProgressUpdate
	consoleCount := 0
	for _, event := range events {
		switch event.Type {
		case "progress":
			var update ProgressUpdate
			if err := json.Unmarshal([]byte(event.Data), &update); err != nil {
				t.Fatalf("Failed to decode progress event: %v", err)
			}
			progress = append(progress, update)
		case "console":
			consoleCount++
		case "error":
			t.Fatalf("Unexpected error event: %s", event.Data)
		}
	}

	if len(progress) != 2 {
		t.Fatalf("Expected 2 progress events, got %d", len(progress))
	}
	if consoleCount == 0 {
		t.Error("Expected console events from the renderer")
	}
	if last := events[len(events)-1]; last.Type != "complete" {
		t.Errorf("Expected stream to end with complete, got %s", last.Type)
	}

	final := progress[1]
	if !final.IsComplete || final.PassNumber != 2 || final.TotalPasses != 2 {
		t.Errorf("Unexpected final update %+v", final)
	}
	if final.Stats.TotalPixels != 16*10 || final.Stats.MinSamples != 2 {
		t.Errorf("Unexpected final stats %+v", final.Stats)
	}

	raw, err := base64.StdEncoding.DecodeString(final.ImageData)
	if err != nil {
		t.Fatalf("Failed to decode image data: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 16 || bounds.Dy() != 10 {
		t.Errorf("Expected 16x10 image, got %v", bounds)
	}
}

func TestHandleRender_CancelledClientGetsNoCompletion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=empty&width=16&maxSamples=2", nil).WithContext(ctx)
	rec := serve(t, newTestServer(), req)

	for _, event := range parseSSE(rec.Body.String()) {
		if event.Type == "complete" || event.Type == "progress" || event.Type == "error" {
			t.Errorf("Unexpected %s event after cancellation", event.Type)
		}
	}
}

func TestHandleRender_InvalidRequest(t *testing.T) {
	rec := serve(t, newTestServer(), httptest.NewRequest(http.MethodGet, "/api/render?scene=teapot", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestHandler_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>preview</html>"), 0644); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}

	rec := serve(t, NewServer(0, dir, ".", nil), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "preview") {
		t.Errorf("Expected index page, got %d %q", rec.Code, rec.Body.String())
	}

	// Without a static directory only the API is served
	api := newTestServer()
	if rec := serve(t, api, httptest.NewRequest(http.MethodGet, "/", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for / without static files, got %d", rec.Code)
	}
	if rec := serve(t, api, httptest.NewRequest(http.MethodGet, "/api/health", nil)); rec.Code != http.StatusOK {
		t.Errorf("Expected API to stay available, got %d", rec.Code)
	}
}
