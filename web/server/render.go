package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string // Catalog scene ID
	Width      int    // Image width; height follows the scene's aspect ratio
	MaxSamples int    // Maximum samples per pixel
	MaxPasses  int    // Maximum number of passes
	MaxDepth   int    // Maximum bounces per path (0 = scene default)
	Seed       int64  // Scene layout and sampling seed
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// eventStream writes Server-Sent Events; only the handler goroutine uses it
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	err     error
}

// send writes one event and flushes it; after the first failed write all
// further events are dropped
func (es *eventStream) send(event, data string) {
	if es.err != nil {
		return
	}
	if _, es.err = fmt.Fprintf(es.w, "event: %s\ndata: %s\n\n", event, data); es.err != nil {
		return
	}
	es.flusher.Flush()
}

// sendJSON marshals v and sends it as one event
func (es *eventStream) sendJSON(event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		es.send("error", fmt.Sprintf("failed to encode %s event: %v", event, err))
		return
	}
	es.send(event, string(data))
}

// handleRender renders a catalog scene progressively and streams every pass
// as an SSE "progress" event. Console output of the render is streamed as
// "console" events; the stream ends with "complete" or "error".
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	setSSEHeaders(w)
	stream := &eventStream{w: w, flusher: flusher}
	ctx := r.Context()

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)

	raytracer, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		stream.send("error", err.Error())
		return
	}

	startTime := time.Now()
	passChan, errChan := raytracer.RenderProgressive(ctx)

	for passChan != nil {
		select {
		case msg := <-consoleChan:
			stream.sendJSON("console", msg)
		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.sendPass(stream, result, req, startTime)
		}
	}
	drainConsole(stream, consoleChan)

	if err := <-errChan; err != nil {
		if ctx.Err() == nil {
			stream.send("error", fmt.Sprintf("Rendering failed: %v", err))
		}
		return
	}
	stream.send("complete", "Rendering completed")
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// drainConsole forwards console messages still buffered after the last pass
func drainConsole(stream *eventStream, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			stream.sendJSON("console", msg)
		default:
			return
		}
	}
}

// setupRenderingPipeline builds the requested scene and a progressive
// raytracer for it
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*renderer.ProgressiveRaytracer, error) {
	sceneObj, err := scene.Build(req.Scene, scene.Options{
		Seed:       req.Seed,
		TextureDir: s.textureDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	sceneObj.SetWidth(req.Width)
	if sceneObj.SamplingConfig.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d is empty", sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height)
	}
	sceneObj.SamplingConfig.SamplesPerPixel = req.MaxSamples
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = req.MaxSamples
	config.MaxPasses = req.MaxPasses
	config.Seed = req.Seed

	return renderer.NewProgressiveRaytracer(sceneObj, config, logger), nil
}

// sendPass encodes a finished pass and sends it as a progress event
func (s *Server) sendPass(stream *eventStream, result renderer.PassResult, req *RenderRequest, startTime time.Time) {
	imageData, err := imageToBase64PNG(result.Image)
	if err != nil {
		stream.send("error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	stream.sendJSON("progress", ProgressUpdate{
		PassNumber:  result.PassNumber,
		TotalPasses: req.MaxPasses,
		ImageData:   imageData,
		Stats: Stats{
			TotalPixels:    result.Stats.TotalPixels,
			TotalSamples:   result.Stats.TotalSamples,
			AverageSamples: result.Stats.AverageSamples,
			MaxSamples:     result.Stats.MaxSamples,
			MinSamples:     result.Stats.MinSamples,
			MaxSamplesUsed: result.Stats.MaxSamplesUsed,
		},
		IsComplete: result.IsLast,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	})
}

// parseRenderRequest parses and validates the render query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}
	if _, err := scene.Lookup(req.Scene); err != nil {
		return nil, err
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, MinWidth, MaxWidth); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(values, "maxSamples", 50, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(values, "maxPasses", 7, 1, MaxPasses); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 0, MaxDepthLimit); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(values, 42); err != nil {
		return nil, err
	}
	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, renderer.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
