// Package web serves the diagram page: a single-page editor shell plus the
// JSON render endpoint it calls.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"classview/geometry"
	"classview/render"
	"classview/router"
	"classview/scene"
)

// Server is the HTTP front end. One server handles any number of concurrent
// render requests; each request gets its own renderer configured from the
// request body.
type Server struct {
	addr string
	log  *slog.Logger
}

// NewServer creates a server listening on addr once started.
func NewServer(addr string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{addr: addr, log: log}
}

// RenderRequest is the /render request body. Offsets carries per-class drag
// displacements to re-apply to the fresh render; edges touching moved nodes
// are re-routed before the SVG is returned.
type RenderRequest struct {
	Source  string                `json:"source"`
	Theme   string                `json:"theme,omitempty"`
	Curved  bool                  `json:"curved,omitempty"`
	Offsets map[string][2]float64 `json:"offsets,omitempty"`
}

// RenderResponse is the /render response body. Error is set instead of SVG
// when the source does not parse.
type RenderResponse struct {
	RenderID string `json:"render_id"`
	SVG      string `json:"svg,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.addr, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	theme := render.ThemeLight
	if req.Theme == string(render.ThemeDark) {
		theme = render.ThemeDark
	}

	res, err := render.NewClassRenderer(theme, req.Curved, s.log).Render(r.Context(), req.Source)
	resp := RenderResponse{RenderID: res.ID}
	status := http.StatusOK
	if err != nil {
		// Parse failures surface in the page inline rather than as a
		// transport error, but still mark the response unprocessable.
		resp.Error = err.Error()
		status = http.StatusUnprocessableEntity
		s.log.Debug("render failed", "render_id", res.ID, "error", err)
	} else {
		resp.SVG = s.applyOffsets(res.SVG, req.Offsets, req.Curved)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("writing render response", "error", err)
	}
}

// applyOffsets re-applies drag displacements to a fresh render and re-routes
// the affected edges. Unknown class names are ignored; any failure falls back
// to the untouched markup.
func (s *Server) applyOffsets(svg string, offsets map[string][2]float64, curved bool) string {
	if len(offsets) == 0 {
		return svg
	}
	sc, err := scene.Build(svg, s.log)
	if err != nil {
		s.log.Warn("rebuilding scene for offsets", "error", err)
		return svg
	}
	cfg := router.DefaultConfig()
	cfg.Curved = curved
	eng := router.NewEngine(sc, cfg, s.log)
	for id, d := range offsets {
		sc.SetNodeOffset(id, geometry.Point{X: d[0], Y: d[1]})
		eng.Reroute(id)
	}
	return sc.SVG()
}
