// Package api serves the geometry of charts over HTTP and resolves the
// pointer events of a candlestick chart sent over a websocket.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/midbel/charts/v2"
	"github.com/midbel/charts/v2/config"
)

const maxBodySize = 8 << 20

type Server struct {
	router chi.Router
	cfg    *config.Config
}

func NewServer(cfg *config.Config) *Server {
	s := Server{
		cfg: cfg,
	}
	s.router = s.buildRouter()
	return &s
}

func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves requests until ctx is done and then shuts the server
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.API.Addr(),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("api server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down api server")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.API.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Get("/config", s.handleConfig)
			r.Post("/stack", s.handleStack)
			r.Post("/zoom", s.handleZoom)
			r.Post("/dash", s.handleDash)
		})
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type StackRequest struct {
	Rows       []Row    `json:"rows"`
	Categories []string `json:"categories,omitempty"`
	Hide       []string `json:"hide,omitempty"`
}

type ZoomRequest struct {
	Candles  []Candle  `json:"candles"`
	Window   *[2]int   `json:"window,omitempty"`
	Brush    []float64 `json:"brush,omitempty"`
	RescaleY *bool     `json:"rescale_y,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
}

type DashRequest struct {
	Pattern []int   `json:"pattern"`
	Length  float64 `json:"length"`
	Steps   int     `json:"steps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]string{
			"status": "ok",
		},
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.cfg,
	})
}

func (s *Server) handleStack(w http.ResponseWriter, r *http.Request) {
	var req StackRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := make([]charts.Row[string], 0, len(req.Rows))
	for _, x := range req.Rows {
		rows = append(rows, x.Row())
	}
	view := Stacked(s.cfg.Options(), s.cfg.Chart.Inner, s.cfg.Chart.Outer, rows, req.Categories, req.Hide)
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req ZoomRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := Candles(req.Candles)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg := s.cfg.Options()
	if req.RescaleY != nil {
		cfg.RescaleY = *req.RescaleY
	}
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}
	kind := s.candlestick(cfg, rows)
	chart := charts.New(cfg, charts.Kind[time.Time](kind))

	switch {
	case len(req.Brush) == 2:
		err = kind.Brush(req.Brush[0], req.Brush[1])
	case len(req.Brush) != 0:
		err = fmt.Errorf("brush expects two positions, got %d", len(req.Brush))
	case req.Window != nil:
		err = kind.Zoom(charts.Window{Start: req.Window[0], End: req.Window[1]})
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := Zoom(chart, kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

func (s *Server) handleDash(w http.ResponseWriter, r *http.Request) {
	req := DashRequest{
		Pattern: s.cfg.Chart.Dash,
		Steps:   4,
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := CheckDash(req.Length, req.Steps); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    Dash(req.Pattern, req.Length, req.Steps),
	})
}

func (s *Server) candlestick(cfg charts.Config, rows []charts.Candle[time.Time]) *charts.CandleChart[time.Time] {
	kind := charts.Candlestick(rows)
	kind.RescaleY = cfg.RescaleY
	kind.Duration = cfg.Duration
	kind.Padding(s.cfg.Chart.Inner, s.cfg.Chart.Outer)
	return kind
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ww    = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start = time.Now()
		)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
