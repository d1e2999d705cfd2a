// Package server exposes the fitting pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness check
//	GET  /version      build information
//	POST /v1/fit       fit a deck and return snapshot JSON
//	POST /v1/fit.png   fit a deck and return a PNG contact sheet
//
// Request bodies are JSON:
//
//	{"markdown": "# Talk\n...", "aspect_ratio": "4:3", "mode": "print"}
//
// When the server has a deck root, "path" names a markdown file under it and
// images resolve relative to that file.
package server

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/slidefit/pkg/buildinfo"
	"github.com/matzehuels/slidefit/pkg/config"
	"github.com/matzehuels/slidefit/pkg/errors"
	"github.com/matzehuels/slidefit/pkg/observability"
	"github.com/matzehuels/slidefit/pkg/pipeline"
)

// Server serves fit requests backed by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
	root   fs.FS
}

// Option configures a [Server].
type Option func(*Server)

// WithRoot serves decks and images from dir.
func WithRoot(dir string) Option {
	return func(s *Server) { s.root = os.DirFS(dir) }
}

// WithRootFS is WithRoot for an arbitrary file system.
func WithRootFS(fsys fs.FS) Option {
	return func(s *Server) { s.root = fsys }
}

// New returns a server. Zero config fields fall back to [config.Default].
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger, opts ...Option) *Server {
	def := config.Default()
	if cfg.Server.Timeout.Duration <= 0 {
		cfg.Server.Timeout = def.Server.Timeout
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.Timeout.Duration))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/fit", s.handleFit)
		r.Post("/fit.png", s.handleFitPNG)
	})
	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdown)
	}
}

// fitRequest is the JSON body of the fit endpoints.
type fitRequest struct {
	Markdown    string  `json:"markdown"`
	Path        string  `json:"path"`
	Mode        string  `json:"mode"`
	AspectRatio string  `json:"aspect_ratio"`
	Width       float64 `json:"width"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
	Scale       float64 `json:"scale"`
	Columns     int     `json:"columns"`
	Refresh     bool    `json:"refresh"`
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	res, req, err := s.execute(w, r, pipeline.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setResultHeaders(w, res)
	w.Header().Set("Content-Type", "application/json")
	switch req.Mode {
	case pipeline.ModeBoth:
		writeJSON(w, http.StatusOK, map[string]json.RawMessage{
			pipeline.ModeScreen: res.Artifacts[pipeline.ArtifactName(pipeline.ModeScreen, pipeline.FormatJSON)],
			pipeline.ModePrint:  res.Artifacts[pipeline.ArtifactName(pipeline.ModePrint, pipeline.FormatJSON)],
		})
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[pipeline.ArtifactName(req.Mode, pipeline.FormatJSON)])
	}
}

func (s *Server) handleFitPNG(w http.ResponseWriter, r *http.Request) {
	res, req, err := s.execute(w, r, pipeline.FormatPNG)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setResultHeaders(w, res)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.ArtifactName(req.Mode, pipeline.FormatPNG)])
}

// execute decodes the request and runs the pipeline with a single format.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, format string) (*pipeline.Result, fitRequest, error) {
	var req fitRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		return nil, req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if req.Mode == "" {
		req.Mode = pipeline.ModeScreen
	}
	if format == pipeline.FormatPNG && req.Mode == pipeline.ModeBoth {
		return nil, req, errors.New(errors.ErrCodeInvalidMode, "png preview needs a single mode (screen or print)")
	}

	in, err := s.input(req)
	if err != nil {
		return nil, req, err
	}

	opts := pipeline.Options{
		Mode:        req.Mode,
		AspectRatio: firstString(req.AspectRatio, s.cfg.AspectRatio),
		Width:       firstFloat(req.Width, s.cfg.Width),
		PageWidth:   firstFloat(req.PageWidth, s.cfg.Print.PageWidth),
		PageHeight:  firstFloat(req.PageHeight, s.cfg.Print.PageHeight),
		Params:      s.cfg.Fit,
		Formats:     []string{format},
		Scale:       req.Scale,
		Columns:     req.Columns,
		Refresh:     req.Refresh,
		Logger:      s.logger.With("request_id", middleware.GetReqID(r.Context())),
	}
	res, err := s.runner.Execute(r.Context(), in, opts)
	return res, req, err
}

// input resolves the deck source of a request.
func (s *Server) input(req fitRequest) (pipeline.Input, error) {
	switch {
	case req.Path != "":
		if s.root == nil {
			return pipeline.Input{}, errors.New(errors.ErrCodeUnsupported, "server has no deck root; send markdown instead")
		}
		if err := errors.ValidatePath(req.Path); err != nil {
			return pipeline.Input{}, err
		}
		md, err := fs.ReadFile(s.root, req.Path)
		if err != nil {
			return pipeline.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck %q not found", req.Path)
		}
		return pipeline.Input{Markdown: md, FS: s.root, Path: req.Path}, nil
	case req.Markdown != "":
		in := pipeline.Input{Markdown: []byte(req.Markdown)}
		if s.root != nil {
			in.FS, in.Path = s.root, "deck.md"
		}
		return in, nil
	default:
		return pipeline.Input{}, errors.New(errors.ErrCodeInvalidInput, "request needs markdown or path")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if r.Context().Err() == context.DeadlineExceeded {
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"error":      errors.UserMessage(err),
		"code":       string(code),
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.CodeOf(err).Kind() {
	case errors.KindInvalid:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindUnsupported:
		return http.StatusNotImplemented
	case errors.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func setResultHeaders(w http.ResponseWriter, res *pipeline.Result) {
	h := w.Header()
	h.Set("X-Slidefit-Deck-Hash", res.DeckHash)
	if res.CacheInfo.FitHit {
		h.Set("X-Slidefit-Cache", "hit")
	} else {
		h.Set("X-Slidefit-Cache", "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID tags each request with a UUID unless the client sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports requests to the registered server hooks and the log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func firstString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func firstFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
