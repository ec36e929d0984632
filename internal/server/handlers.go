package server

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/waffle/pkg/buildinfo"
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/demo"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/observability"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz",
	pipeline.FormatGraph: "image/svg+xml",
}

// LocateResponse is the body of a locate reply.
type LocateResponse struct {
	Found   bool     `json:"found"`
	Index   int      `json:"index"`
	Series  string   `json:"series,omitempty"`
	AnchorX float64  `json:"anchor_x"`
	AnchorY float64  `json:"anchor_y"`
	Row     data.Row `json:"row,omitempty"`
	Lines   []string `json:"lines,omitempty"`
}

// ErrorResponse is the body of an error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of the health reply.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Stats  *StatsSnapshot `json:"stats,omitempty"`
}

// handleRender renders the posted document in one format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	_, _ = w.Write(result.Artifacts[format])
}

// handleLocate resolves a pointer position against the posted document.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	x, err := floatParam(q.Get("x"), "x", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	y, err := floatParam(q.Get("y"), "y", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := sizeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h, lines, found, err := s.runner.Locate(r.Context(), doc, opts, x, y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := LocateResponse{Found: found}
	if found {
		resp.Index = h.Index
		resp.Series = h.Series
		resp.AnchorX, resp.AnchorY = h.Anchor.X, h.Anchor.Y
		resp.Row = h.Row
		resp.Lines = lines
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleGalleryIndex serves the demo gallery page.
func (s *Server) handleGalleryIndex(w http.ResponseWriter, r *http.Request) {
	entries := demo.Filter(demo.Gallery(s.config.Seed), r.URL.Query().Get("q"), r.URL.Query().Get("tag"))
	cards := demo.Cards(entries, func(e demo.Entry) string {
		return "/gallery/" + string(e.Kind) + ".svg"
	})

	var buf bytes.Buffer
	if err := demo.WriteIndex(&buf, "waffle gallery", cards); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render gallery"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleGalleryChart serves one demo chart as SVG.
func (s *Server) handleGalleryChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, ok := strings.CutSuffix(file, ".svg")
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no gallery chart %q", file))
		return
	}
	kind, err := chart.ParseKind(name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "no gallery chart %q", file))
		return
	}
	doc, err := demo.Document(kind, s.config.Seed)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "no gallery chart %q", file))
		return
	}

	result, err := s.runner.Execute(r.Context(), doc, pipeline.Options{
		Formats:     []string{pipeline.FormatSVG},
		Interactive: true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// handleHealth reports that the server is up.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok", Build: buildinfo.Get()}
	if s.stats != nil {
		snap := s.stats.Snapshot()
		resp.Stats = &snap
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Request Parsing
// =============================================================================

// decode reads the posted document.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*document.Document, error) {
	format, err := documentFormat(r)
	if err != nil {
		return nil, err
	}
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	defer body.Close()
	return document.Decode(body, format)
}

// documentFormat picks the document encoding from ?type= or Content-Type.
func documentFormat(r *http.Request) (document.Format, error) {
	if t := r.URL.Query().Get("type"); t != "" {
		switch f := document.Format(strings.ToLower(t)); f {
		case document.FormatJSON, document.FormatYAML, document.FormatTOML:
			return f, nil
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document type %q", t)
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return document.FormatJSON, nil
	}
	switch {
	case strings.Contains(mt, "yaml"):
		return document.FormatYAML, nil
	case strings.Contains(mt, "toml"):
		return document.FormatTOML, nil
	}
	return document.FormatJSON, nil
}

// renderOptions reads pipeline options from the query string.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	opts, err := sizeOptions(r)
	if err != nil {
		return opts, err
	}
	q := r.URL.Query()

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}
	opts.Title = q.Get("title")
	opts.Background = q.Get("background")
	opts.Interactive, _ = strconv.ParseBool(q.Get("interactive"))
	opts.Refresh, _ = strconv.ParseBool(q.Get("refresh"))
	if hover := q.Get("hover"); hover != "" {
		p, err := pipeline.ParsePointer(hover)
		if err != nil {
			return opts, err
		}
		opts.Hover = p
	}
	if scale := q.Get("scale"); scale != "" {
		v, err := floatParam(scale, "scale", 0)
		if err != nil {
			return opts, err
		}
		opts.Scale = v
	}
	return opts, nil
}

// sizeOptions reads kind, width and height from the query string.
func sizeOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error
	opts.Kind = q.Get("kind")
	if opts.Width, err = floatParam(q.Get("width"), "width", 0); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height", 0); err != nil {
		return opts, err
	}
	return opts, nil
}

// floatParam parses a numeric query parameter, returning def when empty.
func floatParam(s, name string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
	}
	return v, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// =============================================================================
// Responses
// =============================================================================

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

// writeError maps err onto an HTTP status and a JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "route", route, "error", err)
	} else {
		s.logger.Debug("request rejected", "id", RequestID(r.Context()), "route", route, "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}
