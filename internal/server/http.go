package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/valpere/tradcompare/internal/compare"
	"github.com/valpere/tradcompare/internal/language"
	"github.com/valpere/tradcompare/internal/translator"
)

// maxRequestBytes bounds the compare request body.
const maxRequestBytes = 1 << 20

// HTTPServer exposes the comparison driver as a JSON API.
type HTTPServer struct {
	driver *compare.Driver
	logger *logrus.Logger
	addr   string
}

func NewHTTPServer(driver *compare.Driver, logger *logrus.Logger, addr string) *HTTPServer {
	return &HTTPServer{
		driver: driver,
		logger: logger,
		addr:   addr,
	}
}

func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/compare", s.handleCompare)
	mux.HandleFunc("GET /api/v1/languages", s.handleLanguages)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr": s.addr,
		}).Info("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type compareRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// CompareEntry is one backend's column in a comparison response.
type CompareEntry struct {
	Backend        string  `json:"backend"`
	Text           string  `json:"text"`
	Supported      bool    `json:"supported"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Error          string  `json:"error,omitempty"`
}

// CompareResponse is the JSON form of a comparison report, shared by the
// API and the CLI's --json output.
type CompareResponse struct {
	ID      string         `json:"id,omitempty"`
	Source  string         `json:"source"`
	Target  string         `json:"target"`
	Results []CompareEntry `json:"results"`
	Error   string         `json:"error,omitempty"`
}

func (s *HTTPServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	var body compareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	source, err := language.Parse(body.Source)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "source: "+err.Error())
		return
	}
	target, err := language.Parse(body.Target)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "target: "+err.Error())
		return
	}

	report, err := s.driver.Compare(r.Context(), translator.Request{
		Text:   body.Text,
		Source: source,
		Target: target,
	})
	if errors.Is(err, translator.ErrInvalidRequest) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := NewCompareResponse(source, target, report, err)

	status := http.StatusOK
	if err != nil {
		s.logger.WithError(err).Warn("Comparison failed")
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, resp)
}

// NewCompareResponse renders report, which may be partial or nil, and the
// run error if any.
func NewCompareResponse(source, target language.Language, report *compare.Report, err error) CompareResponse {
	resp := CompareResponse{
		Source:  source.String(),
		Target:  target.String(),
		Results: []CompareEntry{},
	}
	if report != nil {
		resp.ID = report.ID
		for _, e := range report.Entries {
			resp.Results = append(resp.Results, toCompareEntry(e))
		}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func toCompareEntry(e compare.Entry) CompareEntry {
	out := CompareEntry{
		Backend:        e.Backend,
		Supported:      e.Result.Supported(),
		ElapsedSeconds: e.Elapsed.Seconds(),
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
		out.Supported = false
		return out
	}
	out.Text = e.Result.String()
	return out
}

type languageInfo struct {
	Name     string   `json:"name"`
	Backends []string `json:"backends"`
}

func (s *HTTPServer) handleLanguages(w http.ResponseWriter, r *http.Request) {
	out := make([]languageInfo, 0)
	for _, l := range language.All() {
		info := languageInfo{Name: l.String(), Backends: []string{}}
		for _, b := range s.driver.Backends() {
			for _, supported := range b.SupportedLanguages() {
				if supported == l {
					info.Backends = append(info.Backends, b.Name())
					break
				}
			}
		}
		out = append(out, info)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"status": status,
		}).Error("Failed to write JSON response")
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
