// Package api exposes the brand monitor over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/history"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/monitoring"
	"github.com/visibi/brand-monitor/internal/scheduler"
)

const maxBodyBytes = 1 << 20

// Forms handles the public waitlist, brand analysis and contact forms
type Forms interface {
	Join(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error)
	RequestAnalysis(ctx context.Context, req models.BrandAnalysisRequest) error
	Contact(ctx context.Context, req models.ContactRequest) error
	Stats() (models.WaitlistStats, error)
}

// Server routes HTTP requests to the analysis and form services
type Server struct {
	analyzer monitoring.Analyzer
	history  history.Store
	forms    Forms
	runner   scheduler.Runner

	analyzeTimeout time.Duration
}

// NewServer creates the HTTP API. runner may be nil, which disables the
// manual trigger endpoint.
func NewServer(analyzer monitoring.Analyzer, historyStore history.Store, forms Forms, runner scheduler.Runner) *Server {
	return &Server{
		analyzer: analyzer,
		history:  historyStore,
		forms:    forms,
		runner:   runner,
	}
}

// WithAnalyzeTimeout bounds every analysis request. Zero leaves the request
// context as is.
func (s *Server) WithAnalyzeTimeout(timeout time.Duration) *Server {
	s.analyzeTimeout = timeout
	return s
}

// Handler returns the routed handler with logging and CORS applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	if s.runner != nil {
		router.HandleFunc("/trigger", s.handleTrigger).Methods(http.MethodPost)
	}

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/brands/analyze", s.handleAnalyze).Methods(http.MethodPost)
	apiRouter.HandleFunc("/brands/history", s.handleHistory).Methods(http.MethodGet)
	apiRouter.HandleFunc("/brands/history", s.handleClearHistory).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/waitlist", s.handleWaitlist).Methods(http.MethodPost)
	apiRouter.HandleFunc("/waitlist/stats", s.handleWaitlistStats).Methods(http.MethodGet)
	apiRouter.HandleFunc("/brand-analysis", s.handleBrandAnalysis).Methods(http.MethodPost)
	apiRouter.HandleFunc("/send-email", s.handleSendEmail).Methods(http.MethodPost)

	router.Use(withLogging)

	// CORS wraps the router so preflight requests never reach method matching
	return withCORS(router)
}

// withCORS allows any origin, method and header
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Errorf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes the classified error
func errorResponse(w http.ResponseWriter, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("Request failed with %d: %v", status, err)
	}
	jsonResponse(w, status, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrBadRequest{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
