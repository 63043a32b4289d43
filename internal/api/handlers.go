package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/models"
)

const defaultHistoryLimit = 10

// HealthResponse is returned by /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse lists recent analyses, most recent first
type HistoryResponse struct {
	Analyses   []models.AnalysisResponse `json:"analyses"`
	TotalCount int                       `json:"total_count"`
}

// ClearHistoryResponse reports how many analyses were removed
type ClearHistoryResponse struct {
	Message      string `json:"message"`
	ItemsDeleted int    `json:"items_deleted"`
}

// WaitlistResponse is returned after a waitlist sign-up
type WaitlistResponse struct {
	Message string                `json:"message"`
	Email   string                `json:"email"`
	Status  models.WaitlistStatus `json:"status"`
	Preview *models.PreviewData   `json:"preview,omitempty"`
}

// MessageResponse carries a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"message": config.AppName + " API",
		"version": config.Version,
		"health":  "/health",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   config.Version,
		Timestamp: time.Now(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.analyzer.GetMetrics()))
}

func (s *Server) handleTrigger(w http.ResponseWriter, _ *http.Request) {
	go func() {
		if err := s.runner.RunScheduled(); err != nil {
			logrus.Errorf("Manual monitoring trigger failed: %v", err)
		}
	}()

	jsonResponse(w, http.StatusAccepted, MessageResponse{Message: "Monitoring triggered successfully"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	ctx := r.Context()
	if s.analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.analyzeTimeout)
		defer cancel()
	}

	response, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorResponse(w, &ErrBadRequest{Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	jsonResponse(w, http.StatusOK, HistoryResponse{
		Analyses:   s.history.Recent(limit),
		TotalCount: s.history.Count(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, _ *http.Request) {
	deleted := s.history.Clear()
	jsonResponse(w, http.StatusOK, ClearHistoryResponse{Message: "History cleared", ItemsDeleted: deleted})
}

func (s *Server) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	var req models.WaitlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	entry, err := s.forms.Join(r.Context(), req)
	if err != nil {
		errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, WaitlistResponse{
		Message: "Successfully joined the waitlist",
		Email:   entry.Email,
		Status:  entry.Status,
		Preview: entry.PreviewData,
	})
}

func (s *Server) handleWaitlistStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.forms.Stats()
	if err != nil {
		errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleBrandAnalysis(w http.ResponseWriter, r *http.Request) {
	var req models.BrandAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := s.forms.RequestAnalysis(r.Context(), req); err != nil {
		errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, MessageResponse{Message: "Brand analysis request received"})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	if err := s.forms.Contact(r.Context(), req); err != nil {
		errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, MessageResponse{Message: "Message sent successfully"})
}
