// Package history keeps snapshots of completed analyses.
package history

import (
	"sync"

	"github.com/visibi/brand-monitor/internal/models"
)

// Store defines the contract for analysis history. Entries are only ever
// appended or cleared as a whole.
type Store interface {
	Append(analysis models.AnalysisResponse)
	Recent(limit int) []models.AnalysisResponse
	Count() int
	Clear() int
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu       sync.RWMutex
	analyses []models.AnalysisResponse
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty history
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores a copy of analysis
func (s *MemoryStore) Append(analysis models.AnalysisResponse) {
	snapshot := analysis
	snapshot.Analysis = append([]models.QueryAnalysis(nil), analysis.Analysis...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append(s.analyses, snapshot)
}

// Recent returns up to limit analyses, most recent first
func (s *MemoryStore) Recent(limit int) []models.AnalysisResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.analyses) {
		limit = len(s.analyses)
	}

	recent := make([]models.AnalysisResponse, 0, limit)
	for i := len(s.analyses) - 1; i >= len(s.analyses)-limit; i-- {
		snapshot := s.analyses[i]
		snapshot.Analysis = append([]models.QueryAnalysis(nil), snapshot.Analysis...)
		recent = append(recent, snapshot)
	}
	return recent
}

// Count returns the number of stored analyses
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses)
}

// Clear removes every analysis and returns how many were removed
func (s *MemoryStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.analyses)
	s.analyses = nil
	return count
}
