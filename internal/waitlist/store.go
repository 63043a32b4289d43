// Package waitlist persists waitlist sign-ups and handles the public forms.
package waitlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/storage"
)

// ObjectName is the storage object holding every entry
const ObjectName = "waitlist.json"

// Store keeps waitlist entries in a single JSON document keyed by
// lower-cased e-mail
type Store struct {
	storage storage.StorageInterface
	mu      sync.Mutex
	now     func() time.Time
}

// NewStore creates a store on top of the given storage backend
func NewStore(storage storage.StorageInterface) *Store {
	return &Store{storage: storage, now: time.Now}
}

func (s *Store) load() ([]models.WaitlistEntry, error) {
	data, err := s.storage.Retrieve(ObjectName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load waitlist: %w", err)
	}

	var entries []models.WaitlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.Warnf("Waitlist document is unreadable, starting empty: %v", err)
		return nil, nil
	}
	return entries, nil
}

func (s *Store) save(entries []models.WaitlistEntry) error {
	if entries == nil {
		entries = []models.WaitlistEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal waitlist: %w", err)
	}
	if err := s.storage.Store(ObjectName, data); err != nil {
		return fmt.Errorf("failed to save waitlist: %w", err)
	}
	return nil
}

func find(entries []models.WaitlistEntry, email string) int {
	key := strings.ToLower(email)
	for i := range entries {
		if strings.ToLower(entries[i].Email) == key {
			return i
		}
	}
	return -1
}

// Upsert adds an entry for email or updates the existing one. A repeat
// submission replaces the brand URL, and the preview when one is given, but
// keeps the original id, e-mail spelling, creation time and status.
func (s *Store) Upsert(email, brandURL string, preview *models.PreviewData) (models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	now := s.now()
	idx := find(entries, email)
	if idx >= 0 {
		entries[idx].BrandURL = brandURL
		entries[idx].UpdatedAt = now
		if preview != nil {
			entries[idx].PreviewData = preview
		}
	} else {
		entries = append(entries, models.WaitlistEntry{
			ID:          uuid.NewString(),
			Email:       email,
			BrandURL:    brandURL,
			CreatedAt:   now,
			UpdatedAt:   now,
			Status:      models.WaitlistPending,
			PreviewData: preview,
		})
		idx = len(entries) - 1
	}

	if err := s.save(entries); err != nil {
		return models.WaitlistEntry{}, err
	}
	return entries[idx], nil
}

// Get returns the entry for email, or storage.ErrNotFound
func (s *Store) Get(email string) (models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	idx := find(entries, email)
	if idx < 0 {
		return models.WaitlistEntry{}, fmt.Errorf("waitlist entry %s: %w", email, storage.ErrNotFound)
	}
	return entries[idx], nil
}

// List returns every entry in insertion order
func (s *Store) List() ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// UpdateStatus sets the delivery status of the entry for email
func (s *Store) UpdateStatus(email string, status models.WaitlistStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	idx := find(entries, email)
	if idx < 0 {
		return fmt.Errorf("waitlist entry %s: %w", email, storage.ErrNotFound)
	}

	entries[idx].Status = status
	entries[idx].UpdatedAt = s.now()
	return s.save(entries)
}

// Stats counts entries by status
func (s *Store) Stats() (models.WaitlistStats, error) {
	entries, err := s.List()
	if err != nil {
		return models.WaitlistStats{}, err
	}

	stats := models.WaitlistStats{Total: len(entries)}
	for _, entry := range entries {
		switch entry.Status {
		case models.WaitlistPending:
			stats.Pending++
		case models.WaitlistSent:
			stats.Sent++
		case models.WaitlistError:
			stats.Error++
		}
	}
	return stats, nil
}
