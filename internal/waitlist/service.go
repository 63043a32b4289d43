package waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/models"
	"github.com/visibi/brand-monitor/internal/notifications"
)

// Previewer runs the abbreviated analysis attached to a sign-up
type Previewer interface {
	Preview(ctx context.Context, req models.PreviewRequest) (*models.PreviewData, error)
}

// Service handles the waitlist, brand analysis and contact forms
type Service struct {
	store     *Store
	previewer Previewer
	notifier  notifications.NotificationInterface
}

// NewService creates a waitlist service
func NewService(store *Store, previewer Previewer, notifier notifications.NotificationInterface) *Service {
	return &Service{store: store, previewer: previewer, notifier: notifier}
}

// Stats counts waitlist entries by status
func (s *Service) Stats() (models.WaitlistStats, error) {
	return s.store.Stats()
}

// Join runs the preview for the sign-up, records it and sends the
// confirmation. The entry status reflects whether the confirmation went out.
func (s *Service) Join(ctx context.Context, req models.WaitlistRequest) (*models.WaitlistEntry, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	preview, err := s.previewer.Preview(ctx, req.PreviewRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to build preview for %s: %w", req.BrandURL, err)
	}

	entry, err := s.store.Upsert(req.Email, req.BrandURL, preview)
	if err != nil {
		return nil, err
	}

	status := models.WaitlistSent
	if err := s.notifier.SendWaitlistConfirmation(req.Email, req.BrandURL, preview); err != nil {
		logrus.Errorf("Failed to send waitlist confirmation to %s: %v", req.Email, err)
		status = models.WaitlistError
	}

	if err := s.notifier.SendAdminSignup(req.Email, req.BrandURL, preview); err != nil {
		logrus.Errorf("Failed to send admin signup notification: %v", err)
	}

	if err := s.store.UpdateStatus(req.Email, status); err != nil {
		return nil, err
	}
	entry.Status = status

	logrus.WithFields(logrus.Fields{
		"brand_url": req.BrandURL,
		"status":    status,
	}).Info("Waitlist signup recorded")

	return &entry, nil
}

// RequestAnalysis confirms a brand analysis request and forwards it to the
// admin. No preview is run.
func (s *Service) RequestAnalysis(ctx context.Context, req models.BrandAnalysisRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.notifier.SendBrandAnalysisConfirmation(req.Email, req.BrandURL); err != nil {
		return fmt.Errorf("failed to send brand analysis confirmation: %w", err)
	}

	if err := s.notifier.SendBrandAnalysisNotification(req); err != nil {
		logrus.Errorf("Failed to send brand analysis notification: %v", err)
	}

	logrus.Infof("Brand analysis requested for %s", req.BrandURL)
	return nil
}

// Contact confirms a contact form submission and forwards it to the admin
func (s *Service) Contact(ctx context.Context, req models.ContactRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.notifier.SendContactConfirmation(req.Email, req.Name); err != nil {
		return fmt.Errorf("failed to send contact confirmation: %w", err)
	}

	if err := s.notifier.SendContactNotification(req); err != nil {
		logrus.Errorf("Failed to send contact notification: %v", err)
	}

	logrus.Infof("Contact form submitted, topic %s", notifications.TopicLabel(req.Topic))
	return nil
}
