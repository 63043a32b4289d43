package notifications

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/models"
)

// Service renders and sends notifications via the configured channels
type Service struct {
	config   *config.Config
	provider EmailProvider
	client   *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a notification service. E-mails go through SMTP when it
// is fully configured and are printed to stdout otherwise.
func NewService(cfg *config.Config) *Service {
	var provider EmailProvider
	if cfg.SMTPConfigured() {
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	} else {
		logrus.Warn("No email configuration found, using console output mode. Set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD and FROM_EMAIL to enable email sending")
		provider = NewConsoleProvider(os.Stdout)
	}
	return NewServiceWithProvider(cfg, provider)
}

// NewServiceWithProvider creates a notification service with an explicit provider
func NewServiceWithProvider(cfg *config.Config, provider EmailProvider) *Service {
	return &Service{
		config:   cfg,
		provider: provider,
		client:   resty.New().SetTimeout(30 * time.Second),
	}
}

// ProviderName returns the name of the active e-mail provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func (s *Service) send(to, subject, templateName string, data any) error {
	text, html, err := render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", templateName, err)
	}

	if err := s.provider.Send(Email{To: to, Subject: subject, TextBody: text, HTMLBody: html}); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"template": templateName,
		"provider": s.provider.Name(),
	}).Info("Email sent")
	return nil
}

func (s *Service) adminConfigured(kind string) bool {
	if s.config.AdminEmail == "" {
		logrus.Debugf("ADMIN_EMAIL not set, skipping %s notification", kind)
		return false
	}
	return true
}

func newPreviewView(brandURL string, preview *models.PreviewData, fallbackName string) previewView {
	view := previewView{BrandURL: brandURL, BrandName: fallbackName, Sentiment: "N/A"}
	if preview == nil {
		return view
	}
	if preview.BrandName != "" {
		view.BrandName = preview.BrandName
	}
	if preview.Sentiment != "" {
		view.Sentiment = string(preview.Sentiment)
	}
	view.Mentions = preview.Mentions
	view.Visibility = preview.Visibility
	return view
}

// SendWaitlistConfirmation sends the waitlist confirmation with the preview
func (s *Service) SendWaitlistConfirmation(to, brandURL string, preview *models.PreviewData) error {
	view := newPreviewView(brandURL, preview, "Your Brand")
	view.To = to

	subjectName := "Brand"
	if preview != nil && preview.BrandName != "" {
		subjectName = preview.BrandName
	}
	subject := fmt.Sprintf("Your VISIBI Brand Analysis is Coming! (%s)", subjectName)

	return s.send(to, subject, "waitlist_confirmation", view)
}

// SendAdminSignup notifies the admin about a waitlist signup
func (s *Service) SendAdminSignup(userEmail, brandURL string, preview *models.PreviewData) error {
	if !s.adminConfigured("waitlist signup") {
		return nil
	}

	view := newPreviewView(brandURL, preview, "Unknown")
	view.UserEmail = userEmail
	subject := fmt.Sprintf("New VISIBI Waitlist Signup: %s", userEmail)

	return s.send(s.config.AdminEmail, subject, "admin_signup", view)
}

// SendContactConfirmation thanks a user for a contact form submission
func (s *Service) SendContactConfirmation(to, name string) error {
	return s.send(to, "Thank You for Contacting VISIBI", "contact_confirmation", contactView{Name: name})
}

// SendContactNotification forwards a contact form submission to the admin
func (s *Service) SendContactNotification(req models.ContactRequest) error {
	if !s.adminConfigured("contact form") {
		return nil
	}

	view := contactView{
		Name:       req.Name,
		Company:    req.Company,
		Email:      req.Email,
		TopicLabel: TopicLabel(req.Topic),
		Message:    req.Message,
	}
	subject := fmt.Sprintf("New Contact Form Submission: %s (%s)", req.Name, req.Company)

	return s.send(s.config.AdminEmail, subject, "contact_notification", view)
}

// SendBrandAnalysisConfirmation confirms a brand analysis request
func (s *Service) SendBrandAnalysisConfirmation(to, brandURL string) error {
	view := brandAnalysisView{To: to, BrandURL: brandURL}
	return s.send(to, "Your Brand Analysis is Coming! - VISIBI", "brand_analysis_confirmation", view)
}

// SendBrandAnalysisNotification forwards a brand analysis request to the admin
func (s *Service) SendBrandAnalysisNotification(req models.BrandAnalysisRequest) error {
	if !s.adminConfigured("brand analysis") {
		return nil
	}

	view := brandAnalysisView{
		BrandURL: req.BrandURL,
		Email:    req.Email,
		Queries:  req.CustomQueries,
		Keywords: req.CustomKeywords,
	}
	subject := fmt.Sprintf("New Brand Analysis Request: %s", req.BrandURL)

	return s.send(s.config.AdminEmail, subject, "brand_analysis_notification", view)
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	// Send to Teams if configured
	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(report); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	// Send via email if configured
	if s.config.AdminEmail != "" {
		subject := fmt.Sprintf("VISIBI Brand Report - %s (%d brands)", capitalize(report.Period), len(report.Analyses))
		if err := s.send(s.config.AdminEmail, subject, "report", report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(report *models.Report) error {
	message := buildTeamsMessage(report)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func buildTeamsMessage(report *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("VISIBI Brand Report - %s", capitalize(report.Period)),
		Text:    fmt.Sprintf("Analyzed %d brands, generated %s", len(report.Analyses), report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")),
	}

	for _, analysis := range report.Analyses {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle:    analysis.BrandName,
			ActivitySubtitle: analysis.URL,
			Facts: []TeamsFact{
				{Name: "Visibility", Value: fmt.Sprintf("%.1f%%", analysis.Summary.Visibility)},
				{Name: "Mentions", Value: fmt.Sprintf("%d/%d", analysis.Summary.MentionsCount, analysis.Summary.TotalQueries)},
				{Name: "Citations", Value: fmt.Sprintf("%d", analysis.Summary.CitationsCount)},
				{Name: "Sentiment", Value: string(analysis.Summary.OverallSentiment)},
			},
			Markdown: true,
		})
	}

	if len(report.Failures) > 0 {
		var failures []string
		for url, reason := range report.Failures {
			failures = append(failures, fmt.Sprintf("**%s** - %s", url, reason))
		}
		sort.Strings(failures)

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Failures",
			ActivityText:  strings.Join(failures, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}
