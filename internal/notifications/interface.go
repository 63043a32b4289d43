package notifications

import "github.com/visibi/brand-monitor/internal/models"

// Email is a rendered message with plain text and HTML alternatives
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// EmailProvider delivers rendered e-mails
type EmailProvider interface {
	Name() string
	Send(email Email) error
}

// ReportSender publishes scheduled monitoring reports
type ReportSender interface {
	SendReport(report *models.Report) error
}

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	ReportSender
	SendWaitlistConfirmation(to, brandURL string, preview *models.PreviewData) error
	SendAdminSignup(userEmail, brandURL string, preview *models.PreviewData) error
	SendContactConfirmation(to, name string) error
	SendContactNotification(req models.ContactRequest) error
	SendBrandAnalysisConfirmation(to, brandURL string) error
	SendBrandAnalysisNotification(req models.BrandAnalysisRequest) error
}
