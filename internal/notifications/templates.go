package notifications

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"unicode"
	"unicode/utf8"
)

// TopicLabels maps contact form topic codes to display labels
var TopicLabels = map[string]string{
	"geo":        "GEO Services",
	"seo":        "SEO & Content",
	"ppc":        "Paid Media",
	"tool":       "VISIBI Tool",
	"audit":      "AI Visibility Audit",
	"integrated": "Integrated Strategy",
	"other":      "Other",
}

// TopicLabel returns the display label for topic, or topic itself when unknown
func TopicLabel(topic string) string {
	if label, ok := TopicLabels[topic]; ok {
		return label
	}
	return topic
}

type previewView struct {
	To         string
	UserEmail  string
	BrandURL   string
	BrandName  string
	Sentiment  string
	Mentions   int
	Visibility float64
}

type contactView struct {
	Name       string
	Company    string
	Email      string
	TopicLabel string
	Message    string
}

type brandAnalysisView struct {
	To       string
	BrandURL string
	Email    string
	Queries  []string
	Keywords []string
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var templateFuncs = map[string]any{
	"title": capitalize,
	"join":  strings.Join,
}

const htmlTemplates = `
{{define "waitlist_confirmation"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1>You're on the VISIBI Waitlist!</h1>
        <h2>Hi there!</h2>
        <p>Thank you for your interest in VISIBI - the AI Search Analytics platform.</p>
        <p>We're analysing <strong>{{.BrandURL}}</strong> across multiple AI platforms including ChatGPT, Claude, Perplexity, and Gemini.</p>
        <div style="background: white; padding: 20px; border-left: 4px solid #667eea;">
            <h3>Quick Preview for {{.BrandName}}</h3>
            <p><strong>Sentiment:</strong> {{.Sentiment}}</p>
            <p><strong>Mentions:</strong> {{.Mentions}}</p>
            <p><strong>Visibility:</strong> {{.Visibility}}%</p>
        </div>
        <p><strong>What's Next?</strong></p>
        <ul>
            <li>Full detailed analysis report within 24 hours</li>
            <li>Competitive positioning insights</li>
            <li>Actionable recommendations</li>
            <li>Sentiment trends and patterns</li>
        </ul>
        <p>We'll send your comprehensive report to <strong>{{.To}}</strong> soon!</p>
        <p style="text-align: center; color: #666; font-size: 12px;">VISIBI - AI Search Analytics Platform<br>Monitor your brand across AI conversations</p>
    </div>
</body>
</html>{{end}}

{{define "admin_signup"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <h2>New Waitlist Signup</h2>
    <p><strong>Email:</strong> {{.UserEmail}}</p>
    <p><strong>Brand URL:</strong> {{.BrandURL}}</p>
    <p><strong>Brand Name:</strong> {{.BrandName}}</p>
    <h3>Preview Data:</h3>
    <ul>
        <li>Sentiment: {{.Sentiment}}</li>
        <li>Mentions: {{.Mentions}}</li>
        <li>Visibility: {{.Visibility}}%</li>
    </ul>
    <p><em>This is an automated notification from VISIBI.</em></p>
</body>
</html>{{end}}

{{define "contact_confirmation"}}<!DOCTYPE html>
<html>
<body style="font-family: 'Space Mono', monospace; line-height: 1.6; color: #000;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="background: #000; color: white; padding: 30px; text-align: center;">VISIBI</h1>
        <h2>Hi {{.Name}},</h2>
        <p>Thank you for reaching out to VISIBI! We've received your message and will get back to you within 24 hours.</p>
        <p><strong>What happens next:</strong></p>
        <ul>
            <li>Our team will review your inquiry</li>
            <li>We'll respond to your email within 24 hours</li>
            <li>If needed, we'll schedule a call to discuss your goals</li>
        </ul>
        <p>In the meantime, feel free to explore our services at <a href="https://visibi.com">visibi.com</a></p>
        <p style="text-align: center; color: #7A7A7A; font-size: 12px;">VISIBI - Generative Engine Optimisation<br>Making your brand visible in Gen AI search</p>
    </div>
</body>
</html>{{end}}

{{define "contact_notification"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <h2>New Contact Form Submission</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Company:</strong> {{.Company}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Topic:</strong> {{.TopicLabel}}</p>
    <h3>Message:</h3>
    <p>{{.Message}}</p>
    <p><em>This is an automated notification from VISIBI Contact Form.</em></p>
</body>
</html>{{end}}

{{define "brand_analysis_confirmation"}}<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: 'Open Sans', Arial, sans-serif; line-height: 1.7; color: #0f172a; background-color: #f8fafc;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 40px 30px;">
        <h1 style="font-size: 20px; text-align: center;">VISIBI</h1>
        <h2>Your Gen AI Visibility Analysis is Coming!</h2>
        <p>Thank you for requesting a brand analysis for <strong style="color: #1d4ed8;">{{.BrandURL}}</strong>.</p>
        <p>We're analyzing how your brand appears across ChatGPT, Gemini, Perplexity, Claude, and other Gen AI platforms.</p>
        <p><strong>What Happens Next</strong></p>
        <ul>
            <li>Full detailed analysis report within 24-48 hours</li>
            <li>Insights on ChatGPT, Gemini, Perplexity visibility</li>
            <li>Actionable GEO recommendations</li>
            <li>Sentiment trends and citation patterns</li>
        </ul>
        <p style="text-align: center;"><a href="https://govisibi.ai" style="padding: 14px 32px; background-color: #1d4ed8; color: #ffffff; text-decoration: none; border-radius: 9999px;">Explore Our GEO Services</a></p>
        <p style="font-size: 14px; color: #64748b;">We'll send your comprehensive report to <strong>{{.To}}</strong> soon.</p>
        <p style="text-align: center; font-size: 12px; color: #64748b;"><strong>VISIBI</strong> - Get discovered by Gen AI platforms</p>
    </div>
</body>
</html>{{end}}

{{define "brand_analysis_notification"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
    <h2>New Brand Analysis Request</h2>
    <p><strong>Brand URL:</strong> {{.BrandURL}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Queries}}<h3>Custom Queries:</h3>
    <ul>{{range .Queries}}
        <li>{{.}}</li>{{end}}
    </ul>{{end}}
    {{if .Keywords}}<h3>Custom Keywords:</h3>
    <p>{{join .Keywords ", "}}</p>{{end}}
    <p><em>This is an automated notification from VISIBI Brand Analysis Form.</em></p>
</body>
</html>{{end}}

{{define "report"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>VISIBI Brand Report</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 20px;">
    <h1>VISIBI Brand Report</h1>
    <p>{{title .Period}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    {{range .Analyses}}
    <div style="border-left: 4px solid #667eea; padding: 10px; margin: 10px 0; background-color: #fafafa;">
        <h2>{{.BrandName}}</h2>
        <p><a href="{{.URL}}">{{.URL}}</a></p>
        <p><strong>Visibility:</strong> {{printf "%.1f" .Summary.Visibility}}%
            | <strong>Mentions:</strong> {{.Summary.MentionsCount}}/{{.Summary.TotalQueries}}
            | <strong>Citations:</strong> {{.Summary.CitationsCount}}
            | <strong>Sentiment:</strong> {{.Summary.OverallSentiment}}</p>
        <p><small>{{.Usage.TotalTokens}} tokens, estimated cost ${{printf "%.6f" .Usage.EstimatedCost}}</small></p>
    </div>
    {{end}}
    {{if .Failures}}
    <h2>Failures</h2>
    <ul>{{range $url, $reason := .Failures}}
        <li>{{$url}}: {{$reason}}</li>{{end}}
    </ul>
    {{end}}
    <hr>
    <p><small>This report was generated automatically by VISIBI.</small></p>
</body>
</html>{{end}}
`

const textTemplates = `
{{define "waitlist_confirmation"}}VISIBI - You're on the Waitlist!

Hi there!

Thank you for your interest in VISIBI - the AI Search Analytics platform.

We're analyzing {{.BrandURL}} across multiple AI platforms including ChatGPT, Claude, Perplexity, and Gemini.

Quick Preview for {{.BrandName}}:
- Sentiment: {{.Sentiment}}
- Mentions: {{.Mentions}}
- Visibility: {{.Visibility}}%

What's Next?
- Full detailed analysis report within 24 hours
- Competitive positioning insights
- Actionable recommendations
- Sentiment trends and patterns

We'll send your comprehensive report to {{.To}} soon!

---
VISIBI - AI Search Analytics Platform
Monitor your brand across AI conversations
{{end}}

{{define "admin_signup"}}New VISIBI Waitlist Signup

Email: {{.UserEmail}}
Brand URL: {{.BrandURL}}
Brand Name: {{.BrandName}}

Preview Data:
- Sentiment: {{.Sentiment}}
- Mentions: {{.Mentions}}
- Visibility: {{.Visibility}}%

---
This is an automated notification from VISIBI.
{{end}}

{{define "contact_confirmation"}}VISIBI - Thank You for Contacting Us

Hi {{.Name}},

Thank you for reaching out to VISIBI! We've received your message and will get back to you within 24 hours.

What happens next:
- Our team will review your inquiry
- We'll respond to your email within 24 hours
- If needed, we'll schedule a call to discuss your goals

In the meantime, feel free to explore our services at visibi.com

---
VISIBI - Generative Engine Optimisation
Making your brand visible in Gen AI search
{{end}}

{{define "contact_notification"}}New Contact Form Submission

Name: {{.Name}}
Company: {{.Company}}
Email: {{.Email}}
Topic: {{.TopicLabel}}

Message:
{{.Message}}

---
This is an automated notification from VISIBI Contact Form.
{{end}}

{{define "brand_analysis_confirmation"}}VISIBI - Your Brand Analysis is Coming!

Thank You for Your Interest!

We've received your request for a brand analysis for {{.BrandURL}}.

What happens next:
- Our team will analyze your brand's AI visibility
- We'll send your detailed report to this email within 24-48 hours
- The report will include insights on ChatGPT, Gemini, Perplexity, and other AI platforms

In the meantime, explore our services at govisibi.ai

---
VISIBI - Generative Engine Optimisation
Making your brand visible in Gen AI search
{{end}}

{{define "brand_analysis_notification"}}New Brand Analysis Request

Brand URL: {{.BrandURL}}
Email: {{.Email}}
{{if .Queries}}
Custom Queries:
{{range .Queries}}- {{.}}
{{end}}{{end}}{{if .Keywords}}
Custom Keywords:
{{join .Keywords ", "}}
{{end}}
---
This is an automated notification from VISIBI Brand Analysis Form.
{{end}}

{{define "report"}}VISIBI Brand Report - {{title .Period}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 UTC"}}

SUMMARY
=======
Brands analyzed: {{len .Analyses}}
{{range .Analyses}}
{{.BrandName}} ({{.URL}})
   Visibility: {{printf "%.1f" .Summary.Visibility}}% | Mentions: {{.Summary.MentionsCount}}/{{.Summary.TotalQueries}} | Citations: {{.Summary.CitationsCount}}
   Sentiment: {{.Summary.OverallSentiment}} | Tokens: {{.Usage.TotalTokens}} | Cost: ${{printf "%.6f" .Usage.EstimatedCost}}
{{end}}{{if .Failures}}
FAILURES
========
{{range $url, $reason := .Failures}}{{$url}}: {{$reason}}
{{end}}{{end}}
---
This report was generated automatically by VISIBI.
{{end}}
`

var (
	htmlSet = htmltemplate.Must(htmltemplate.New("html").Funcs(templateFuncs).Parse(htmlTemplates))
	textSet = texttemplate.Must(texttemplate.New("text").Funcs(templateFuncs).Parse(textTemplates))
)

// render executes the named template from both sets
func render(name string, data any) (text string, html string, err error) {
	var textBuf, htmlBuf bytes.Buffer

	if err := textSet.ExecuteTemplate(&textBuf, name, data); err != nil {
		return "", "", err
	}
	if err := htmlSet.ExecuteTemplate(&htmlBuf, name, data); err != nil {
		return "", "", err
	}
	return textBuf.String(), htmlBuf.String(), nil
}
