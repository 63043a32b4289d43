package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/visibi/brand-monitor/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		brand     string
		sentiment models.Sentiment
		positive  int
		negative  int
		conf      float64
		position  int
	}{
		{
			name:      "Positive mention",
			text:      "Slack is excellent and amazing for team collaboration",
			brand:     "Slack",
			sentiment: models.SentimentPositive,
			positive:  2,
			conf:      1.0,
		},
		{
			name:      "Negative mention",
			text:      "Honestly slack is terrible and buggy these days",
			brand:     "Slack",
			sentiment: models.SentimentNegative,
			negative:  2,
			conf:      1.0,
			position:  9,
		},
		{
			name:      "Tie resolves to neutral",
			text:      "Slack is great but expensive",
			brand:     "Slack",
			sentiment: models.SentimentNeutral,
			positive:  1,
			negative:  1,
			conf:      0.5,
		},
		{
			name:      "No indicators",
			text:      "Slack is a messaging app.",
			brand:     "Slack",
			sentiment: models.SentimentNeutral,
			conf:      0.5,
		},
		{
			name:      "Keywords match inside longer words",
			text:      "SLACK was disappointingly slow",
			brand:     "slack",
			sentiment: models.SentimentNegative,
			negative:  2,
			conf:      1.0,
		},
		{
			name:      "Repeated keyword counted once",
			text:      "Slack is good, good, good",
			brand:     "Slack",
			sentiment: models.SentimentPositive,
			positive:  1,
			conf:      1.0,
		},
		{
			name:      "Majority confidence",
			text:      "Slack is excellent and reliable but expensive",
			brand:     "Slack",
			sentiment: models.SentimentPositive,
			positive:  2,
			negative:  1,
			conf:      2.0 / 3.0,
		},
		{
			name:      "Position counts characters not bytes",
			text:      "Café Slack",
			brand:     "Slack",
			sentiment: models.SentimentNeutral,
			conf:      0.5,
			position:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.text, tt.brand)
			assert.True(t, result.Mentioned)
			assert.Equal(t, tt.sentiment, result.Sentiment)
			assert.Equal(t, tt.positive, result.PositiveIndicators)
			assert.Equal(t, tt.negative, result.NegativeIndicators)
			assert.InDelta(t, tt.conf, result.Confidence, 1e-9)
			assert.Equal(t, tt.position, result.Position)
		})
	}
}

func TestScore_NotMentioned(t *testing.T) {
	for _, text := range []string{"", "Microsoft Teams is excellent", "great great great"} {
		result := Score(text, "Slack")
		assert.Equal(t, models.SentimentResult{
			Mentioned:  false,
			Sentiment:  models.SentimentNotMentioned,
			Confidence: 1.0,
			Position:   -1,
		}, result, text)
	}
}

func TestScore_EmptyInputs(t *testing.T) {
	assert.NotPanics(t, func() {
		Score("", "")
		Score("anything", "")
	})
}

func TestKeywordSetsAreDisjoint(t *testing.T) {
	seen := make(map[string]bool)
	for _, keyword := range PositiveKeywords {
		assert.False(t, seen[keyword], "duplicate positive keyword %q", keyword)
		seen[keyword] = true
	}
	for _, keyword := range NegativeKeywords {
		assert.False(t, seen[keyword], "keyword %q appears twice", keyword)
		seen[keyword] = true
	}
}

func TestCountOccurrences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		brand    string
		expected int
	}{
		{name: "Back to back", text: "SlackSlack", brand: "slack", expected: 2},
		{name: "Empty text", text: "", brand: "slack", expected: 0},
		{name: "Overlapping", text: "aaaa", brand: "aa", expected: 3},
		{name: "Empty brand", text: "Slack", brand: "", expected: 0},
		{name: "No match", text: "Microsoft Teams", brand: "Slack", expected: 0},
		{name: "Mixed case", text: "Slack, SLACK, and more slack", brand: "Slack", expected: 3},
		{name: "Possessive", text: "I use Slack every day and Slack's interface is intuitive", brand: "Slack", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountOccurrences(tt.text, tt.brand))
		})
	}
}
