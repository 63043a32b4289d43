// Package sentiment scores LLM responses for brand sentiment and aggregates
// the per-query results. Everything here is pure and deterministic.
package sentiment

import (
	"strings"
	"unicode/utf8"

	"github.com/visibi/brand-monitor/internal/models"
)

// PositiveKeywords are matched as case-insensitive substrings of the response.
var PositiveKeywords = []string{
	"excellent", "great", "amazing", "good", "best", "love", "perfect",
	"recommend", "outstanding", "fantastic", "wonderful", "impressed",
	"satisfied", "happy", "positive", "strong", "powerful", "effective",
	"reliable", "innovative", "superior", "exceptional", "superb",
	"awesome", "brilliant", "stellar", "top-notch", "high-quality",
	"valuable", "useful", "helpful", "efficient", "seamless", "smooth",
	"user-friendly", "intuitive", "robust", "comprehensive", "versatile",
}

// NegativeKeywords are matched the same way as PositiveKeywords.
var NegativeKeywords = []string{
	"terrible", "bad", "worst", "hate", "awful", "poor", "weak",
	"disappointing", "not recommended", "issues", "problems", "difficult",
	"expensive", "slow", "broken", "useless", "negative", "struggling",
	"unreliable", "frustrating", "inadequate", "inferior", "ineffective",
	"horrible", "pathetic", "dreadful", "mediocre", "subpar", "lacking",
	"buggy", "clunky", "confusing", "complicated", "overpriced", "waste",
	"limited", "restrictive", "outdated", "unstable",
}

// noSignalConfidence is reported for a mention without any keyword hit.
const noSignalConfidence = 0.5

// Score rates text for brandName. Matching is case-insensitive and counts
// each keyword at most once.
func Score(text, brandName string) models.SentimentResult {
	lowerText := strings.ToLower(text)
	lowerBrand := strings.ToLower(brandName)

	idx := strings.Index(lowerText, lowerBrand)
	if idx < 0 {
		// Confidence here is certainty of absence, not sentiment strength
		return models.SentimentResult{
			Mentioned:  false,
			Sentiment:  models.SentimentNotMentioned,
			Confidence: 1.0,
			Position:   -1,
		}
	}

	positive := countKeywords(lowerText, PositiveKeywords)
	negative := countKeywords(lowerText, NegativeKeywords)

	return models.SentimentResult{
		Mentioned:          true,
		Sentiment:          verdict(positive, negative),
		Confidence:         confidence(positive, negative),
		Position:           utf8.RuneCountInString(lowerText[:idx]),
		PositiveIndicators: positive,
		NegativeIndicators: negative,
	}
}

func countKeywords(lowerText string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lowerText, keyword) {
			count++
		}
	}
	return count
}

// verdict applies the tie-break shared by single responses and aggregates:
// a strict majority wins, anything else is neutral.
func verdict(positive, negative int) models.Sentiment {
	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func confidence(positive, negative int) float64 {
	total := positive + negative
	if total == 0 {
		return noSignalConfidence
	}

	c := float64(max(positive, negative)) / float64(total)
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// CountOccurrences counts case-insensitive, possibly overlapping occurrences
// of brandName in text. An empty brand name never matches.
func CountOccurrences(text, brandName string) int {
	if brandName == "" {
		return 0
	}

	lowerText := strings.ToLower(text)
	lowerBrand := strings.ToLower(brandName)

	count := 0
	start := 0
	for start <= len(lowerText) {
		pos := strings.Index(lowerText[start:], lowerBrand)
		if pos < 0 {
			break
		}
		count++
		start += pos + 1
	}
	return count
}
