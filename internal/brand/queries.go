// Package brand identifies the brand behind a URL and builds the queries
// used to monitor it.
package brand

import "strings"

const brandPlaceholder = "{brand}"

// DefaultQueryTemplates are always asked first, in this order.
var DefaultQueryTemplates = []string{
	"What do you think about {brand}?",
	"Is {brand} good for businesses?",
	"Who are the main competitors of {brand}?",
	"What are the pros and cons of {brand}?",
	"Would you recommend {brand}?",
}

// Generate returns the default queries, then customQueries verbatim, then two
// queries per custom keyword. Duplicates are kept.
func Generate(brandName string, customKeywords, customQueries []string) []string {
	queries := make([]string, 0, len(DefaultQueryTemplates)+len(customQueries)+2*len(customKeywords))

	for _, template := range DefaultQueryTemplates {
		queries = append(queries, strings.ReplaceAll(template, brandPlaceholder, brandName))
	}

	queries = append(queries, customQueries...)

	for _, keyword := range customKeywords {
		queries = append(queries,
			"How does "+brandName+" handle "+keyword+"?",
			"What is "+brandName+"'s approach to "+keyword+"?",
		)
	}

	return queries
}

// GenerateComparisons returns three comparison queries per competitor.
func GenerateComparisons(brandName string, competitors []string) []string {
	if len(competitors) == 0 {
		return []string{}
	}

	queries := make([]string, 0, 3*len(competitors))
	for _, competitor := range competitors {
		queries = append(queries,
			"Compare "+brandName+" vs "+competitor,
			"Which is better, "+brandName+" or "+competitor+"?",
			"What are the differences between "+brandName+" and "+competitor+"?",
		)
	}
	return queries
}
