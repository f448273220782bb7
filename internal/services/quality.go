package services

import (
	"fmt"
	"strings"
	"unicode"
)

// Local resume quality heuristics. These run entirely in-process, without any
// provider call, and feed the quality section of the report.

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "was": true, "were": true,
	"are": true, "not": true, "you": true, "your": true, "our": true,
	"their": true, "will": true, "can": true, "has": true, "had": true,
}

// WordCountStatus classifies the resume length. One to two pages of prose
// lands between 300 and 800 words.
func WordCountStatus(text string) string {
	count := len(strings.Fields(text))

	switch {
	case count < 300:
		return fmt.Sprintf("Too Short (%d words)", count)
	case count <= 800:
		return fmt.Sprintf("Optimal (%d words)", count)
	default:
		return fmt.Sprintf("Too Long (%d words)", count)
	}
}

// RepetitionStatus classifies keyword repetition. A single keyword carrying
// more than 3% of the meaningful words reads as stuffing.
func RepetitionStatus(text string) string {
	counts := make(map[string]int)
	total := 0

	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(word) < 4 || stopWords[word] {
			continue
		}
		counts[word]++
		total++
	}

	if total == 0 {
		return "Low"
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	ratio := float64(maxCount) / float64(total)
	switch {
	case ratio > 0.03 && maxCount >= 5:
		return "High"
	case ratio > 0.02 && maxCount >= 3:
		return "Moderate"
	default:
		return "Low"
	}
}
