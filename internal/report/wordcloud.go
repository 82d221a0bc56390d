package report

import (
	"sort"
	"strings"
)

const maxCloudWords = 100

// stopwords excluded from word clouds. Normalized corpus text is already
// free of URLs, mentions and markup, so only common filler words remain.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"you": {}, "your": {}, "are": {}, "was": {}, "were": {}, "have": {},
	"has": {}, "had": {}, "not": {}, "but": {}, "all": {}, "can": {},
	"will": {}, "just": {}, "from": {}, "they": {}, "them": {}, "there": {},
	"what": {}, "when": {}, "who": {}, "how": {}, "out": {}, "about": {},
	"our": {}, "its": {}, "his": {}, "her": {}, "she": {}, "him": {},
	"amp": {}, "via": {},
}

type wordCount struct {
	word  string
	count int
}

// wordFrequencies counts word occurrences across a corpus and returns the
// most frequent words in descending order, capped at limit. Words shorter
// than three characters and stopwords are skipped.
func wordFrequencies(corpus []string, limit int) []wordCount {
	counts := make(map[string]int)

	for _, text := range corpus {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if len(word) < 3 {
				continue
			}
			if _, skip := stopwords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	frequencies := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		frequencies = append(frequencies, wordCount{word: word, count: count})
	}

	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].count != frequencies[j].count {
			return frequencies[i].count > frequencies[j].count
		}
		return frequencies[i].word < frequencies[j].word
	})

	if len(frequencies) > limit {
		frequencies = frequencies[:limit]
	}

	return frequencies
}
