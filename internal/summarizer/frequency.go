package summarizer

import (
	"math"
	"sort"
	"strings"

	"docexplore/internal/textutil"
)

// FrequencySummarizer ranks sentences by word frequency (stopwords filtered).
type FrequencySummarizer struct{}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{}
}

// Summarize returns the maxSentences highest ranked sentences in their
// original order.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}
	tokens := make([][]string, len(sentences))
	freq := map[string]float64{}
	for i, sent := range sentences {
		tokens[i] = textutil.Letters(sent)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	// Normalize frequencies
	maxF := 0.0
	for _, v := range freq {
		maxF = max(maxF, v)
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i := range sentences {
		sscore := 0.0
		for _, tok := range tokens[i] {
			sscore += freq[tok]
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(tokens[i])); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " "), nil
}
