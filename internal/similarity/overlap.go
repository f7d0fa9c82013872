package similarity

import (
	"math"

	"docexplore/internal/domain"
	"docexplore/internal/textutil"
)

// OverlapThreshold is the Jaccard ratio a pair must exceed to be reported.
const OverlapThreshold = 0.1

// TopicText is a named topic with the texts of its members.
type TopicText struct {
	Name  string
	Texts []string
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// WordSet collects the distinct significant words of texts.
func WordSet(texts []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, t := range texts {
		for _, w := range textutil.SignificantWords(t) {
			set[w] = struct{}{}
		}
	}
	return set
}

// Overlap compares every unordered pair of topics, in the given order, and
// returns the pairs whose vocabulary overlap exceeds OverlapThreshold. Scores
// are rounded to two decimals, halves to even.
func Overlap(topics []TopicText) []domain.OverlapEdge {
	sets := make([]map[string]struct{}, len(topics))
	for i, t := range topics {
		sets[i] = WordSet(t.Texts)
	}
	var edges []domain.OverlapEdge
	for i := 0; i < len(topics); i++ {
		for j := i + 1; j < len(topics); j++ {
			score := Jaccard(sets[i], sets[j])
			if score <= OverlapThreshold {
				continue
			}
			edges = append(edges, domain.OverlapEdge{
				TopicA: topics[i].Name,
				TopicB: topics[j].Name,
				Score:  math.RoundToEven(score*100) / 100,
			})
		}
	}
	return edges
}
