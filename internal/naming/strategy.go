// Package naming labels clusters with short phrases drawn from their text.
package naming

import (
	"sort"
	"strings"

	"docexplore/internal/textutil"
)

// Strategy extracts up to maxKeywords ranked phrases from a cluster's texts.
type Strategy interface {
	Phrases(texts []string, maxKeywords int) []string
}

// PhraseStrategy ranks 1 to 3 word phrases by frequency and prefers
// multi-word phrases over single words.
type PhraseStrategy struct {
	// Vocabulary bounds how many distinct phrases are considered.
	Vocabulary int
}

const defaultVocabulary = 100

type phraseCount struct {
	phrase string
	count  int
	words  int
}

// Phrases returns the chosen phrases in rank order.
func (s PhraseStrategy) Phrases(texts []string, maxKeywords int) []string {
	if maxKeywords <= 0 || len(texts) == 0 {
		return nil
	}
	counts := map[string]*phraseCount{}
	for _, text := range texts {
		var toks []string
		for _, w := range textutil.Words(text) {
			if !textutil.IsStopWord(w) {
				toks = append(toks, w)
			}
		}
		for n := 1; n <= 3; n++ {
			for i := 0; i+n <= len(toks); i++ {
				p := strings.Join(toks[i:i+n], " ")
				pc, ok := counts[p]
				if !ok {
					pc = &phraseCount{phrase: p, words: n}
					counts[p] = pc
				}
				pc.count++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	ranked := make([]phraseCount, 0, len(counts))
	for _, pc := range counts {
		ranked = append(ranked, *pc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].phrase < ranked[j].phrase
	})
	vocab := s.Vocabulary
	if vocab <= 0 {
		vocab = defaultVocabulary
	}
	if len(ranked) > vocab {
		ranked = ranked[:vocab]
	}
	if len(ranked) > 2*maxKeywords {
		ranked = ranked[:2*maxKeywords]
	}

	out := make([]string, 0, maxKeywords)
	for _, pc := range ranked {
		if pc.words > 1 && len(out) < maxKeywords {
			out = append(out, pc.phrase)
		}
	}
	for _, pc := range ranked {
		if pc.words == 1 && len(out) < maxKeywords {
			out = append(out, pc.phrase)
		}
	}
	return out
}
