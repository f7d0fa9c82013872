// Package insights derives per-topic keyword, mention, overlap and layout
// figures from a finished artifact.
package insights

import (
	"errors"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"docexplore/internal/domain"
	"docexplore/internal/logger"
	"docexplore/internal/similarity"
	"docexplore/internal/textutil"
)

// Options tunes Build. Zero counts fall back to the defaults below.
type Options struct {
	RunID            string
	KeywordsPerTopic int
	GlobalKeywords   int
	SummarySentences int
	Summarizer       domain.Summarizer
	Logger           *log.Logger
}

const (
	defaultKeywordsPerTopic = 5
	defaultGlobalKeywords   = 20
	defaultSummarySentences = 2
)

// TopKeywords counts significant words across texts and returns the n most
// frequent, ties in order of first occurrence.
func TopKeywords(texts []string, n int) []domain.KeywordCount {
	counts := map[string]int{}
	var order []string
	for _, t := range texts {
		for _, w := range textutil.SignificantWords(t) {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	out := make([]domain.KeywordCount, len(order))
	for i, w := range order {
		out[i] = domain.KeywordCount{Word: w, Count: counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Build computes the sidecar for an artifact. Mentions and overlaps cover
// every member of a topic. The layout only uses members that carry a vector,
// and topics with none are listed in LayoutUnavailable.
func Build(a domain.Artifact, opts Options) domain.Insights {
	l := logger.OrDiscard(opts.Logger)
	perTopic := opts.KeywordsPerTopic
	if perTopic <= 0 {
		perTopic = defaultKeywordsPerTopic
	}
	global := opts.GlobalKeywords
	if global <= 0 {
		global = defaultGlobalKeywords
	}
	sentences := opts.SummarySentences
	if sentences <= 0 {
		sentences = defaultSummarySentences
	}

	out := domain.Insights{RunID: opts.RunID}
	var all []string
	texts := make([]similarity.TopicText, 0, len(a.Clusters))
	vectors := make([]similarity.TopicVectors, 0, len(a.Clusters))
	for _, c := range a.Clusters {
		tt := similarity.TopicText{Name: c.Name}
		tv := similarity.TopicVectors{ClusterID: c.ID, Name: c.Name}
		for _, it := range c.Items {
			tt.Texts = append(tt.Texts, it.Text)
			if it.HasEmbedding() {
				tv.Vectors = append(tv.Vectors, it.Embedding)
			}
		}
		all = append(all, tt.Texts...)
		texts = append(texts, tt)
		vectors = append(vectors, tv)

		topic := domain.TopicInsight{
			ClusterID: c.ID,
			Name:      c.Name,
			Mentions:  len(c.Items),
			Keywords:  []string{},
		}
		for _, kw := range TopKeywords(tt.Texts, perTopic) {
			topic.Keywords = append(topic.Keywords, kw.Word)
		}
		if opts.Summarizer != nil {
			summary, err := opts.Summarizer.Summarize(strings.Join(tt.Texts, " "), sentences)
			if err != nil {
				l.Warn("summary failed", "topic", c.Name, "err", err)
			}
			topic.Summary = summary
		}
		out.Topics = append(out.Topics, topic)
	}

	out.GlobalKeywords = TopKeywords(all, global)
	out.Overlaps = similarity.Overlap(texts)
	if out.Overlaps == nil {
		out.Overlaps = []domain.OverlapEdge{}
	}

	layout, err := similarity.Layout(vectors)
	switch {
	case errors.Is(err, similarity.ErrLayoutUnavailable):
		l.Warn("layout unavailable", "topics", len(vectors))
	case err != nil:
		l.Warn("layout failed", "err", err)
	}
	out.Layout = layout.Points
	if out.Layout == nil {
		out.Layout = []domain.LayoutPoint{}
	}
	out.LayoutUnavailable = layout.Unavailable
	if len(layout.Unavailable) > 0 {
		l.Warn("topics without vectors left out of layout", "topics", layout.Unavailable)
	}
	return out
}
