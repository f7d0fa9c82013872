package naming

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"docexplore/internal/domain"
	"docexplore/internal/logger"
	"docexplore/internal/textutil"
)

const DefaultMaxKeywords = 3

// Namer turns the phrases chosen by a Strategy into a topic label.
type Namer struct {
	Strategy    Strategy
	MaxKeywords int
	Logger      *log.Logger
}

func NewNamer(maxKeywords int, l *log.Logger) *Namer {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	return &Namer{Strategy: PhraseStrategy{}, MaxKeywords: maxKeywords, Logger: l}
}

// Fallback is the label used when no phrase can be found for a cluster.
func Fallback(clusterID int) string {
	return fmt.Sprintf("Topic %d", clusterID)
}

// Name labels one cluster. A failure only affects this cluster, which gets
// the fallback label.
func (n *Namer) Name(clusterID int, texts []string) (name string) {
	l := logger.OrDiscard(n.Logger)
	defer func() {
		if r := recover(); r != nil {
			l.Warn("naming failed, using fallback", "cluster", clusterID, "panic", r)
			name = Fallback(clusterID)
		}
	}()
	if len(texts) == 0 {
		l.Warn("cluster has no text, using fallback", "cluster", clusterID)
		return Fallback(clusterID)
	}
	strategy := n.Strategy
	if strategy == nil {
		strategy = PhraseStrategy{}
	}
	limit := n.MaxKeywords
	if limit <= 0 {
		limit = DefaultMaxKeywords
	}
	phrases := strategy.Phrases(texts, limit)
	if len(phrases) == 0 {
		l.Warn("no phrases found, using fallback", "cluster", clusterID)
		return Fallback(clusterID)
	}
	return Label(phrases)
}

// Label formats phrases as "First & second third".
func Label(phrases []string) string {
	caps := make([]string, len(phrases))
	for i, p := range phrases {
		caps[i] = textutil.Capitalize(p)
	}
	if len(caps) == 1 {
		return caps[0]
	}
	return caps[0] + " & " + strings.Join(caps[1:], " ")
}

// NameAll names every cluster present in chunks and returns the labels by
// cluster id. Chunks without a cluster are ignored.
func (n *Namer) NameAll(chunks []domain.Chunk) map[int]string {
	var order []int
	texts := map[int][]string{}
	for _, ch := range chunks {
		id, ok := ch.ClusterID()
		if !ok {
			continue
		}
		if _, seen := texts[id]; !seen {
			order = append(order, id)
		}
		texts[id] = append(texts[id], ch.Text)
	}
	names := make(map[int]string, len(order))
	for _, id := range order {
		names[id] = n.Name(id, texts[id])
	}
	logger.OrDiscard(n.Logger).Info("clusters named", "clusters", len(names))
	return names
}
