package domain

// Chunk is a bounded span of document text. Embedding and Cluster are filled
// in by the vectorizer and clusterer respectively.
type Chunk struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding,omitempty"`
	Cluster   *int      `json:"cluster,omitempty"`
}

// HasEmbedding reports whether a non-empty vector has been attached.
func (c Chunk) HasEmbedding() bool { return len(c.Embedding) > 0 }

// ClusterID returns the assigned cluster id and whether one is set.
func (c Chunk) ClusterID() (int, bool) {
	if c.Cluster == nil {
		return 0, false
	}
	return *c.Cluster, true
}

// WithCluster returns a copy of the chunk assigned to the given cluster.
func (c Chunk) WithCluster(id int) Chunk {
	c.Cluster = &id
	return c
}

// ChunkSet is the container handed between pipeline stages.
type ChunkSet struct {
	Chunks []Chunk `json:"chunks"`
}

// OverlapEdge is an undirected lexical relatedness score between two topics.
type OverlapEdge struct {
	TopicA string  `json:"topic_a"`
	TopicB string  `json:"topic_b"`
	Score  float64 `json:"score"`
}

// LayoutPoint places a topic on a 2-D plane.
type LayoutPoint struct {
	Topic     string  `json:"topic"`
	ClusterID int     `json:"cluster_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Artifact is the document-level output consumed by the presentation layer.
// Field names are part of the contract with that consumer.
type Artifact struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Similarity    float64           `json:"similarity"`
	CharsPerPixel int               `json:"charsPerPixel"`
	Clusters      []ArtifactCluster `json:"clusters"`
}

// ArtifactCluster is one topic of the artifact with its member chunks.
type ArtifactCluster struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Items []Chunk `json:"items"`
}

// KeywordCount is a word and how often it occurs.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopicInsight carries per-topic figures shown next to the artifact.
type TopicInsight struct {
	ClusterID int      `json:"cluster_id"`
	Name      string   `json:"name"`
	Mentions  int      `json:"mentions"`
	Keywords  []string `json:"keywords"`
	Summary   string   `json:"summary"`
}

// Insights is the sidecar written alongside the artifact.
type Insights struct {
	RunID             string         `json:"run_id"`
	Topics            []TopicInsight `json:"topics"`
	GlobalKeywords    []KeywordCount `json:"global_keywords"`
	Overlaps          []OverlapEdge  `json:"overlaps"`
	Layout            []LayoutPoint  `json:"layout"`
	LayoutUnavailable []string       `json:"layout_unavailable,omitempty"`
}
