package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	MaxChars int `yaml:"max_chars"`
}

// VectorizerConfig bounds the TF-IDF vocabulary.
type VectorizerConfig struct {
	MaxFeatures int `yaml:"max_features"`
}

// ClusteringConfig drives cluster-count selection and k-means.
type ClusteringConfig struct {
	MinClusters   int   `yaml:"min_clusters"`
	MaxClusters   int   `yaml:"max_clusters"`
	MaxCandidates int   `yaml:"max_candidates"`
	Seed          int64 `yaml:"seed"`
	Restarts      int   `yaml:"restarts"`
	MaxIter       int   `yaml:"max_iter"`
	Parallel      bool  `yaml:"parallel"`
}

// NamingConfig configures topic labels.
type NamingConfig struct {
	MaxKeywords int `yaml:"max_keywords"`
}

// InsightsConfig configures the keyword and summary sidecar.
type InsightsConfig struct {
	KeywordsPerTopic int `yaml:"keywords_per_topic"`
	GlobalKeywords   int `yaml:"global_keywords"`
	SummarySentences int `yaml:"summary_sentences"`
}

// OutputConfig holds artifact metadata and the stage output directory.
type OutputConfig struct {
	Dir                 string  `yaml:"dir"`
	Title               string  `yaml:"title"`
	Description         string  `yaml:"description"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	CharsPerPixel       int     `yaml:"chars_per_pixel"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Naming     NamingConfig     `yaml:"naming"`
	Insights   InsightsConfig   `yaml:"insights"`
	Output     OutputConfig     `yaml:"output"`
}

// Environment variables that override file values.
const (
	EnvChunkSize           = "DOCEXPLORE_CHUNK_SIZE"
	EnvMaxFeatures         = "DOCEXPLORE_MAX_FEATURES"
	EnvMaxKeywords         = "DOCEXPLORE_MAX_KEYWORDS"
	EnvMinClusters         = "DOCEXPLORE_MIN_CLUSTERS"
	EnvMaxClusters         = "DOCEXPLORE_MAX_CLUSTERS"
	EnvSimilarityThreshold = "DOCEXPLORE_SIMILARITY_THRESHOLD"
	EnvOutputDir           = "DOCEXPLORE_OUTPUT_DIR"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if err := applyEnv(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML and fills unset fields with defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault loads .env if present, then tries ./config.yaml, then
// ~/.config/docexplore/config.yaml. If neither exists, it writes defaults to
// the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	_ = godotenv.Load()

	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docexplore", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	cfg.Clustering.Parallel = true
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.MaxChars <= 0 {
		cfg.Chunker.MaxChars = 4000
	}
	if cfg.Vectorizer.MaxFeatures <= 0 {
		cfg.Vectorizer.MaxFeatures = 1000
	}
	c := &cfg.Clustering
	if c.MinClusters <= 0 {
		c.MinClusters = 3
	}
	if c.MaxClusters <= 0 {
		c.MaxClusters = 50
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = 10
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Restarts <= 0 {
		c.Restarts = 10
	}
	if c.MaxIter <= 0 {
		c.MaxIter = 300
	}
	if cfg.Naming.MaxKeywords <= 0 {
		cfg.Naming.MaxKeywords = 3
	}
	if cfg.Insights.KeywordsPerTopic <= 0 {
		cfg.Insights.KeywordsPerTopic = 5
	}
	if cfg.Insights.GlobalKeywords <= 0 {
		cfg.Insights.GlobalKeywords = 20
	}
	if cfg.Insights.SummarySentences <= 0 {
		cfg.Insights.SummarySentences = 2
	}
	o := &cfg.Output
	if o.Dir == "" {
		o.Dir = "outputs"
	}
	if o.Title == "" {
		o.Title = "Document Insights"
	}
	if o.Description == "" {
		o.Description = "Explore key topics and insights extracted from the document."
	}
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = 0.8
	}
	if o.CharsPerPixel <= 0 {
		o.CharsPerPixel = 20
	}
}

func applyEnv(cfg *AppConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvChunkSize, &cfg.Chunker.MaxChars},
		{EnvMaxFeatures, &cfg.Vectorizer.MaxFeatures},
		{EnvMaxKeywords, &cfg.Naming.MaxKeywords},
		{EnvMinClusters, &cfg.Clustering.MinClusters},
		{EnvMaxClusters, &cfg.Clustering.MaxClusters},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: expected a positive integer, got %q", e.key, v)
		}
		*e.dst = n
	}
	if v := os.Getenv(EnvSimilarityThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSimilarityThreshold, err)
		}
		cfg.Output.SimilarityThreshold = f
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Output.Dir = v
	}
	return nil
}
