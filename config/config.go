package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the RAG service and the index builder.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	WebSearch WebSearchConfig `mapstructure:"web_search"`
	Store     StoreConfig     `mapstructure:"store"`
	Indexer   IndexerConfig   `mapstructure:"indexer"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ProviderConfig selects and configures the generative/embedding provider.
type ProviderConfig struct {
	Type            string        `mapstructure:"type"` // gemini, openai
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	GenerationModel string        `mapstructure:"generation_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	EmbeddingDim    int           `mapstructure:"embedding_dim"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// WebSearchConfig selects and configures the web search adapter.
type WebSearchConfig struct {
	Provider   string        `mapstructure:"provider"` // googlecse, serper
	APIKey     string        `mapstructure:"api_key"`
	EngineID   string        `mapstructure:"engine_id"` // CSE identifier, googlecse only
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// StoreConfig locates the persisted vector store artifacts.
type StoreConfig struct {
	Dir        string `mapstructure:"dir"`
	IndexFile  string `mapstructure:"index_file"`
	ChunksFile string `mapstructure:"chunks_file"`
	TopK       int    `mapstructure:"top_k"`
}

// IndexerConfig controls the offline index build.
type IndexerConfig struct {
	CorpusDir          string `mapstructure:"corpus_dir"`
	ChunkSize          int    `mapstructure:"chunk_size"`
	ChunkOverlap       int    `mapstructure:"chunk_overlap"`
	CollapseWhitespace bool   `mapstructure:"collapse_whitespace"`
}

// LoadConfig reads configuration from file and environment. A missing config
// file is not an error because every required value can come from env vars.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("server.address", ":5001")
	viper.SetDefault("provider.type", "gemini")
	viper.SetDefault("provider.generation_model", "gemini-1.5-flash-latest")
	viper.SetDefault("provider.embedding_model", "text-embedding-004")
	viper.SetDefault("provider.embedding_dim", 768)
	viper.SetDefault("provider.temperature", 0.2)
	viper.SetDefault("provider.max_tokens", 4096)
	viper.SetDefault("provider.timeout", 60*time.Second)
	viper.SetDefault("web_search.provider", "googlecse")
	viper.SetDefault("web_search.max_results", 3)
	viper.SetDefault("web_search.timeout", 15*time.Second)
	viper.SetDefault("store.dir", "vector_store")
	viper.SetDefault("store.index_file", "index.bin")
	viper.SetDefault("store.chunks_file", "legal_chunks.json")
	viper.SetDefault("store.top_k", 5)
	viper.SetDefault("indexer.corpus_dir", "corpus")
	viper.SetDefault("indexer.chunk_size", 500)
	viper.SetDefault("indexer.chunk_overlap", 0)
	viper.SetDefault("indexer.collapse_whitespace", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("SAHAYAK")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	applySecretsFromEnv(&config)
	return &config
}

// applySecretsFromEnv fills credentials from the conventional env var names
// when they are not set through config or SAHAYAK_* overrides.
func applySecretsFromEnv(cfg *Config) {
	if cfg.Provider.APIKey == "" {
		switch cfg.Provider.Type {
		case "openai":
			cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			cfg.Provider.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.WebSearch.APIKey == "" {
		switch cfg.WebSearch.Provider {
		case "serper":
			cfg.WebSearch.APIKey = os.Getenv("SERPER_API_KEY")
		default:
			cfg.WebSearch.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
	if cfg.WebSearch.EngineID == "" {
		cfg.WebSearch.EngineID = os.Getenv("CSE_ID")
	}
}

// ValidateProvider checks that the generative provider can be constructed.
// Both serving and index building need these.
func (c *Config) ValidateProvider() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider api key not configured (provider.api_key or %s)", providerKeyEnv(c.Provider.Type))
	}
	if c.Provider.EmbeddingDim <= 0 {
		return fmt.Errorf("provider.embedding_dim must be > 0")
	}
	return nil
}

// ValidateServe checks everything the HTTP server needs beyond the provider.
func (c *Config) ValidateServe() error {
	if err := c.ValidateProvider(); err != nil {
		return err
	}
	if c.WebSearch.APIKey == "" {
		return fmt.Errorf("web search api key not configured (web_search.api_key)")
	}
	if c.WebSearch.Provider == "googlecse" && c.WebSearch.EngineID == "" {
		return fmt.Errorf("search engine id not configured (web_search.engine_id or CSE_ID)")
	}
	if c.Store.TopK <= 0 {
		return fmt.Errorf("store.top_k must be > 0")
	}
	return nil
}

// ValidateIndex checks everything the index builder needs beyond the provider.
func (c *Config) ValidateIndex() error {
	if err := c.ValidateProvider(); err != nil {
		return err
	}
	if c.Indexer.ChunkSize <= 0 {
		return fmt.Errorf("indexer.chunk_size must be > 0")
	}
	if c.Indexer.ChunkOverlap < 0 || c.Indexer.ChunkOverlap >= c.Indexer.ChunkSize {
		return fmt.Errorf("indexer.chunk_overlap must be in [0, chunk_size)")
	}
	return nil
}

func providerKeyEnv(typ string) string {
	if typ == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
