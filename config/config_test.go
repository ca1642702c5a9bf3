package config

import (
	"os"
	"path/filepath"
	"testing"
)

func baseConfig() *Config {
	cfg := &Config{}
	cfg.Provider.Type = "gemini"
	cfg.Provider.APIKey = "test-key"
	cfg.Provider.EmbeddingDim = 768
	cfg.WebSearch.Provider = "googlecse"
	cfg.WebSearch.APIKey = "search-key"
	cfg.WebSearch.EngineID = "engine"
	cfg.Store.TopK = 5
	cfg.Indexer.ChunkSize = 500
	return cfg
}

func TestValidateServe(t *testing.T) {
	if err := baseConfig().ValidateServe(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := baseConfig()
	cfg.Provider.APIKey = ""
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error for missing provider api key")
	}

	cfg = baseConfig()
	cfg.WebSearch.EngineID = ""
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error for googlecse without engine id")
	}

	// serper needs no engine id
	cfg = baseConfig()
	cfg.WebSearch.Provider = "serper"
	cfg.WebSearch.EngineID = ""
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("serper should not require engine id: %v", err)
	}

	cfg = baseConfig()
	cfg.Store.TopK = 0
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error for non-positive top_k")
	}
}

func TestValidateIndex(t *testing.T) {
	if err := baseConfig().ValidateIndex(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := baseConfig()
	cfg.Indexer.ChunkSize = 0
	if err := cfg.ValidateIndex(); err == nil {
		t.Error("expected error for zero chunk size")
	}

	cfg = baseConfig()
	cfg.Indexer.ChunkOverlap = cfg.Indexer.ChunkSize
	if err := cfg.ValidateIndex(); err == nil {
		t.Error("expected error for overlap equal to chunk size")
	}

	cfg = baseConfig()
	cfg.Indexer.ChunkOverlap = -1
	if err := cfg.ValidateIndex(); err == nil {
		t.Error("expected error for negative overlap")
	}

	cfg = baseConfig()
	cfg.Indexer.ChunkOverlap = 200
	cfg.Indexer.ChunkSize = 1000
	if err := cfg.ValidateIndex(); err != nil {
		t.Errorf("valid overlap rejected: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("general:\n  debug: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadConfig(path)
	if cfg.Server.Address != ":5001" {
		t.Errorf("unexpected default address %q", cfg.Server.Address)
	}
	if cfg.Provider.Type != "gemini" || cfg.Provider.EmbeddingDim != 768 {
		t.Errorf("unexpected provider defaults: %+v", cfg.Provider)
	}
	if cfg.Store.ChunksFile != "legal_chunks.json" || cfg.Store.IndexFile != "index.bin" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Indexer.ChunkSize != 500 || cfg.Indexer.ChunkOverlap != 0 || !cfg.Indexer.CollapseWhitespace {
		t.Errorf("unexpected indexer defaults: %+v", cfg.Indexer)
	}
	if cfg.WebSearch.MaxResults != 3 || cfg.WebSearch.Provider != "googlecse" {
		t.Errorf("unexpected web search defaults: %+v", cfg.WebSearch)
	}
}
