package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/legalsahayak/sahayak/config"
	"github.com/legalsahayak/sahayak/internal/indexer"
	"github.com/legalsahayak/sahayak/provider"
)

func indexCMD() *cobra.Command {
	var cfgPath string
	var corpusDir string
	var index = &cobra.Command{
		Use:   "index",
		Short: "Build the vector store from the corpus directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			if corpusDir != "" {
				cfg.Indexer.CorpusDir = corpusDir
			}
			if err := cfg.ValidateIndex(); err != nil {
				return err
			}

			prov, err := provider.NewProvider(cfg.Provider)
			if err != nil {
				return err
			}

			logger := log.New(log.Writer(), "[INDEX] ", log.LstdFlags)
			builder := indexer.NewBuilder(prov, indexer.ChunkPolicy{
				Size:               cfg.Indexer.ChunkSize,
				Overlap:            cfg.Indexer.ChunkOverlap,
				CollapseWhitespace: cfg.Indexer.CollapseWhitespace,
			}, logger)

			store, err := builder.Build(cmd.Context(), cfg.Indexer.CorpusDir)
			if err != nil {
				return err
			}
			if err := store.Save(cfg.Store.Dir, cfg.Store.IndexFile, cfg.Store.ChunksFile); err != nil {
				return err
			}
			logger.Printf("indexed %d chunks (dim %d) into %s", store.Len(), store.Dim(), cfg.Store.Dir)
			return nil
		},
	}
	index.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.yaml)")
	index.Flags().StringVar(&corpusDir, "corpus", "", "corpus directory (overrides config)")
	return index
}
