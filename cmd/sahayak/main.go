package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	var root = &cobra.Command{
		Use:   "sahayak",
		Short: "Legal Sahayak RAG backend",
	}
	root.AddCommand(serveCMD(), indexCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
