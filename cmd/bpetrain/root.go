package main

import (
	"fmt"

	"github.com/spf13/cobra"

	bpecmd "github.com/agentstation/bpetrain/bpe/cmd/bpe"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bpetrain",
	Short: "A tokenizer training CLI tool",
	Long: `Bpetrain is a CLI tool for training tokenizers from text corpora.

This tool provides a unified interface for tokenizer training algorithms.
Each algorithm is available as a subcommand with its own set of
operations.

Currently supported algorithms:
  - bpe: byte-level Byte Pair Encoding (GPT-2 style pretokenization)

Common operations available for algorithms:
  - train:       Learn a vocabulary and merge list from a corpus
  - pretokenize: Inspect the pretoken frequency table for a corpus`,
	Example: `  # Train a 10k vocabulary with BPE
  bpetrain bpe train corpus.txt --vocab-size 10000 --special-token "<|endoftext|>"

  # Write GPT-2 style artifacts
  bpetrain bpe train corpus.txt --vocab-size 10000 \
    --vocab-out vocab.json --merges-out merges.txt

  # Inspect pretokenization
  bpetrain bpe pretokenize corpus.txt --top 20`,
	SilenceUsage: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bpetrain version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit:     %s\n", commit)
		}
		if buildDate != "unknown" {
			fmt.Printf("  built:      %s\n", buildDate)
		}
		if goVersion != "unknown" {
			fmt.Printf("  go version: %s\n", goVersion)
		}
	},
}

func init() {
	// Register commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(bpecmd.Command())
}
