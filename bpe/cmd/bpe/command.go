// Package bpecmd provides the bpe command tree for the bpetrain CLI.
package bpecmd

import (
	"github.com/spf13/cobra"
)

// Command returns the bpe command tree for the bpetrain CLI.
// This command provides train and pretokenize subcommands for learning
// byte-level BPE tokenizers from text corpora.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bpe",
		Short: "Byte-level BPE training operations",
		Long: `Train byte-level BPE (Byte Pair Encoding) tokenizers from text corpora.

Training reads a UTF-8 corpus, splits it into pretokens with the GPT-2
pretokenization pattern, and learns merges until the target vocabulary
size is reached.

Available commands:
  train       - Learn a vocabulary and merge list from a corpus
  pretokenize - Dump the pretoken frequency table for a corpus`,
		Example: `  # Train a 10k vocabulary
  bpetrain bpe train corpus.txt --vocab-size 10000 --special-token "<|endoftext|>"

  # Write GPT-2 style artifacts
  bpetrain bpe train corpus.txt --vocab-size 10000 \
    --vocab-out vocab.json --merges-out merges.txt

  # Inspect the pretoken frequency table
  bpetrain bpe pretokenize corpus.txt --top 20`,
	}

	// Add subcommands
	cmd.AddCommand(
		newTrainCmd(),
		newPretokenizeCmd(),
	)

	return cmd
}
