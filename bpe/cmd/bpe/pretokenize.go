package bpecmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/agentstation/bpetrain/bpe"
)

var (
	// Pretokenize command flags.
	pretokSpecialTokens []string
	pretokWorkers       int
	pretokTop           int
	pretokOutput        string
)

// newPretokenizeCmd creates the pretokenize subcommand.
func newPretokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pretokenize [corpus]",
		Short: "Dump the pretoken frequency table for a corpus",
		Long: `Run only the pretokenization phase and print the resulting pretoken
frequency table. Useful for inspecting how the GPT-2 pattern and the
special-token cut points segment a corpus before training on it.`,
		Example: `  # Show the 20 most frequent pretokens
  bpetrain bpe pretokenize corpus.txt --top 20

  # Full table as JSON
  bpetrain bpe pretokenize corpus.txt --output json`,
		Args: cobra.ExactArgs(1),
		RunE: runPretokenize,
	}

	// Add flags
	cmd.Flags().StringArrayVar(&pretokSpecialTokens, "special-token", nil, "Special token acting as a hard cut point (repeatable)")
	cmd.Flags().IntVar(&pretokWorkers, "workers", 0, "Pretokenization workers (0 = one per CPU)")
	cmd.Flags().IntVar(&pretokTop, "top", 0, "Show only the N most frequent pretokens (0 = all)")
	cmd.Flags().StringVarP(&pretokOutput, "output", "o", "text", "Output format: text, json")

	return cmd
}

func runPretokenize(_ *cobra.Command, args []string) error {
	counts, err := bpe.PretokenCounts(args[0], pretokSpecialTokens, pretokWorkers)
	if err != nil {
		return fmt.Errorf("pretokenization failed: %w", err)
	}

	type entry struct {
		Pretoken string `json:"pretoken"`
		Count    int64  `json:"count"`
	}
	entries := make([]entry, 0, len(counts))
	for tok, n := range counts {
		entries = append(entries, entry{Pretoken: bpe.EncodeTokenString([]byte(tok)), Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Pretoken < entries[j].Pretoken
	})
	if pretokTop > 0 && pretokTop < len(entries) {
		entries = entries[:pretokTop]
	}

	switch pretokOutput {
	case "json":
		data, err := json.Marshal(map[string]interface{}{
			"distinct":  len(counts),
			"pretokens": entries,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal pretokens: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		fmt.Printf("distinct pretokens: %d\n", len(counts))
		for _, e := range entries {
			fmt.Printf("%8d  %s\n", e.Count, e.Pretoken)
		}
	default:
		return fmt.Errorf("unknown output format: %s", pretokOutput)
	}

	return nil
}
