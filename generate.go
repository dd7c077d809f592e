// Package bpetrain provides tokenizer training implementations.
package bpetrain

// Generate documentation for the root package
//go:generate gomarkdoc -o README.md -e . --embed --repository.url https://github.com/agentstation/bpetrain --repository.default-branch master --repository.path /

// Generate documentation for the bpe package
//go:generate gomarkdoc -o ./bpe/README.md -e ./bpe --embed --repository.url https://github.com/agentstation/bpetrain --repository.default-branch master --repository.path /bpe

// Generate documentation for the CLI package
//go:generate gomarkdoc -o ./cmd/bpetrain/README.md -e ./cmd/bpetrain --embed --repository.url https://github.com/agentstation/bpetrain --repository.default-branch master --repository.path /cmd/bpetrain
