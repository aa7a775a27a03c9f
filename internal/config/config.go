package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Chunking
	MaxTokens int
	Tokenizer string

	// Input shaping
	HeaderRow    int // zero-based header row index for tabular sources
	CleanContent bool
	EmitHeadings bool

	// serve subcommand
	Port           string
	APIKey         string
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		MaxTokens: envInt("SHEETCHUNK_MAX_TOKENS", 300),
		Tokenizer: envOr("SHEETCHUNK_TOKENIZER", "heuristic"),

		HeaderRow:    envInt("SHEETCHUNK_HEADER_ROW", 0),
		CleanContent: envBool("SHEETCHUNK_CLEAN", false),
		EmitHeadings: envBool("SHEETCHUNK_EMIT_HEADINGS", false),

		Port:           envOr("SHEETCHUNK_PORT", "8091"),
		APIKey:         os.Getenv("SHEETCHUNK_API_KEY"),
		MaxUploadBytes: envInt64("SHEETCHUNK_MAX_UPLOAD_BYTES", 52428800), // 50MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.HeaderRow < 0 {
		cfg.HeaderRow = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.MaxTokens < 1 {
		return fmt.Errorf("SHEETCHUNK_MAX_TOKENS must be at least 1, got %d", c.MaxTokens)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
