package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Vault layout
	VaultDir           string
	DocExtension       string
	StripNumericPrefix bool

	// Optional indexing phases
	PruneUnreferenced   bool
	CollapseSingleChild bool

	// Auth; empty disables it
	APIKey string

	// Rendered pages kept in memory
	RenderCacheSize int
}

// Load reads the configuration from the environment, after merging in a
// .env file from the working directory if one exists.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		VaultDir:           os.Getenv("VAULT_DIR"),
		DocExtension:       envOr("DOC_EXTENSION", ".md"),
		StripNumericPrefix: envBool("STRIP_NUMERIC_PREFIX", true),

		PruneUnreferenced:   envBool("PRUNE_UNREFERENCED", false),
		CollapseSingleChild: envBool("COLLAPSE_SINGLE_CHILD", false),

		APIKey: os.Getenv("API_KEY"),

		RenderCacheSize: envInt("RENDER_CACHE_SIZE", 256),
	}

	if cfg.RenderCacheSize <= 0 {
		cfg.RenderCacheSize = 256
	}

	return cfg
}

func (c Config) Validate() error {
	if c.VaultDir == "" {
		return fmt.Errorf("VAULT_DIR is required")
	}
	info, err := os.Stat(c.VaultDir)
	if err != nil {
		return fmt.Errorf("VAULT_DIR: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("VAULT_DIR %q is not a directory", c.VaultDir)
	}
	if !strings.HasPrefix(c.DocExtension, ".") || len(c.DocExtension) < 2 {
		return fmt.Errorf("DOC_EXTENSION %q must start with a dot", c.DocExtension)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT %q is not a number", c.Port)
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
