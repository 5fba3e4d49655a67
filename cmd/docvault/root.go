package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docvault/internal/config"
	"github.com/dgallion1/docvault/internal/mediatype"
	"github.com/dgallion1/docvault/internal/pipeline"
	"github.com/dgallion1/docvault/internal/vault"
	"github.com/dgallion1/docvault/internal/version"
	"github.com/spf13/cobra"
)

var (
	flagVault    string
	flagExt      string
	flagPrune    bool
	flagCollapse bool
	flagNoStrip  bool
)

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Index and serve a vault of linked markdown notes",
	Long: `docvault indexes a directory of markdown notes and attachments into page
trees, resolves [[wikilinks]] and ![[attachments]] between them, and renders
the notes to HTML.

Settings are read from the environment (and an optional .env file); the flags
below override them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docvault %s\n", version.String()))

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagVault, "vault", "d", "", "Vault directory (overrides VAULT_DIR)")
	pf.StringVar(&flagExt, "ext", "", "Document extension (overrides DOC_EXTENSION)")
	pf.BoolVar(&flagPrune, "prune", false, "Drop notes and attachments nothing links to")
	pf.BoolVar(&flagCollapse, "collapse", false, "Lift single children into their parent's place")
	pf.BoolVar(&flagNoStrip, "no-strip", false, `Keep "01 - " ordering prefixes in titles`)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("vault") {
		cfg.VaultDir = flagVault
	}
	if flags.Changed("ext") {
		cfg.DocExtension = flagExt
	}
	if flags.Changed("prune") {
		cfg.PruneUnreferenced = flagPrune
	}
	if flags.Changed("collapse") {
		cfg.CollapseSingleChild = flagCollapse
	}
	if flags.Changed("no-strip") {
		cfg.StripNumericPrefix = !flagNoStrip
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newIndexer(cfg config.Config, log *slog.Logger) *pipeline.Indexer {
	fsys := os.DirFS(cfg.VaultDir)
	return pipeline.NewIndexer(fsys, pipeline.Options{
		Vault: vault.Options{
			DocExtension:       cfg.DocExtension,
			StripNumericPrefix: cfg.StripNumericPrefix,
			Classifier:         mediatype.Classifier{FS: fsys},
		},
		Prune:    cfg.PruneUnreferenced,
		Collapse: cfg.CollapseSingleChild,
	}, log)
}

// buildVault indexes the configured vault for the one-shot commands.
func buildVault(ctx context.Context, cmd *cobra.Command) (*vault.Vault, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	v, _, err := newIndexer(cfg, log).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", cfg.VaultDir, err)
	}
	return v, nil
}
