// Package main provides the polyfield CLI.
//
// polyfield renders the demo object graph with the text surface, applies
// scripted edits to it and lists the variants the catalog offers for its
// interface fields.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"polyfield/demo"
	"polyfield/internal/catalog"
	"polyfield/internal/common"
	"polyfield/internal/diagnostic"
	"polyfield/internal/inspect"
	"polyfield/internal/textui"
)

// Global flag values.
var (
	flagConfig   string
	flagLogLevel string
	flagDump     bool
	flagOverlay  string
	flagStrict   bool
	flagDiags    bool
)

// env is the state shared by subcommands, set by PersistentPreRunE.
type env struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
	overlay *inspect.Overlay
	dump    bool
	diags   bool
}

var current *env

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polyfield",
	Short: "Inspect and edit the demo object graph",
	Long: `polyfield draws the demo Player as an indented tree, the way an inspector
panel would, and lets a YAML script pick variants for its interface fields,
edit values and fold groups open.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current != nil {
			_ = current.logger.Sync()
		}

		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "config file (default: ./polyfield.yaml if present)")
	flags.StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level")
	flags.BoolVar(&flagDump, "dump", false, "dump the final object graph")
	flags.StringVar(&flagOverlay, "overlay", "", "field configuration overlay (YAML)")
	flags.BoolVar(&flagStrict, "strict-factories", false, "refuse variants without a factory")
	flags.BoolVar(&flagDiags, "diagnostics", false, "list the diagnostics collected while rendering")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(variantsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := common.NewLogger(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}

	opts := []catalog.Option{catalog.WithLogger(logger)}
	if cfg.GetBool(cfgKeyStrict) {
		opts = append(opts, catalog.WithStrictFactories())
	}

	e := &env{
		logger:  logger,
		catalog: catalog.New(opts...),
		dump:    cfg.GetBool(cfgKeyDump),
		diags:   cfg.GetBool(cfgKeyDiags),
	}

	if path := cfg.GetString(cfgKeyOverlay); path != "" {
		e.overlay, err = inspect.LoadOverlay(path)
		if err != nil {
			return err
		}
	}

	current = e

	return nil
}

// inspector builds an inspector over surface with the configured stack.
func (e *env) inspector(surface inspect.Surface) *inspect.Inspector {
	return inspect.New(surface,
		inspect.WithCatalog(e.catalog),
		inspect.WithLogger(e.logger),
		inspect.WithOverlay(e.overlay),
		inspect.WithStore(inspect.StoreFunc(func() error {
			e.logger.Debug("commit")
			return nil
		})),
	)
}

// finish prints the dump and the diagnostics when requested.
func (e *env) finish(cmd *cobra.Command, player *demo.Player, diags diagnostic.Diagnostics) {
	e.logger.Debug("render finished",
		zap.Bool("valid", diags.IsValid()),
		zap.Int("errors", len(diags.Errors)),
		zap.Int("warnings", len(diags.Warnings)))

	if e.dump {
		textui.Dump(cmd.OutOrStdout(), player)
	}

	if e.diags {
		for _, d := range diags.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d.Severity, d)
		}
	}
}
