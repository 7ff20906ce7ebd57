// Package main provides the variantgen command.
//
// variantgen loads Go packages, finds the concrete types implementing the
// given interfaces and writes a file registering them with the variant
// catalog, so the inspector can offer them in its selectors:
//
//	variantgen --interface polyfield/demo.Person --output ./demo ./demo
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"polyfield/internal/analyze"
	"polyfield/internal/common"
	"polyfield/internal/gen"
)

// Global flag values.
var (
	flagInterfaces []string
	flagOutput     string
	flagPackage    string
	flagPkgPath    string
	flagFile       string
	flagUniverse   string
	flagCatalog    string
	flagCheck      bool
	flagDryRun     bool
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "variantgen [packages]",
	Short: "Generate a variant registry for interface implementations",
	Long: `variantgen loads the given packages, finds every exported concrete type
implementing one of the --interface types and writes an init function
registering them with the catalog. A zero-argument NewT constructor
returning the registered type becomes the variant's factory.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringSliceVar(&flagInterfaces, "interface", nil, "interface to collect, as import/path.Name (repeatable)")
	flags.StringVar(&flagOutput, "output", ".", "output directory")
	flags.StringVar(&flagPackage, "package", "", "generated package name (default: the loaded package's name)")
	flags.StringVar(&flagPkgPath, "package-path", "", "import path of the output package (default: the loaded package's path)")
	flags.StringVar(&flagFile, "file", gen.DefaultGeneratorConfig().Filename, "generated file name")
	flags.StringVar(&flagUniverse, "universe", "", "universe expression (default: catalog.Default)")
	flags.StringVar(&flagCatalog, "catalog", gen.DefaultCatalogImport, "catalog import path")
	flags.BoolVar(&flagCheck, "check", false, "fail if the generated file is missing or stale instead of writing it")
	flags.BoolVar(&flagDryRun, "dry-run", false, "print the generated file instead of writing it")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level")

	_ = rootCmd.MarkFlagRequired("interface")
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := common.NewLogger(flagLogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer := analyze.NewAnalyzer()
	if err := analyzer.LoadPackages(args...); err != nil {
		return err
	}

	cfg, err := generatorConfig(analyzer.Roots())
	if err != nil {
		return err
	}

	var reports []*analyze.Report

	for _, name := range flagInterfaces {
		id, ok := analyze.ParseTypeID(name)
		if !ok {
			return fmt.Errorf("invalid interface %q, want import/path.Name", name)
		}

		report, err := analyzer.Implementations(id)
		if err != nil {
			return err
		}

		for _, impl := range report.Implementations {
			logger.Debug("implementation found",
				zap.Stringer("interface", id),
				zap.String("type", impl.TypeExpr(cfg.PackagePath)),
				zap.String("constructor", impl.Constructor))
		}

		reports = append(reports, report)
	}

	file, err := gen.NewGenerator(cfg).Generate(reports)
	if err != nil {
		return err
	}

	switch {
	case flagDryRun:
		_, err := cmd.OutOrStdout().Write(file.Content)
		return err
	case flagCheck:
		current, err := gen.UpToDate(file, cfg.OutputDir)
		if err != nil {
			return err
		}

		if !current {
			return fmt.Errorf("%s is stale; run variantgen", file.Filename)
		}

		return nil
	}

	path, err := gen.WriteFile(file, cfg.OutputDir)
	if err != nil {
		return err
	}

	logger.Info("registry written", zap.String("path", path), zap.Int("interfaces", len(reports)))

	return nil
}

func generatorConfig(roots []analyze.PackageInfo) (gen.GeneratorConfig, error) {
	cfg := gen.DefaultGeneratorConfig()
	cfg.OutputDir = flagOutput
	cfg.Filename = flagFile
	cfg.Universe = flagUniverse
	cfg.CatalogImport = flagCatalog
	cfg.PackageName = flagPackage
	cfg.PackagePath = flagPkgPath

	if cfg.PackagePath == "" {
		// Types of the output package must not be imported into it.
		if !common.IsSingle(roots) {
			return cfg, fmt.Errorf("--package-path is required when loading %d packages", len(roots))
		}

		root, _ := common.First(roots)
		cfg.PackagePath = root.Path
	}

	if cfg.PackageName == "" {
		for _, root := range roots {
			if root.Path == cfg.PackagePath {
				cfg.PackageName = root.Name
			}
		}
	}

	if cfg.PackageName == "" {
		return cfg, fmt.Errorf("--package is required: %s is not among the loaded packages", cfg.PackagePath)
	}

	return cfg, nil
}
