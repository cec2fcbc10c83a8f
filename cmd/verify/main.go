package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juparave/appverify/internal/app"
	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/logging"
)

var (
	version   = "0.1.0"
	rootPath  string
	cfgFile   string
	format    string
	outputDir string
	advise    bool
	email     bool
	verbose   bool

	exitCode int
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "verify",
		Short:         "Pre-build sanity checks for the Lista Compra Android app",
		Long:          `verify scans the project tree for missing files, unbalanced delimiters, unused imports, Room and Gradle misconfiguration and legacy Material usage before you compile.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&rootPath, "root", "r", "", "Project root to verify (default: ~/private-users/Jose/proyectos/lista-compra-app)")
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/appverify/config.yaml)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, sarif")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Also save the report into this directory")
	rootCmd.Flags().BoolVar(&advise, "advise", false, "Ask the configured LLM to explain findings")
	rootCmd.Flags().BoolVar(&email, "email", false, "Email the report when findings exist")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags
	if rootPath != "" {
		cfg.RootPath = config.ExpandPath(rootPath)
	}
	if format != "" {
		cfg.Reports.Format = format
	}
	if outputDir != "" {
		cfg.Reports.OutputDir = config.ExpandPath(outputDir)
	}
	if advise {
		cfg.Advisor.Enabled = true
	}
	if email {
		cfg.Email.Enabled = true
	}
	cfg.Verbose = verbose

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	runner := app.NewRunner(cfg, app.WithLogger(logger), app.WithOutput(cmd.OutOrStdout()))
	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	exitCode = res.ExitCode()
	return nil
}
