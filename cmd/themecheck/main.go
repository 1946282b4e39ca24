// Command themecheck audits theme colors against WCAG contrast requirements
// and keeps the audit snapshot in sync with the theme source.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/chroma"
	"github.com/fwojciec/themecheck/fs"
	"github.com/fwojciec/themecheck/fsnotify"
	"github.com/fwojciec/themecheck/godiff"
	"github.com/fwojciec/themecheck/jsobject"
	"github.com/fwojciec/themecheck/lipgloss"
	"github.com/fwojciec/themecheck/process"
	"github.com/fwojciec/themecheck/yaml"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	cancel()

	var failure *themecheck.AuditFailure
	if errors.As(err, &failure) {
		os.Exit(failure.Code)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Reports and diffs go to stdout, logs
// and the audit subprocess's diagnostics to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile string
		app     *App
	)

	root := &cobra.Command{
		Use:   "themecheck",
		Short: "Audit theme colors for WCAG contrast",
		Long: `themecheck copies the theme object from the source into a standalone
audit snapshot and audits every theme against the configured color pairs.
Without a subcommand it runs sync; with --apply it runs apply.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			app, err = newApp(cfg, used, stdout, stderr)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if apply, _ := cmd.Flags().GetBool("apply"); apply {
				return app.Apply(cmd.Context(), false)
			}
			return app.Sync(cmd.Context(), false)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.themecheck.yaml)")
	flags.String("source", "", "theme source file")
	flags.String("snapshot", "", "audit snapshot file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	root.Flags().Bool("apply", false, "write the snapshot's themes back to the source")

	root.AddCommand(
		newSyncCmd(func() *App { return app }),
		newApplyCmd(func() *App { return app }),
		newAuditCmd(func() *App { return app }),
		newFixCmd(func() *App { return app }),
		newExtractCmd(func() *App { return app }),
	)
	return root
}

func newSyncCmd(app func() *App) *cobra.Command {
	var watch, regenerate bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the snapshot from the source and audit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return app().Watch(cmd.Context(), regenerate)
			}
			return app().Sync(cmd.Context(), regenerate)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "sync again whenever the source changes")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "rebuild the snapshot from the built-in template")
	return cmd
}

func newApplyCmd(app func() *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Write the snapshot's themes back to the source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Apply(cmd.Context(), dryRun)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the diff instead of writing")
	return cmd
}

func newAuditCmd(app func() *App) *cobra.Command {
	var opts AuditOptions
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the themes in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Audit(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "file to audit (default: the snapshot)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "report format (text, yaml)")
	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "only check that every pair role is defined")
	cmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "audit only the named theme")
	return cmd
}

func newFixCmd(app func() *App) *cobra.Command {
	var onSource, dryRun bool
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Reset foreground colors to canonical values and audit the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Fix(cmd.Context(), onSource, dryRun)
		},
	}
	cmd.Flags().BoolVar(&onSource, "in-source", false, "fix the source instead of the snapshot")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the diff instead of writing")
	return cmd
}

func newExtractCmd(app func() *App) *cobra.Command {
	var highlight bool
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the theme object declared in the source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Extract(cmd.Context(), highlight)
		},
	}
	cmd.Flags().BoolVar(&highlight, "highlight", false, "syntax-highlight the output")
	return cmd
}

// newApp wires the production implementations. configFile is the config
// file actually read, passed on to the audit subprocess.
func newApp(cfg Config, configFile string, stdout, stderr io.Writer) (*App, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: cfg.NoColor}).
		Level(level).With().Timestamp().Logger()

	var opts []termenv.OutputOption
	if cfg.NoColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	renderer := lg.NewRenderer(stdout, opts...)

	command := cfg.Runner.Command
	if len(command) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
		command = RunnerCommand(cfg, configFile, exe)
	}

	language := chroma.NewDetector().DetectFromPath(cfg.Source)
	highlighter, err := chroma.NewHighlighter(language, chroma.StyleFromPalette(renderer, chroma.DefaultPalette()))
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Store:  fs.NewStore(),
		Loader: &jsobject.Loader{
			Identifier:      cfg.Identifier,
			PairsIdentifier: cfg.PairsIdentifier,
			MetadataKeys:    cfg.MetadataKeys,
			Policy:          cfg.LevelPolicy(),
		},
		Runner: process.NewRunner(command, stdout, stderr),
		Reporters: map[string]themecheck.ReportWriter{
			"text": lipgloss.NewReporter(renderer, lipgloss.PaletteFor(renderer)),
			"yaml": yaml.NewEncoder(),
		},
		Differ:      godiff.NewDiffer(),
		Highlighter: highlighter,
		Watcher:     fsnotify.NewWatcher(),
		FixPalette:  themecheck.DefaultFixPalette(),
		Stdout:      stdout,
		Logger:      logger,
	}, nil
}

// RunnerCommand returns the argv that audits the snapshot with exe, the
// running themecheck binary. It is used when runner.command is not set.
func RunnerCommand(cfg Config, configFile, exe string) []string {
	command := []string{exe, "audit", "--file", process.SnapshotArg}
	if configFile != "" {
		command = append(command, "--config", configFile)
	}
	if cfg.NoColor {
		command = append(command, "--no-color")
	}
	return command
}
