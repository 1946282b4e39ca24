package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/fs"
	"github.com/fwojciec/themecheck/snapshot"
	"github.com/rs/zerolog"
)

// App encapsulates the application logic for testing.
type App struct {
	Config      Config
	Store       *fs.Store
	Loader      themecheck.ThemeLoader // Decodes snapshot and source text
	Runner      themecheck.AuditRunner
	Reporters   map[string]themecheck.ReportWriter // Keyed by --format
	Differ      themecheck.TextDiffer
	Highlighter themecheck.Highlighter // Nil disables --highlight
	Watcher     themecheck.Watcher
	FixPalette  themecheck.FixPalette
	Stdout      io.Writer
	Logger      zerolog.Logger
}

// AuditOptions selects what the audit command reads and how it reports.
type AuditOptions struct {
	File     string // Empty audits the configured snapshot
	Format   string // Reporters key
	Validate bool   // Only check that every pair role resolves
	Theme    string // Audit only the named theme; empty for all
}

// Sync regenerates the snapshot from the source and runs the audit on it.
// The existing snapshot is reused as the template unless regenerate is set.
// The source is never written.
func (a *App) Sync(ctx context.Context, regenerate bool) error {
	cfg := a.Config
	source, err := a.Store.Read(cfg.Source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	block, err := snapshot.Extract(source, cfg.Identifier)
	if err != nil {
		return err
	}

	existing, err := a.existingSnapshot()
	if err != nil {
		return err
	}
	generated, err := a.embed(block, existing, regenerate)
	if err != nil {
		return err
	}

	if bytes.Equal(generated, existing) {
		a.Logger.Debug().Str("snapshot", cfg.Snapshot).Msg("snapshot up to date")
	} else {
		if err := a.Store.Write(cfg.Snapshot, generated); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		a.Logger.Info().Str("source", cfg.Source).Str("snapshot", cfg.Snapshot).Int("bytes", len(generated)).Msg("snapshot written")
	}

	code, err := a.Runner.Run(ctx, cfg.Snapshot, cfg.Source)
	if err != nil {
		return fmt.Errorf("run audit: %w", err)
	}
	a.Logger.Info().Int("code", code).Msg("audit runner exited")
	if code != 0 {
		return &themecheck.AuditFailure{Code: code}
	}
	return nil
}

// existingSnapshot returns nil when no snapshot has been generated.
func (a *App) existingSnapshot() ([]byte, error) {
	ok, err := a.Store.Exists(a.Config.Snapshot)
	if err != nil || !ok {
		return nil, err
	}
	return a.Store.Read(a.Config.Snapshot)
}

func (a *App) embed(block snapshot.Block, existing []byte, regenerate bool) ([]byte, error) {
	if existing != nil && !regenerate {
		out, err := snapshot.Embed(block, existing)
		if err == nil {
			return out, nil
		}
		a.Logger.Warn().Err(err).Str("snapshot", a.Config.Snapshot).Msg("snapshot unusable as template, regenerating")
	}
	tmpl, err := snapshot.Template(snapshot.TemplateData{
		Source:          a.Config.Source,
		Identifier:      a.Config.Identifier,
		PairsIdentifier: a.Config.PairsIdentifier,
		Pairs:           a.Config.ColorPairs(),
	})
	if err != nil {
		return nil, err
	}
	return snapshot.Embed(block, tmpl)
}

// Apply writes the snapshot's theme literal back to the source. A dry run
// prints the diff instead.
func (a *App) Apply(ctx context.Context, dryRun bool) error {
	cfg := a.Config
	derived, current, err := a.Store.DeriveApply(cfg.Snapshot, cfg.Source, cfg.Identifier)
	if err != nil {
		return err
	}
	if bytes.Equal(derived, current) {
		a.Logger.Info().Str("source", cfg.Source).Msg("source already matches snapshot")
		return nil
	}
	if dryRun {
		_, err := io.WriteString(a.Stdout, a.Differ.Diff(string(current), string(derived)))
		return err
	}
	if err := a.Store.Write(cfg.Source, derived); err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	a.Logger.Info().Str("snapshot", cfg.Snapshot).Str("source", cfg.Source).Msg("snapshot applied to source")
	return nil
}

// Audit checks the themes in a snapshot (or any text declaring them) and
// writes the report. A failing audit returns an AuditFailure with code 1.
func (a *App) Audit(ctx context.Context, opts AuditOptions) error {
	file := opts.File
	if file == "" {
		file = a.Config.Snapshot
	}
	data, err := a.Store.Read(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	reg, err := a.load(data)
	if err != nil {
		return err
	}
	if opts.Theme != "" {
		t, ok := reg.Theme(opts.Theme)
		if !ok {
			return fmt.Errorf("%s declares no theme %q", file, opts.Theme)
		}
		reg.Themes = []themecheck.Theme{t}
	}

	if opts.Validate {
		if err := themecheck.ValidateThemes(reg.Themes, reg.Pairs); err != nil {
			return err
		}
		a.Logger.Info().Str("file", file).Int("themes", len(reg.Themes)).Int("pairs", len(reg.Pairs)).Msg("all pair roles resolve")
		return nil
	}
	return a.report(reg, opts.Format)
}

// load decodes the registry, taking the configured pairs when the text
// declares none.
func (a *App) load(data []byte) (*themecheck.Registry, error) {
	reg, err := a.Loader.Load(data)
	if err != nil {
		return nil, err
	}
	if reg.Pairs == nil {
		reg.Pairs = a.Config.ColorPairs()
	}
	return reg, nil
}

func (a *App) report(reg *themecheck.Registry, format string) error {
	w, ok := a.Reporters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q", format)
	}
	report, err := themecheck.RunAudit(reg.Themes, reg.Pairs, a.Config.LevelPolicy())
	if err != nil {
		return err
	}
	if err := w.WriteReport(a.Stdout, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !report.Passed {
		return &themecheck.AuditFailure{Code: 1}
	}
	return nil
}

// Fix rewrites every foreground role of the snapshot (or the source, when
// onSource is set) to its canonical value, then audits the result. A dry
// run prints the diff and writes nothing.
func (a *App) Fix(ctx context.Context, onSource, dryRun bool) error {
	cfg := a.Config
	path := cfg.Snapshot
	if onSource {
		path = cfg.Source
	}
	text, err := a.Store.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fixed, changes, err := snapshot.Fix(text, cfg.Identifier, a.FixPalette, cfg.MetadataKeys)
	if err != nil {
		return err
	}
	for _, c := range changes {
		a.Logger.Info().Str("theme", c.Theme).Str("role", c.Role).Str("from", c.From).Str("to", c.To).Msg("foreground fixed")
	}

	switch {
	case len(changes) == 0:
		a.Logger.Info().Str("file", path).Msg("nothing to fix")
	case dryRun:
		if _, err := io.WriteString(a.Stdout, a.Differ.Diff(string(text), string(fixed))); err != nil {
			return err
		}
	default:
		if err := a.Store.Write(path, fixed); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		a.Logger.Info().Str("file", path).Int("changes", len(changes)).Msg("fixes written")
	}

	reg, err := a.load(fixed)
	if err != nil {
		return err
	}
	err = a.report(reg, "text")
	var failure *themecheck.AuditFailure
	if errors.As(err, &failure) {
		a.Logger.Warn().Msg("fixed themes still fail the audit; adjust the remaining pairs by hand")
	}
	return err
}

// Extract prints the theme literal declared in the source.
func (a *App) Extract(ctx context.Context, highlight bool) error {
	source, err := a.Store.Read(a.Config.Source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	block, err := snapshot.Extract(source, a.Config.Identifier)
	if err != nil {
		return err
	}
	text := string(block.Text) + "\n"
	if highlight && a.Highlighter != nil {
		return a.Highlighter.Highlight(a.Stdout, text)
	}
	_, err = io.WriteString(a.Stdout, text)
	return err
}

// Watch syncs once, then again on every change to the source, until ctx is
// done. Failed syncs are logged and watching continues.
func (a *App) Watch(ctx context.Context, regenerate bool) error {
	// sync never fails: errors are logged so watching continues.
	sync := func() error {
		err := a.Sync(ctx, regenerate)
		var failure *themecheck.AuditFailure
		switch {
		case err == nil:
			a.Logger.Info().Msg("audit passed")
		case errors.As(err, &failure):
			a.Logger.Warn().Int("code", failure.Code).Msg("audit failed")
		case ctx.Err() != nil:
		default:
			a.Logger.Error().Err(err).Msg("sync failed")
		}
		return nil
	}

	sync()
	a.Logger.Info().Str("source", a.Config.Source).Msg("watching for changes")
	return a.Watcher.Watch(ctx, a.Config.Source, sync)
}
