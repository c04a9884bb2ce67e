package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// ErrInvalidArgs indicates unparseable flags or unexpected arguments.
var ErrInvalidArgs = errors.New("invalid arguments")

// runGenerateCmd parses flags, runs the pipeline once, and returns an exit code.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printGenerateUsage(env.Stdout)
		return ExitSuccess
	}
	if err == nil && len(positional) > 0 {
		err = fmt.Errorf("unexpected argument %q (use --input for the data file)", positional[0])
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", fmt.Errorf("%w: %v", ErrInvalidArgs, err))
		fmt.Fprintln(env.Stderr, "Run 'cv2pdf help generate' for usage.")
		return ExitUsage
	}

	cfg, err := resolveConfig(flags, env.Stderr)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags.common.config, cfg))
		return exitCodeFor(err)
	}

	if err := runGenerate(ctx, flags, cfg, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, "", cfg))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveConfig loads the config file named by --config or CV2PDF_CONFIG,
// then layers environment variables and explicit flags on top.
func resolveConfig(flags *generateFlags, stderr io.Writer) (*config.Config, error) {
	warnUnknownEnvVars(stderr)
	envCfg := loadEnvConfig()

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
		flags.common.config = configName
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies explicitly set CLI flags into cfg (CLI wins).
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if changed("input") {
		cfg.Input.Path = flags.input
	}
	if changed("output") {
		cfg.Output.Name = flags.output
	}
	if changed("output-dir") {
		cfg.Output.Dir = flags.outputDir
	}
	if changed("keep-html") {
		cfg.Output.KeepHTML = flags.keepHTML
	}
	if changed("template") {
		cfg.Template.Path = flags.template
	}
	if changed("style") {
		cfg.Style.Path = flags.style
	}
	if changed("engine") {
		cfg.PDF.Engine = flags.engine
	}
	if changed("timeout") {
		cfg.PDF.Timeout = flags.timeout
	}
	if changed("page-size") {
		cfg.PDF.Page.Size = flags.page.size
	}
	if changed("orientation") {
		cfg.PDF.Page.Orientation = flags.page.orientation
	}
	if changed("margin") {
		margin := flags.page.margin
		cfg.PDF.Page.Margin = &margin
	}
}

// runGenerate builds a Generator from cfg, runs it, and removes the
// intermediate HTML after a successful run unless it should be kept.
func runGenerate(ctx context.Context, flags *generateFlags, cfg *config.Config, env *Environment) error {
	rep := &reporter{w: env.Stdout, verbose: env.Stderr, quiet: flags.common.quiet, showTiming: flags.common.verbose}

	opts, err := buildOptions(cfg, flags.noStyle, env, rep.onEvent)
	if err != nil {
		return err
	}

	g, err := cv2pdf.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()

	req := cv2pdf.Request{
		InputPath:  valueOr(cfg.Input.Path, cv2pdf.DefaultInputPath),
		OutputName: valueOr(cfg.Output.Name, cv2pdf.DefaultOutputName),
	}

	result, err := g.Generate(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Output.KeepHTML {
		return nil
	}

	removed, err := fileutil.RemoveIfExists(result.HTMLPath)
	if err != nil {
		return fmt.Errorf("removing %s: %w", result.HTMLPath, err)
	}
	if removed {
		rep.printf("Cleaned up %s\n", result.HTMLPath)
	}
	return nil
}

// buildOptions translates the merged configuration into Generator options.
func buildOptions(cfg *config.Config, noStyle bool, env *Environment, progress func(cv2pdf.Event)) ([]cv2pdf.Option, error) {
	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	opts := []cv2pdf.Option{
		cv2pdf.WithPage(page),
		cv2pdf.WithProgress(progress),
	}

	if env.Now != nil {
		opts = append(opts, cv2pdf.WithNow(env.Now))
	}
	if env.Engine != nil {
		opts = append(opts, cv2pdf.WithPDFEngine(env.Engine))
	} else if cfg.PDF.Engine != "" {
		opts = append(opts, cv2pdf.WithEngine(cfg.PDF.Engine))
	}
	if d := cfg.PDF.TimeoutDuration(); d > 0 {
		opts = append(opts, cv2pdf.WithTimeout(d))
	}
	if cfg.Template.Path != "" {
		opts = append(opts, cv2pdf.WithTemplatePath(cfg.Template.Path))
	}
	if noStyle {
		opts = append(opts, cv2pdf.WithStylesheetPath(""))
	} else if cfg.Style.Path != "" {
		opts = append(opts, cv2pdf.WithStylesheetPath(cfg.Style.Path))
	}
	if cfg.Output.Dir != "" {
		opts = append(opts, cv2pdf.WithOutputDir(cfg.Output.Dir))
	}

	return opts, nil
}

// buildPageSettings creates cv2pdf.PageSettings from config, filling
// unset fields with defaults.
func buildPageSettings(cfg *config.Config) (*cv2pdf.PageSettings, error) {
	ps := &cv2pdf.PageSettings{
		Size:        valueOr(cfg.PDF.Page.Size, cv2pdf.PageSizeA4),
		Orientation: valueOr(cfg.PDF.Page.Orientation, cv2pdf.OrientationPortrait),
		Margin:      cv2pdf.DefaultMargin,
	}
	if cfg.PDF.Page.Margin != nil {
		ps.Margin = *cfg.PDF.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// engineName returns the engine a run with cfg uses.
func engineName(cfg *config.Config) string {
	if cfg == nil || cfg.PDF.Engine == "" {
		return cv2pdf.DefaultEngine
	}
	return cfg.PDF.Engine
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// hintFor returns actionable hints for err. configName is the config the
// user asked for, cfg the merged configuration (nil when loading failed).
func hintFor(err error, configName string, cfg *config.Config) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths(configName))
	case errors.Is(err, cv2pdf.ErrInputNotFound):
		return hints.ForInputNotFound(valueOr(cfgInputPath(cfg), cv2pdf.DefaultInputPath))
	case errors.Is(err, cv2pdf.ErrTemplateUnavailable) && errors.Is(err, os.ErrNotExist):
		return hints.ForTemplateNotFound()
	case errors.Is(err, cv2pdf.ErrConversionFailed):
		return conversionHints(err, engineName(cfg))
	}
	return ""
}

// conversionHints always includes install guidance for the engine's
// external dependency, preceded by hints specific to the failure.
func conversionHints(err error, engine string) string {
	var h string
	switch {
	case errors.Is(err, cv2pdf.ErrOutputDir):
		h = hints.ForOutputDirectory()
	case errors.Is(err, context.DeadlineExceeded):
		h = hints.ForTimeout()
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		h = hints.ForBrowserConnect()
	}
	return h + hints.ForInstall(engine)
}

func cfgInputPath(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.Input.Path
}

// configSearchPaths lists the user config locations tried for a config name.
func configSearchPaths(name string) []string {
	if name == "" || fileutil.IsFilePath(name) {
		return nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppDirName, name+".yaml")}
}

// reporter prints pipeline progress. Status lines go to w unless quiet;
// stage timings go to verbose when showTiming is set.
type reporter struct {
	w          io.Writer
	verbose    io.Writer
	quiet      bool
	showTiming bool
}

func (r *reporter) onEvent(e cv2pdf.Event) {
	switch e.Stage {
	case cv2pdf.StageLoaded:
		r.printf("Loaded data from %s\n", e.Path)
	case cv2pdf.StageRendering:
		r.printf("Rendering HTML template...\n")
	case cv2pdf.StageHTMLWritten:
		r.printf("HTML saved to %s\n", e.Path)
	case cv2pdf.StageConverting:
		r.printf("Converting to PDF...\n")
	case cv2pdf.StagePDFWritten:
		r.printf("CV generated successfully at %s\n", e.Path)
		r.printf("Generated PDF: %s bytes\n", fileutil.FormatBytes(e.Size))
	}

	if r.showTiming {
		fmt.Fprintf(r.verbose, "  [%s] %s\n", e.Stage, e.Elapsed.Round(time.Millisecond))
	}
}

func (r *reporter) printf(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, format, args...)
}
