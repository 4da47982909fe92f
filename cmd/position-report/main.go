// Command position-report runs the position estimator, parses its CSV
// output and shows a true-vs-estimated spatial chart and a per-target error
// chart in the browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/position.report/internal/config"
	"github.com/banshee-data/position.report/internal/display"
	"github.com/banshee-data/position.report/internal/estimator"
	"github.com/banshee-data/position.report/internal/fsutil"
	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/pipeline"
	"github.com/banshee-data/position.report/internal/records"
	"github.com/banshee-data/position.report/internal/render"
	"github.com/banshee-data/position.report/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("position-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		estimatorPath = fs.String("estimator", config.DefaultEstimatorPath, "Path to the estimator executable")
		configPath    = fs.String("config", "", "Optional JSON config file")
		locale        = fs.String("locale", "en", "Chart language (en, zh)")
		font          = fs.String("font", "", "Font family for chart text")
		outDir        = fs.String("out", "", "Directory to save chart artifacts (nothing is saved when empty)")
		png           = fs.Bool("png", false, "Also render static PNG charts")
		renderOnly    = fs.Bool("render-only", false, "Render charts without opening the browser")
		timeout       = fs.Duration("timeout", 0, "Estimator timeout (0 waits indefinitely)")
		warnEmpty     = fs.Bool("warn-empty", true, "Log a warning when the estimator reports no targets")
		debug         = fs.Bool("debug", false, "Enable debug logging")
		showVersion   = fs.Bool("version", false, "Print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	logger := log.New(stderr, "", log.LstdFlags)
	monitoring.SetLogger(logger.Printf)
	monitoring.SetDebug(*debug)

	cfg := config.DefaultReportConfig()
	if *configPath != "" {
		fileCfg, err := config.LoadReportConfig(fsutil.OSFileSystem{}, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 1
		}
		cfg.Merge(fileCfg)
	}

	// Explicit flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "estimator":
			cfg.EstimatorPath = estimatorPath
		case "locale":
			cfg.Locale = locale
		case "font":
			cfg.FontFamily = font
		case "out":
			cfg.OutputDir = outDir
		case "png":
			cfg.PNG = png
		case "timeout":
			d := timeout.String()
			cfg.Timeout = &d
		case "warn-empty":
			cfg.WarnEmpty = warnEmpty
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	renderer, err := render.NewRenderer(cfg.RenderConfig())
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	inv := estimator.NewInvoker(cfg.GetEstimatorPath())
	inv.Timeout = cfg.GetTimeout()
	inv.SetLogger(monitoring.Debugger{})

	var displays display.Multi
	if dir := cfg.GetOutputDir(); dir != "" {
		displays = append(displays, display.NewDirDisplay(dir))
	}
	if !*renderOnly {
		b := display.NewBrowserDisplay(renderer.PageTitle())
		b.Logger = monitoring.Debugger{}
		displays = append(displays, b)
	}

	var shown display.Display = display.NopDisplay{}
	if len(displays) > 0 {
		shown = displays
	}

	p := &pipeline.Pipeline{
		Estimator: inv,
		Renderer:  renderer,
		Display:   shown,
		Logger:    monitoring.Debugger{},
	}
	if cfg.GetWarnEmpty() {
		p.OnEmpty = pipeline.WarnEmpty
	}

	monitoring.Debugf("%s", version.String())
	out, err := p.Run(ctx)
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	monitoring.Logf("[%s] %d targets, %d artifacts in %s", out.RunID, out.Records.Len(), len(out.Artifacts), out.Duration.Round(time.Millisecond))
	return 0
}

// reportError prints a diagnostic for err. Estimator stderr is printed
// verbatim after the summary line.
func reportError(w io.Writer, err error) {
	var pe *estimator.ExternalProcessError
	var te *estimator.TimeoutError
	var me *records.MalformedDataError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(w, "estimator failed (exit code %d): %s\n", pe.ExitCode, pe.Path)
		if pe.Stderr != "" {
			fmt.Fprint(w, pe.Stderr)
			if pe.Stderr[len(pe.Stderr)-1] != '\n' {
				fmt.Fprintln(w)
			}
		}
		if pe.Err != nil {
			fmt.Fprintf(w, "%v\n", pe.Err)
		}
	case errors.As(err, &te):
		fmt.Fprintf(w, "estimator timed out after %s: %s\n", te.Timeout, te.Path)
	case errors.As(err, &me):
		fmt.Fprintf(w, "estimator output is malformed at line %d: %s\n", me.Line, me.Reason)
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
