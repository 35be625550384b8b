// Command pageflow runs the pagination engine over measured layout
// documents from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/pageflow"
	"github.com/tsawler/pageflow/model"
)

var log *zap.Logger

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	if log, err = newLogger(cmd.Bool("debug")); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	log.Debug("Program started", zap.Strings("args", os.Args))
	return ctx, nil
}

func destroyAppContext(context.Context, *cli.Command) error {
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

var errWasHandled bool

func exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	if log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "pageflow",
		Usage:           "pagination engine for measured layout documents",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:      "paginate",
				Usage:     "Runs a layout pass and writes the resulting pages as JSON",
				Action:    runPaginate,
				ArgsUsage: "SOURCE [DESTINATION]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "input `FORMAT`: yaml or html (default: by file extension)"},
					&cli.FloatFlag{Name: "page-width", Usage: "override page width in `POINTS`"},
					&cli.FloatFlag{Name: "page-height", Usage: "override page height in `POINTS`"},
					&cli.FloatFlag{Name: "margin", Usage: "override all four margins with `POINTS`"},
					&cli.IntFlag{Name: "columns", Usage: "override column `COUNT`"},
					&cli.FloatFlag{Name: "column-gap", Usage: "gap between columns in `POINTS`"},
					&cli.BoolFlag{Name: "landscape", Usage: "lay pages out in landscape orientation"},
					&cli.FloatFlag{Name: "tolerance", Usage: "column balancing tolerance in `POINTS`"},
					&cli.IntFlag{Name: "max-pages", Usage: "abort after `N` pages"},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Runs a layout pass and prints a per-page summary",
				Action:    runInspect,
				ArgsUsage: "SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "input `FORMAT`: yaml or html (default: by file extension)"},
				},
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// openPaginator resolves the input format and builds the Paginator.
func openPaginator(cmd *cli.Command) (*pageflow.Paginator, error) {
	source := cmd.Args().Get(0)
	if source == "" {
		return nil, fmt.Errorf("no source document specified")
	}

	format := cmd.String("format")
	if format == "" {
		switch strings.ToLower(filepath.Ext(source)) {
		case ".html", ".htm":
			format = "html"
		default:
			format = "yaml"
		}
	}

	switch format {
	case "yaml":
		return pageflow.FromYAML(source), nil
	case "html":
		return pageflow.FromHTML(source), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
}

func applyOverrides(p *pageflow.Paginator, cmd *cli.Command) *pageflow.Paginator {
	if cmd.IsSet("page-width") || cmd.IsSet("page-height") {
		p = p.PageSize(cmd.Float("page-width"), cmd.Float("page-height"))
	}
	if cmd.IsSet("margin") {
		m := cmd.Float("margin")
		p = p.Margins(m, m, m, m)
	}
	if cmd.IsSet("columns") {
		p = p.Columns(int(cmd.Int("columns")), cmd.Float("column-gap"))
	}
	if cmd.Bool("landscape") {
		p = p.Landscape()
	}
	if cmd.IsSet("tolerance") {
		p = p.BalanceTolerance(cmd.Float("tolerance"))
	}
	if cmd.IsSet("max-pages") {
		p = p.MaxPages(int(cmd.Int("max-pages")))
	}
	return p
}

func runPaginate(_ context.Context, cmd *cli.Command) error {
	p, err := openPaginator(cmd)
	if err != nil {
		return err
	}
	p = applyOverrides(p, cmd)

	result, warnings, err := p.Paginate()
	if err != nil {
		return fmt.Errorf("layout pass failed: %w", err)
	}
	for _, w := range warnings {
		log.Warn("Layout warning", zap.String("message", w.Message))
	}

	out := os.Stdout
	if dest := cmd.Args().Get(1); dest != "" {
		out, err = os.Create(dest)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dest, err)
		}
		defer out.Close()
		log.Info("Writing pages", zap.String("file", dest), zap.Int("pages", len(result.Pages)))
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	p, err := openPaginator(cmd)
	if err != nil {
		return err
	}

	result, warnings, err := p.Paginate()
	if err != nil {
		return fmt.Errorf("layout pass failed: %w", err)
	}

	for i, page := range result.Pages {
		frags := page.Fragments()
		if page.Blank {
			fmt.Printf("page %d: blank (parity)\n", i+1)
			continue
		}
		fmt.Printf("page %d: %gx%g, %d column(s), %d fragment(s)\n",
			i+1, page.Size.Width, page.Size.Height, page.Columns.Count, len(frags))
		for _, frag := range frags {
			fmt.Printf("  %s col=%d y=%.1f h=%.1f%s\n",
				frag.BlockID, frag.ColumnIndex, frag.Y, frag.Height, fragmentDetail(frag))
		}
	}
	if len(warnings) > 0 {
		fmt.Println(pageflow.FormatWarnings(warnings))
	}
	return nil
}

func fragmentDetail(frag *model.Fragment) string {
	if frag.Table != nil {
		s := fmt.Sprintf(" rows=%d..%d", frag.Table.FromRow, frag.Table.ToRow)
		if frag.Table.Partial != nil {
			s += " partial"
		}
		return s
	}
	if frag.ToLine > frag.FromLine {
		return fmt.Sprintf(" lines=%d..%d", frag.FromLine, frag.ToLine)
	}
	return ""
}
