package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirpulse/internal/config"
	"github.com/idelchi/dirpulse/internal/scan"
)

func newLogger(debug bool, writer io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

func logic(ctx context.Context, cfg config.Config, path string, stdout, stderr io.Writer) error {
	enableProgress := cfg.Output == config.OutputTable &&
		!cfg.Debug &&
		isTerminal(stderr)

	log := newLogger(cfg.Debug, stderr)

	status := progress{writer: stderr}

	var progressHook func(files, bytes int64)

	if enableProgress {
		status.start()

		progressHook = status.update
	}

	report, err := scan.Run(ctx, scan.Options{
		Path:     path,
		TopN:     cfg.TopSize,
		Hidden:   cfg.Hidden,
		Follow:   cfg.Follow,
		Excludes: cfg.Exclude,
		Depth:    cfg.Depth,
		Walker:   cfg.Walker,
		Logger:   log,
	}, progressHook)

	if enableProgress {
		status.stop()
	}

	if err != nil {
		if report == nil || !errors.Is(err, context.Canceled) {
			return err
		}

		log.Warn("scan interrupted, printing partial results", "error", err)
	}

	noColor := cfg.NoColor || !isTerminal(stdout)

	switch cfg.Output {
	case config.OutputJSON:
		return PrintJSON(report, stdout)
	case config.OutputYAML:
		return PrintYAML(report, stdout)
	case config.OutputTable:
		return PrintTable(report, stdout, noColor)
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Output)
	}
}

// progress draws the in-place scan status line.
type progress struct {
	writer io.Writer
}

// start hides the cursor for in-place updates.
func (p progress) start() {
	fmt.Fprint(p.writer, "\033[?25l")
}

func (p progress) update(files, bytes int64) {
	msg := fmt.Sprintf("Scanning… %d files, %s",
		files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
	fmt.Fprintf(p.writer, "\r\033[2K%s\r", msg)
}

// stop clears the status line and restores the cursor.
func (p progress) stop() {
	fmt.Fprint(p.writer, "\r\033[2K\r\033[?25h")
}

// isTerminal reports whether writer is a terminal.
func isTerminal(writer io.Writer) bool {
	f, ok := writer.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
