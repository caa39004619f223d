package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianc/hlx/internal/hlx/compile"
	"github.com/kilianc/hlx/internal/hlx/config"
	"github.com/kilianc/hlx/internal/hlx/diag"
	"github.com/kilianc/hlx/internal/hlx/logging"
	"github.com/kilianc/hlx/internal/hlx/outfile"
)

var interval time.Duration

var rootCmd = &cobra.Command{
	Use:          "playground",
	Short:        "Watch ./playground/page.hlx and regenerate it on changes",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		w, err := newWatcher(".", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return w.run(ctx, interval)
	},
}

func main() {
	rootCmd.Flags().DurationVar(&interval, "interval", 300*time.Millisecond, "watch polling interval")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// watcher polls one file and compiles it in process whenever its content
// hash changes.
type watcher struct {
	target string
	cfg    *config.Config
	logger *logging.Logger
	diags  io.Writer

	lastHash [32]byte
	have     bool
}

func newWatcher(start string, diags io.Writer) (*watcher, error) {
	root, err := findModuleRoot(start)
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.Resolve("", root)
	if err != nil {
		return nil, err
	}
	return &watcher{
		target: filepath.Join(root, "playground", "page"+cfg.Extension),
		cfg:    cfg,
		logger: logging.GetDefault().WithField("component", "playground"),
		diags:  diags,
	}, nil
}

func (w *watcher) run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if _, err := w.step(); err != nil && !errors.Is(err, errCompile) {
			w.logger.ErrorWithErr("playground step failed", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

var errCompile = errors.New("playground: compile failed")

// step regenerates the target if it changed since the last call and
// reports whether it did.
func (w *watcher) step() (bool, error) {
	src, err := os.ReadFile(w.target)
	if err != nil {
		return false, fmt.Errorf("playground: read error: %w", err)
	}
	h := sha256.Sum256(src)
	if w.have && h == w.lastHash {
		return false, nil
	}
	w.lastHash = h
	w.have = true

	out, err := compile.CompileFile(w.target, src, compile.Options{Logger: w.logger, MaxDepth: w.cfg.MaxDepth})
	if err != nil {
		fmt.Fprintln(w.diags, diag.Format(w.target, src, err, w.cfg.Color))
		return true, fmt.Errorf("%w: %w", errCompile, err)
	}
	if _, err := outfile.WriteGeneratedFile(w.target+w.cfg.OutputSuffix, out); err != nil {
		return true, err
	}
	w.logger.Info("regenerated", logging.Fields{"path": w.target + w.cfg.OutputSuffix})
	return true, nil
}

func findModuleRoot(start string) (string, error) {
	d, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("could not find go.mod above %s", start)
		}
		d = parent
	}
}
