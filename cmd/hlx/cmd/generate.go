package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianc/hlx/internal/hlx/compile"
	"github.com/kilianc/hlx/internal/hlx/config"
	"github.com/kilianc/hlx/internal/hlx/diag"
	"github.com/kilianc/hlx/internal/hlx/logging"
	"github.com/kilianc/hlx/internal/hlx/outfile"
)

var (
	genDir  string
	genRoot string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate one .hlx.go file next to each .hlx source",
	Long: `Generates one *.hlx.go file next to each *.hlx source.

Paths behave like Go patterns:
  ./...        recurse from cwd (default)
  ./dir        only that directory (non-recursive)
  ./dir/...    recurse from that directory
  ./file.hlx   only that file

With go:generate:
  //go:generate hlx generate --dir .`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&genRoot, "root", "", "module root (defaults to auto-detected go.mod parent from cwd)")
	cmd.Flags().StringVar(&genDir, "dir", "", "if set, only generate for this directory (non-recursive). Useful with go:generate.")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	root := genRoot
	if root == "" {
		if root, err = findModuleRoot(cwd); err != nil {
			return err
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return err
	}

	if strings.TrimSpace(genDir) != "" && len(args) != 0 {
		return errors.New("hlx: cannot use --dir with positional paths")
	}

	f := newFinder(cfg)
	var paths []string
	if strings.TrimSpace(genDir) != "" {
		dir, err := absFrom(cwd, genDir)
		if err != nil {
			return err
		}
		if paths, err = f.dir(dir); err != nil {
			return err
		}
	} else {
		patterns := args
		if len(patterns) == 0 {
			patterns = []string{"./..."}
		}
		if paths, err = f.collect(cwd, patterns); err != nil {
			return err
		}
	}
	sort.Strings(paths)

	g := &generator{
		root:   root,
		cfg:    cfg,
		logger: logger,
		diags:  cmd.ErrOrStderr(),
	}
	return g.run(paths)
}

// generator compiles files one by one; a failing file does not stop the
// rest.
type generator struct {
	root   string
	cfg    *config.Config
	logger *logging.Logger
	diags  io.Writer
}

func (g *generator) run(paths []string) error {
	var written, failed int
	for _, pth := range paths {
		wrote, err := g.file(pth)
		if err != nil {
			failed++
			continue
		}
		if wrote {
			written++
		}
	}

	g.logger.Info("generate finished", logging.Fields{
		"files":   len(paths),
		"written": written,
		"failed":  failed,
	})

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files did not compile", errReported, failed, len(paths))
	}
	return nil
}

func (g *generator) file(pth string) (bool, error) {
	rel := pth
	if r, err := filepath.Rel(g.root, pth); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}

	b, err := os.ReadFile(pth)
	if err != nil {
		g.logger.ErrorWithErr("read failed", err, logging.Fields{"path": rel})
		return false, err
	}

	src, err := compile.CompileFile(rel, b, compile.Options{Logger: g.logger, MaxDepth: g.cfg.MaxDepth})
	if err != nil {
		fmt.Fprintln(g.diags, diag.Format(rel, b, err, g.cfg.Color))
		return false, err
	}

	outPath := pth + g.cfg.OutputSuffix
	wrote, err := outfile.WriteGeneratedFile(outPath, src)
	if err != nil {
		g.logger.ErrorWithErr("write failed", err, logging.Fields{"path": outPath})
		return false, err
	}
	if wrote {
		g.logger.Debug("wrote", logging.Fields{"path": rel + g.cfg.OutputSuffix})
	} else {
		g.logger.Debug("unchanged", logging.Fields{"path": rel + g.cfg.OutputSuffix})
	}
	return wrote, nil
}
