package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilianc/hlx/internal/hlx/ast"
	"github.com/kilianc/hlx/internal/hlx/diag"
	"github.com/kilianc/hlx/internal/hlx/parser"
	"github.com/kilianc/hlx/internal/hlx/token"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a file",
	Long: `Parses a .hlx file and prints its syntax tree as YAML, or JSON with
--json. Nothing is generated.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print JSON instead of YAML")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p := parser.New(parser.Options{Logger: logger, MaxDepth: cfg.MaxDepth})
	root, err := p.Parse(token.Split(string(b)))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), diag.Format(path, b, err, cfg.Color))
		return fmt.Errorf("%w: %s", errReported, path)
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.Dump(root))
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(ast.Dump(root)); err != nil {
		return err
	}
	return enc.Close()
}
