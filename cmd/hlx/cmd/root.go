package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianc/hlx/internal/hlx/config"
	"github.com/kilianc/hlx/internal/hlx/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	noColor   bool

	cfg    = config.Default()
	logger = logging.GetDefault()
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("hlx: failed")

var rootCmd = &cobra.Command{
	Use:   "hlx [paths...]",
	Short: "Compile Go files with inline HTML literals to gomponents",
	Long: `hlx compiles .hlx files (Go source with inline markup such as
<p class="x">@name</p>) into .hlx.go files that build the same markup with
maragu.dev/gomponents.

Without a subcommand hlx runs generate.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: hlx.toml or hlx.yaml up to the module root, or $"+config.EnvVar+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	addGenerateFlags(rootCmd)
}

// setup loads the config and applies flag overrides before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	c, path, err := config.Resolve(cfgFile, cwd)
	if err != nil {
		return err
	}

	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logFormat != "" {
		c.Log.Format = logFormat
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		c.Color = false
	}

	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return err
	}

	logger = logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Name:   "hlx",
	})
	logging.SetDefault(logger)
	cfg = c

	if path != "" {
		logger.Debug("loaded config", logging.Fields{"path": path})
	}
	return nil
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
