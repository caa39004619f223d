package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kilianc/hlx/internal/hlx/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a file, one quoted token per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, tok := range token.Split(string(b)) {
			fmt.Fprintln(out, strconv.Quote(tok))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
