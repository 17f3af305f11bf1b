// Package cli implements the heatsheet command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/heatsheet/internal/rules"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// globals holds flags shared by every command.
type globals struct {
	rulesPath string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "heatsheet",
		Short: "Turn swim meet heat sheets into CSV",
		Long: `heatsheet reads the text of a meet program (Wettkampf, Lauf, Bahn),
rebuilds the competition and heat each lane line belongs to, and writes
one CSV record per start.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.rulesPath, "rules", "", "YAML file with recognition rules (default: built-in)")

	root.AddCommand(
		newConvertCmd(g),
		newServeCmd(g),
		newRulesCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (g *globals) compiledRules() (*rules.Compiled, error) {
	set, err := rules.Load(g.rulesPath)
	if err != nil {
		return nil, err
	}
	return set.Compile()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heatsheet %s\n", Version)
		},
	}
}
