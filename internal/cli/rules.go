package cli

import (
	"github.com/dgallion1/heatsheet/internal/rules"
	"github.com/spf13/cobra"
)

func newRulesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the active recognition rules as YAML",
		Long: `Print the recognition rules in effect. The output is a valid rules
file: edit it and pass it back with --rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rules.Load(g.rulesPath)
			if err != nil {
				return err
			}
			if _, err := set.Compile(); err != nil {
				return err
			}
			data, err := set.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
