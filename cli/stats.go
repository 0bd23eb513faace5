package cli

import (
	"github.com/spf13/cobra"

	"participativos/services"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [query-string]",
		Short: "Print a summary of the proposals, optionally filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			insights := services.NewInsightService(a.logger)
			insights.Print(cmd.OutOrStdout(), insights.Generate(s.results))
			return nil
		},
	}
}
