package cli

import (
	"github.com/spf13/cobra"

	"participativos/storage"
)

func (a *app) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [query-string]",
		Short: "Write the filtered proposals as CSV",
		Example: `  participativos export "?cat=Movilidad" --out movilidad.csv
  participativos export "q=parque" --out -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}

			var w storage.ProposalWriter
			if out == "-" {
				w, err = storage.NewCSVStream(cmd.OutOrStdout())
			} else {
				w, err = storage.NewCSVWriter(out)
			}
			if err != nil {
				return err
			}
			if err := w.Write(s.results); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			if out != "-" {
				a.logger.Info("[export] %d proposals written to %s", len(s.results), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.cfg.CSVOutputPath, `output file, "-" for stdout`)
	return cmd
}
