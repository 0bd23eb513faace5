package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"participativos/models"
)

// queryResult is the --json output of the query command.
type queryResult struct {
	URL       string             `json:"url"`
	Params    url.Values         `json:"params"`
	Total     int                `json:"total"`
	Proposals []*models.Proposal `json:"proposals"`
}

func (a *app) queryCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "query [query-string]",
		Short: "Filter proposals with a query string and print the result",
		Example: `  participativos query "?cat=Movilidad&tags=Bici&sort=votes_asc"
  participativos query "q=parque" --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			writeList(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func writeJSON(w io.Writer, s *session) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(queryResult{
		URL:       s.address.ShareURL(),
		Params:    s.address.Params(),
		Total:     len(s.results),
		Proposals: s.results,
	})
}

func writeList(w io.Writer, s *session) {
	for i, p := range s.results {
		urgent := ""
		if p.Urgent {
			urgent = " [urgente]"
		}
		fmt.Fprintf(w, "%3d. %s %s%s\n     %s · %d apoyos\n",
			i+1, s.registry.Style(p.Category).Emoji, p.Title, urgent, p.Category, p.Votes)
	}
	fmt.Fprintf(w, "\n%d de %d propuestas\n%s\n", len(s.results), len(s.dataset.Proposals), s.address.ShareURL())
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
