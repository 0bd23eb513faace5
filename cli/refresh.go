package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"participativos/scraper/ava"
	"participativos/storage"
)

func (a *app) refreshVotesCmd() *cobra.Command {
	var (
		dryRun bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "refresh-votes",
		Short: "Read current support counts from the proposal pages and update the proposals file",
		Long: `refresh-votes visits the page of every proposal with a headless browser,
reads its support count and writes changed counts back into the proposals
file. The file is backed up first. A page that cannot be read keeps its
previous count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := storage.OpenProposalFile(a.cfg.ProposalsSource)
			if err != nil {
				return fmt.Errorf("cli: refresh-votes needs a local proposals file: %w", err)
			}
			raw, err := file.RawProposals()
			if err != nil {
				return err
			}
			if limit > 0 && limit < len(raw) {
				raw = raw[:limit]
			}

			a.logger.Info("=== Vote refresh starting ===")
			a.logger.Info("Config: %d proposals | concurrency: %d | rate: %dms",
				len(raw), a.cfg.MaxConcurrency, a.cfg.RateLimitMs)

			updates, err := ava.New(a.cfg, a.logger).Refresh(cmd.Context(), raw)
			if err != nil && len(updates) == 0 {
				return err
			}
			if err != nil {
				a.logger.Warn("Refresh stopped early, applying %d results: %v", len(updates), err)
			}

			failed := 0
			for _, u := range updates {
				if u.Err != nil {
					failed++
				}
			}

			if dryRun {
				for _, u := range updates {
					if u.Changed() {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d\n", u.Code, u.OldVotes, u.NewVotes)
					}
				}
				return nil
			}

			backup, err := file.Backup(a.cfg.BackupDir, time.Now())
			if err != nil {
				return err
			}
			a.logger.Info("Backup written to %s", backup)

			changed, err := file.ApplyVotes(updates)
			if err != nil {
				return err
			}
			if changed > 0 {
				if err := file.Save(); err != nil {
					return err
				}
			}
			a.logger.Info("=== Vote refresh done: %d visited, %d changed, %d failed ===",
				len(updates), changed, failed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print changes without writing")
	cmd.Flags().IntVar(&limit, "limit", 0, "only refresh the first N proposals")
	return cmd
}
