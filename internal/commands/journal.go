package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/audit"
	"github.com/jcjr031064/cafe-ledger-flow/internal/journal"
)

func newJournalCommand(a *app) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal entries",
	}
	journalCmd.AddCommand(newJournalPostCommand(a))
	return journalCmd
}

func newJournalPostCommand(a *app) *cobra.Command {
	var file, format string
	var postDrafts, showAudit bool

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Record a batch of journal entries and print the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if format != "table" && format != "csv" {
				return fmt.Errorf("unknown format %q (want table or csv)", format)
			}

			l, err := a.newLedger()
			if err != nil {
				return err
			}
			// Rejected entries are audited too, so the trail is saved on every exit.
			defer func() {
				err = errors.Join(err, a.saveAudit(l))
			}()

			if err := a.replay(l, file); err != nil {
				return err
			}

			if postDrafts {
				for _, e := range l.JournalEntries() {
					if e.IsPosted() {
						continue
					}
					if _, err := l.PostEntry(e.ID); err != nil {
						return err
					}
				}
			}

			out := cmd.OutOrStdout()
			entries := l.JournalEntries()
			if format == "csv" {
				err = journal.WriteEntries(out, entries)
			} else {
				err = printEntries(out, entries)
			}
			if err != nil {
				return err
			}

			if showAudit {
				fmt.Fprintln(out)
				if err := audit.WriteCSV(out, l.AuditTrail()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "journal batch YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	cmd.Flags().BoolVar(&postDrafts, "post-drafts", false, "post every draft entry after recording")
	cmd.Flags().BoolVar(&showAudit, "audit", false, "print the audit trail as CSV")

	return cmd
}
