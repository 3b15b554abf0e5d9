package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jcjr031064/cafe-ledger-flow/internal/proforma"
)

func newTemplatesCommand(a *app) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Pro-forma entry templates",
	}
	templatesCmd.AddCommand(newTemplatesListCommand())
	templatesCmd.AddCommand(newTemplatesApplyCommand(a))
	return templatesCmd
}

// loadStore reads a template file into a new Store.
func loadStore(path string) (*proforma.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening templates: %w", err)
	}
	defer f.Close()

	list, err := proforma.LoadTemplates(f)
	if err != nil {
		return nil, err
	}
	store := proforma.NewStore()
	for _, in := range list {
		if _, err := store.Add(in); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return store, nil
}

func newTemplatesListCommand() *cobra.Command {
	var file, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates and their lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(file)
			if err != nil {
				return err
			}
			list := store.All()
			if category != "" {
				list = store.ByCategory(proforma.Category(category))
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "TEMPLATE\tCATEGORY\tENTITY\tLINE\tACCOUNT\tSIDE\tAMOUNT")
			for _, t := range list {
				for i, line := range t.Lines {
					amount := money(line.Amount)
					if line.Variable {
						amount = "variable"
						if !line.Amount.IsZero() {
							amount = "variable (" + money(line.Amount) + ")"
						}
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n", t.Name, t.Category, orAny(t.Entity), i, line.AccountCode, line.Side, amount)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "templates.yaml", "template YAML file")
	cmd.Flags().StringVar(&category, "category", "", "only this category (sales, purchase, expense, transfer)")

	return cmd
}

func newTemplatesApplyCommand(a *app) *cobra.Command {
	var file, name, date, entity, entries string
	var amounts []string
	var post bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Record a journal entry from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			overrides, err := parseOverrides(amounts)
			if err != nil {
				return err
			}
			day := time.Now().UTC()
			if date != "" {
				day, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}

			store, err := loadStore(file)
			if err != nil {
				return err
			}
			tpl, ok := store.ByName(name)
			if !ok {
				return fmt.Errorf("no template named %q in %s", name, file)
			}

			l, err := a.ledgerWithEntries(entries)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.saveAudit(l))
			}()

			if entity == "" {
				entity = tpl.Entity
			}
			var entityID string
			if entity != "" {
				e, ok := l.EntityByCode(entity)
				if !ok {
					return fmt.Errorf("unknown entity %q", entity)
				}
				entityID = e.ID
			}

			in, err := proforma.Instantiate(tpl, overrides, day, entityID)
			if err != nil {
				return err
			}
			in.Post = post
			in.CreatedBy = a.cfg.Ledger.CreatedBy

			e, err := l.PostJournalEntry(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if entity != "" {
				fmt.Fprintf(out, "%s %s (%s, %s)\n", e.Reference, e.Description, e.Status, entity)
			} else {
				fmt.Fprintf(out, "%s %s (%s)\n", e.Reference, e.Description, e.Status)
			}
			tw := newTable(out)
			for _, line := range e.Lines {
				side, amount := "Cr", line.Credit
				if line.IsDebit() {
					side, amount = "Dr", line.Debit
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", line.AccountCode, line.AccountName, side, money(amount))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "templates.yaml", "template YAML file")
	cmd.Flags().StringVar(&name, "name", "", "template name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringArrayVar(&amounts, "amount", nil, "amount for a variable line as index=value (repeatable)")
	cmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&entity, "entity", "", "entity code (default: the template's entity)")
	cmd.Flags().StringVar(&entries, "entries", "", "journal batch file to record first")
	cmd.Flags().BoolVar(&post, "post", false, "post to balances immediately")

	return cmd
}

func orAny(entity string) string {
	if entity == "" {
		return "any"
	}
	return entity
}

// parseOverrides turns "1=845.50" pairs into template overrides.
func parseOverrides(pairs []string) (proforma.Overrides, error) {
	o := make(proforma.Overrides, len(pairs))
	for _, p := range pairs {
		idx, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --amount %q: want index=value", p)
		}
		i, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return nil, fmt.Errorf("invalid --amount index %q: %w", idx, err)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid --amount value %q: %w", val, err)
		}
		o[i] = d
	}
	return o, nil
}
