package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcjr031064/cafe-ledger-flow/internal/apperrors"
	"github.com/jcjr031064/cafe-ledger-flow/internal/model"
)

// DefaultTolerance is the largest debit/credit difference accepted as balanced.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Rules checked by Validate.
const (
	RuleBalanced     = 1 // total debit equals total credit within tolerance
	RuleTotalsMatch  = 2 // supplied totals equal the line sums
	RuleOneSided     = 3 // exactly one of debit or credit per line
	RuleNonNegative  = 4 // no negative amounts
	RuleKnownAccount = 5 // every line resolves to an active account
	RuleMinLines     = 6 // at least two lines
	RuleKnownEntity  = 7 // owning entity exists when set
	RuleTwoDecimals  = 8 // amounts carry at most two decimal places
)

const (
	minLinesPerEntry = 2
	centPlaces       = 2
)

// Violation describes a single rule broken by a journal entry.
type Violation struct {
	Rule        int
	Line        int // 1-based; 0 = whole entry
	Description string
}

func (v Violation) String() string {
	if v.Line == 0 {
		return fmt.Sprintf("rule %d: %s", v.Rule, v.Description)
	}
	return fmt.Sprintf("rule %d [line %d]: %s", v.Rule, v.Line, v.Description)
}

// ValidationError is returned when a journal entry is rejected. Nothing is
// stored when it is returned.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "journal entry rejected: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match apperrors.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// Has reports whether rule was violated.
func (e *ValidationError) Has(rule int) bool {
	for _, v := range e.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Resolver looks up the accounts and entities an entry refers to.
type Resolver interface {
	ResolveAccount(id, code string) (model.Account, bool)
	EntityExists(id string) bool
}

// Totals returns the entry's debit and credit totals, deriving them from the
// lines when the caller left both at zero.
func Totals(in model.NewJournalEntry) (debit, credit decimal.Decimal) {
	if in.TotalDebit.IsZero() && in.TotalCredit.IsZero() {
		return model.LineTotals(in.Lines)
	}
	return in.TotalDebit, in.TotalCredit
}

// Validate checks a journal entry before it is recorded and returns a
// *ValidationError listing every violation, or nil.
func Validate(in model.NewJournalEntry, r Resolver, tolerance decimal.Decimal) error {
	var vs []Violation

	totalDebit, totalCredit := Totals(in)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(tolerance) {
		vs = append(vs, Violation{
			Rule:        RuleBalanced,
			Description: fmt.Sprintf("entry not balanced: debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	lineDebit, lineCredit := model.LineTotals(in.Lines)
	if !lineDebit.Equal(totalDebit) || !lineCredit.Equal(totalCredit) {
		msg := fmt.Sprintf("totals (%s/%s) do not match lines (%s/%s)",
			totalDebit.StringFixed(2), totalCredit.StringFixed(2), lineDebit.StringFixed(2), lineCredit.StringFixed(2))
		vs = append(vs, Violation{Rule: RuleTotalsMatch, Description: msg})
	}

	if len(in.Lines) < minLinesPerEntry {
		vs = append(vs, Violation{
			Rule:        RuleMinLines,
			Description: fmt.Sprintf("entry needs at least %d lines, got %d", minLinesPerEntry, len(in.Lines)),
		})
	}

	if in.EntityID != "" && !r.EntityExists(in.EntityID) {
		vs = append(vs, Violation{
			Rule:        RuleKnownEntity,
			Description: fmt.Sprintf("unknown entity %q", in.EntityID),
		})
	}

	for i, line := range in.Lines {
		n := i + 1

		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			vs = append(vs, Violation{Rule: RuleNonNegative, Line: n, Description: "amounts must not be negative"})
		}

		hasDebit := !line.Debit.IsZero()
		hasCredit := !line.Credit.IsZero()
		if hasDebit == hasCredit {
			vs = append(vs, Violation{Rule: RuleOneSided, Line: n, Description: "line must have exactly one of debit or credit"})
		}

		if !fitsCents(line.Debit) || !fitsCents(line.Credit) {
			vs = append(vs, Violation{Rule: RuleTwoDecimals, Line: n, Description: "amount has more than 2 decimal places"})
		}

		acct, ok := r.ResolveAccount(line.AccountID, line.AccountCode)
		switch {
		case !ok:
			vs = append(vs, Violation{Rule: RuleKnownAccount, Line: n, Description: fmt.Sprintf("unknown account %s", lineAccountLabel(line))})
		case !acct.IsActive:
			vs = append(vs, Violation{Rule: RuleKnownAccount, Line: n, Description: fmt.Sprintf("account %s is inactive", acct.Code)})
		}
	}

	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

func fitsCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(centPlaces))
}

func lineAccountLabel(l model.LineItem) string {
	if l.AccountID != "" {
		return fmt.Sprintf("id %q", l.AccountID)
	}
	return fmt.Sprintf("code %q", l.AccountCode)
}
