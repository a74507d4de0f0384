package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

// WriteCSV renders a report as CSV. The file is sectioned: a trip header,
// the expense log, the per-person ledger, and the settlement plan.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	names := participantNames(rep.Trip)

	ids := make([]string, len(rep.Trip.Participants))
	for i, p := range rep.Trip.Participants {
		ids[i] = p.ID
	}

	records := [][]string{
		{fmt.Sprintf("Trip: %s", rep.Trip.Title)},
		{fmt.Sprintf("Currency: %s", rep.Trip.Currency)},
		{fmt.Sprintf("Period: %s - %s",
			rep.Trip.StartDate.Format("2006-01-02"),
			rep.Trip.EndDate.Format("2006-01-02"))},
		{},
		{"EXPENSES"},
		{"Date", "Payer", "Category", "Amount", "Tax", "Tip", "Total", "Split Type", "Description"},
	}

	for _, e := range rep.Expenses {
		// The breakdown comes from the same calculator the balance sheet
		// uses, so exported totals always match the ledger section.
		calc, err := split.Compute(e.SplitInput(), ids)
		if err != nil {
			return fmt.Errorf("expense %s: %w", e.ID, err)
		}
		records = append(records, []string{
			e.ExpenseDate.Format("2006-01-02"),
			payerName(names, e.PayerID),
			e.Category,
			money(e.Amount),
			money(calc.TaxAmount),
			money(calc.TipAmount),
			money(calc.TotalExpense),
			string(e.SplitType),
			e.Description,
		})
	}

	records = append(records,
		[]string{},
		[]string{"PER-PERSON LEDGER"},
		[]string{"Person", "Total Paid", "Total Owed", "Net Balance"},
	)
	for _, entry := range rep.Entries {
		records = append(records, []string{
			entry.Name,
			money(entry.TotalPaid),
			money(entry.TotalOwed),
			money(entry.NetBalance),
		})
	}

	records = append(records,
		[]string{},
		[]string{"SETTLEMENT TRANSACTIONS"},
		[]string{"From", "To", "Amount"},
	)
	for _, tr := range rep.Transfers {
		records = append(records, []string{tr.FromName, tr.ToName, money(tr.Amount)})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
