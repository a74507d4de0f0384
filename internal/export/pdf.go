package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/tripledger/tripledger/internal/ledger/split"
)

// BuildPDF renders a report as a PDF document with the same sections as the
// CSV export
func BuildPDF(rep *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Trip Report", rep.Trip.Title), false)
	pdf.AddPage()

	names := participantNames(rep.Trip)
	ids := make([]string, len(rep.Trip.Participants))
	for i, p := range rep.Trip.Participants {
		ids[i] = p.ID
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, rep.Trip.Title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Currency: %s", rep.Trip.Currency))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s",
		rep.Trip.StartDate.Format("2006-01-02"),
		rep.Trip.EndDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Expenses")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(22, 7, "Date")
	pdf.Cell(32, 7, "Payer")
	pdf.Cell(28, 7, "Category")
	pdf.Cell(24, 7, "Amount")
	pdf.Cell(20, 7, "Tax")
	pdf.Cell(20, 7, "Tip")
	pdf.Cell(24, 7, "Total")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range rep.Expenses {
		calc, err := split.Compute(e.SplitInput(), ids)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		pdf.Cell(22, 7, e.ExpenseDate.Format("2006-01-02"))
		pdf.Cell(32, 7, payerName(names, e.PayerID))
		pdf.Cell(28, 7, e.Category)
		pdf.Cell(24, 7, money(e.Amount))
		pdf.Cell(20, 7, money(calc.TaxAmount))
		pdf.Cell(20, 7, money(calc.TipAmount))
		pdf.Cell(24, 7, money(calc.TotalExpense))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Per-Person Ledger")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(50, 7, "Person")
	pdf.Cell(35, 7, "Total Paid")
	pdf.Cell(35, 7, "Total Owed")
	pdf.Cell(35, 7, "Net Balance")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range rep.Entries {
		pdf.Cell(50, 7, entry.Name)
		pdf.Cell(35, 7, money(entry.TotalPaid))
		pdf.Cell(35, 7, money(entry.TotalOwed))
		pdf.Cell(35, 7, money(entry.NetBalance))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Settlement Plan")
	pdf.Ln(8)

	if len(rep.Transfers) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 7, "All settled.")
		pdf.Ln(7)
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(50, 7, "From")
		pdf.Cell(50, 7, "To")
		pdf.Cell(35, 7, "Amount")
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 10)
		for _, tr := range rep.Transfers {
			pdf.Cell(50, 7, tr.FromName)
			pdf.Cell(50, 7, tr.ToName)
			pdf.Cell(35, 7, money(tr.Amount))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
