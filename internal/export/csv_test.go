package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tripledger/tripledger/internal/expense"
	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/ledger/split"
	"github.com/tripledger/tripledger/internal/trip"
)

func testReport() *Report {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	taxPct := 10.0

	return &Report{
		Trip: &trip.Trip{
			ID:        "t1",
			Title:     "Goa Trip",
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 4),
			Currency:  "INR",
			Participants: []trip.Participant{
				{ID: "p1", Name: "Aisha"},
				{ID: "p2", Name: "Ben"},
			},
		},
		Expenses: []*expense.Expense{
			{
				ID:          "e1",
				TripID:      "t1",
				PayerID:     "p1",
				Amount:      100,
				Currency:    "INR",
				ExpenseDate: start.AddDate(0, 0, 1),
				Category:    "food",
				Description: `Dinner, "beach shack"`,
				TaxPercent:  &taxPct,
				SplitType:   split.TypeEqual,
			},
		},
		Entries: []ledger.Entry{
			{ID: "p1", Name: "Aisha", TotalPaid: 110, TotalOwed: 55, NetBalance: 55},
			{ID: "p2", Name: "Ben", TotalPaid: 0, TotalOwed: 55, NetBalance: -55},
		},
		Transfers: []ledger.Transfer{
			{From: "p2", To: "p1", Amount: 55, FromName: "Ben", ToName: "Aisha"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testReport()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	wantLines := []string{
		"Trip: Goa Trip",
		"Currency: INR",
		"Period: 2026-03-10 - 2026-03-14",
		"EXPENSES",
		"Date,Payer,Category,Amount,Tax,Tip,Total,Split Type,Description",
		"PER-PERSON LEDGER",
		"Person,Total Paid,Total Owed,Net Balance",
		"Aisha,110.00,55.00,55.00",
		"Ben,0.00,55.00,-55.00",
		"SETTLEMENT TRANSACTIONS",
		"From,To,Amount",
		"Ben,Aisha,55.00",
	}
	for _, want := range wantLines {
		if !containsLine(lines, want) {
			t.Errorf("WriteCSV() output missing line %q\n%s", want, out)
		}
	}

	// The expense row carries the computed tax and total, and the comma in
	// the description forces quoting.
	wantExpense := `2026-03-11,Aisha,food,100.00,10.00,0.00,110.00,EQUAL,"Dinner, ""beach shack"""`
	if !strings.Contains(out, wantExpense) {
		t.Errorf("WriteCSV() output missing expense row %q\n%s", wantExpense, out)
	}
}

func TestWriteCSVFailsOnBadExpense(t *testing.T) {
	rep := testReport()
	rep.Expenses[0].SplitType = "WEIGHTED"

	if err := WriteCSV(&bytes.Buffer{}, rep); err == nil {
		t.Fatal("WriteCSV() expected error for unknown split type, got nil")
	}
}

func TestBuildPDF(t *testing.T) {
	doc, err := BuildPDF(testReport())
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Errorf("BuildPDF() output does not start with a PDF header")
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
