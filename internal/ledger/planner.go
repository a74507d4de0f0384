package ledger

import "sort"

// Transfer is one suggested settling payment. It is ephemeral output; a
// caller that executes it records the fact as a Payment for the next build.
type Transfer struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Amount   float64 `json:"amount"`
	FromName string  `json:"from_name"`
	ToName   string  `json:"to_name"`
}

// Plan produces the settling payments for a balanced ledger using greedy
// largest-balance matching: the biggest debtor pays the biggest creditor
// the smaller of the two outstanding amounts, repeatedly. For n unsettled
// participants this yields at most n-1 transfers, and the transferred total
// equals the sum of positive balances.
//
// Plan assumes Build's normalization has run; fed a ledger that doesn't sum
// to zero it will quietly under- or over-settle.
func Plan(entries []Entry) []Transfer {
	type side struct {
		id        string
		name      string
		remaining float64
	}

	var debtors, creditors []side
	for _, entry := range entries {
		switch {
		case entry.NetBalance < -0.01:
			debtors = append(debtors, side{entry.ID, entry.Name, -entry.NetBalance})
		case entry.NetBalance > 0.01:
			creditors = append(creditors, side{entry.ID, entry.Name, entry.NetBalance})
		}
		// Balances within a cent of zero are already settled.
	}

	// Stable sorts keep the id order of the incoming ledger for equal
	// balances, so plans are reproducible.
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining > debtors[j].remaining })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining > creditors[j].remaining })

	transfers := []Transfer{}
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor := &debtors[d]
		creditor := &creditors[c]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		transfers = append(transfers, Transfer{
			From:     debtor.id,
			To:       creditor.id,
			Amount:   round2(amount),
			FromName: debtor.name,
			ToName:   creditor.name,
		})

		debtor.remaining = round2(debtor.remaining - amount)
		creditor.remaining = round2(creditor.remaining - amount)

		if debtor.remaining < 0.01 {
			d++
		}
		if creditor.remaining < 0.01 {
			c++
		}
	}

	return transfers
}
