package ledger

import "github.com/extrato-dev/extrato/internal/model"

// State is the fund context in effect at a point of the ledger.
// The zero value means no fund header has been seen yet.
type State struct {
	Fund   string
	CNPJ   string
	Active bool
}

// Step consumes one line. It returns the state for the next line and, when the
// line is a movement inside a fund section, the record it produces.
func Step(s State, line string) (State, model.TransactionRecord, bool) {
	l := Classify(line)
	switch l.Kind {
	case LineFundHeader:
		return State{Fund: l.Fund, CNPJ: l.CNPJ, Active: true}, model.TransactionRecord{}, false
	case LineTransaction:
		if !s.Active {
			return s, model.TransactionRecord{}, false
		}
		return s, model.TransactionRecord{
			Fund:         s.Fund,
			CNPJ:         s.CNPJ,
			Date:         l.Date,
			Description:  l.Description,
			Amount:       orZero(l.Numbers[0]),
			Units:        orZero(l.Numbers[1]),
			UnitValue:    orZero(l.Numbers[2]),
			BalanceUnits: orZero(l.Numbers[3]),
		}, true
	default:
		return s, model.TransactionRecord{}, false
	}
}

// Parse extracts every movement from lines in order. Lines that are neither
// fund headers nor movements, and movements before the first header, are
// skipped.
func Parse(lines []string) []model.TransactionRecord {
	var (
		state   State
		records []model.TransactionRecord
	)
	for _, line := range lines {
		var rec model.TransactionRecord
		var ok bool
		state, rec, ok = Step(state, line)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
