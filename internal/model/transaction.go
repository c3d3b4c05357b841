package model

// TransactionRecord is one dated movement extracted from the investment ledger.
// Numeric fields keep the text as written in the ledger ("1.234,56"); a field
// missing from the ledger line is "0".
type TransactionRecord struct {
	Fund         string
	CNPJ         string
	Date         string // dd/mm/yyyy
	Description  string
	Amount       string
	Units        string
	UnitValue    string
	BalanceUnits string
}

// Row returns the record fields in export column order.
func (r TransactionRecord) Row() []string {
	return []string{r.Fund, r.CNPJ, r.Date, r.Description, r.Amount, r.Units, r.UnitValue, r.BalanceUnits}
}
