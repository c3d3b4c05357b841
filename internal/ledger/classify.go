// Package ledger extracts transactions from the investment ledger text export.
package ledger

import "regexp"

// FundPattern recognizes the header line that opens a fund section.
type FundPattern struct {
	Name string
	re   *regexp.Regexp
}

func newFundPattern(name string) FundPattern {
	return FundPattern{
		Name: name,
		re:   regexp.MustCompile(regexp.QuoteMeta(name) + ` - CNPJ: (\d+)`),
	}
}

// Match returns the CNPJ captured from line when it carries this fund's header.
func (p FundPattern) Match(line string) (string, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FundPatterns lists the known funds in matching order.
var FundPatterns = []FundPattern{
	newFundPattern("BB RF CP ABSOLUTO"),
	newFundPattern("BB RF REF DI TP FI"),
	newFundPattern("BB RF SOLIDEZ ABSOL"),
}

// space is a run of whitespace as the ledger uses it, including the Latin-1
// no-break space (0xA0) and the other non-ASCII blanks of the Latin-1 range.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\x{a0}]+`

// transactionRe matches a movement row: date, uppercase description and up to
// five numeric columns. Numbers are kept as written.
var transactionRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})` + space + `([A-Z ]+)` + space +
	`([\d,.]+)?` + space + `([\d,.]+)?` + space + `([\d,.]+)?` + space + `([\d,.]+)?` + space + `([\d,.]+)?`)

// numericColumns is the number of optional numeric captures on a movement row.
const numericColumns = 5

// LineKind classifies a ledger line.
type LineKind int

const (
	LineOther LineKind = iota
	LineFundHeader
	LineTransaction
)

// String returns a readable name for the kind.
func (k LineKind) String() string {
	switch k {
	case LineFundHeader:
		return "fund-header"
	case LineTransaction:
		return "transaction"
	default:
		return "other"
	}
}

// Line is the classification of one ledger line.
type Line struct {
	Kind LineKind

	// Set for LineFundHeader.
	Fund string
	CNPJ string

	// Set for LineTransaction. Numbers holds "" for an absent column.
	Date        string
	Description string
	Numbers     [numericColumns]string
}

// MatchFundHeader tests line against every pattern in FundPatterns. When more
// than one matches, the last one in list order wins.
func MatchFundHeader(line string) (fund, cnpj string, ok bool) {
	for _, p := range FundPatterns {
		if c, matched := p.Match(line); matched {
			fund, cnpj, ok = p.Name, c, true
		}
	}
	return fund, cnpj, ok
}

// MatchTransaction extracts the movement fields from line.
func MatchTransaction(line string) (Line, bool) {
	m := transactionRe.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	l := Line{
		Kind:        LineTransaction,
		Date:        m[1],
		Description: m[2],
	}
	copy(l.Numbers[:], m[3:])
	return l, true
}

// Classify decides what a line is. Header and transaction are exclusive: a line
// carrying a fund header is a header even if it also looks like a movement row.
func Classify(line string) Line {
	if fund, cnpj, ok := MatchFundHeader(line); ok {
		return Line{Kind: LineFundHeader, Fund: fund, CNPJ: cnpj}
	}
	if l, ok := MatchTransaction(line); ok {
		return l
	}
	return Line{Kind: LineOther}
}
