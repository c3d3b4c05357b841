package checking

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column names of the export. The amount header carries a trailing space.
const (
	ColDate        = "Data balancete"
	ColAmount      = "Valor R$ "
	ColCode        = "Cod. Historico"
	ColObservation = "OBSERVAÇÃO"
	ColFormatted   = "Data Formatada"
)

// DateLayout is the day-first format of the Data Formatada column.
const DateLayout = "02/01/2006"

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

// SentinelCodes are Cod. Historico values marking rows that are not movements.
var SentinelCodes = map[string]bool{
	"nan":   true,
	"NaN":   true,
	"None":  true,
	"000":   true,
	"999":   true,
	"999.0": true,
}

// dayFirstLayouts are tried in order for dates stored as text.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"02.01.2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var (
	amountRe     = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)
	codeSuffixRe = regexp.MustCompile(`\.0$`)
)

// Row is one cleaned line of the statement. Values is aligned with
// Statement.Columns and holds what gets written to the output sheet.
type Row struct {
	Date    time.Time
	HasDate bool
	Amount  decimal.Decimal
	Code    string
	Values  []any
}

// Formatted returns the row date as dd/mm/yyyy, or "" when it is unknown.
func (r Row) Formatted() string {
	if !r.HasDate {
		return ""
	}
	return r.Date.Format(DateLayout)
}

// Statement is the cleaned checking-account table.
type Statement struct {
	Columns []string
	Rows    []Row

	// Skipped counts rows dropped as blank or carrying a sentinel code.
	Skipped int
}

// Normalize cleans a sheet: blank rows are dropped, dates parsed day-first,
// amounts converted to numbers, history codes normalized and sentinel rows
// filtered out. Data Formatada is added, and OBSERVAÇÃO when absent.
func Normalize(s *Sheet) (*Statement, error) {
	iDate, err := findColumn(s.Columns, ColDate)
	if err != nil {
		return nil, err
	}
	iAmount, err := findColumn(s.Columns, ColAmount)
	if err != nil {
		return nil, err
	}
	iCode, err := findColumn(s.Columns, ColCode)
	if err != nil {
		return nil, err
	}
	_, err = findColumn(s.Columns, ColObservation)
	addObservation := errors.Is(err, ErrMissingColumn)

	columns := append(append([]string{}, s.Columns...), ColFormatted)
	if addObservation {
		columns = append(columns, ColObservation)
	}

	st := &Statement{Columns: columns}
	for _, cells := range s.Rows {
		if blank(cells) {
			st.Skipped++
			continue
		}

		row := Row{
			Amount: CellAmount(cells[iAmount]),
			Code:   NormalizeCode(cellValue(cells[iCode])),
		}
		row.Date, row.HasDate = CellDate(cells[iDate])

		if IsSentinel(row.Code) {
			st.Skipped++
			continue
		}

		row.Values = make([]any, 0, len(columns))
		for j, c := range cells {
			switch j {
			case iDate:
				if row.HasDate {
					row.Values = append(row.Values, row.Date)
				} else {
					row.Values = append(row.Values, nil)
				}
			case iAmount:
				row.Values = append(row.Values, row.Amount.InexactFloat64())
			case iCode:
				row.Values = append(row.Values, row.Code)
			default:
				row.Values = append(row.Values, passThrough(c))
			}
		}
		row.Values = append(row.Values, textOrNil(row.Formatted()))
		if addObservation {
			row.Values = append(row.Values, "")
		}

		st.Rows = append(st.Rows, row)
	}
	return st, nil
}

// ParseAmount reads a Brazilian currency string: thousands dots are removed,
// the decimal comma becomes a point and the first signed number is taken.
// Anything unreadable is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	m := amountRe.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CellAmount is ParseAmount for a cell; numeric cells are used as stored.
func CellAmount(c Cell) decimal.Decimal {
	if c.Numeric {
		if d, err := decimal.NewFromString(c.Raw); err == nil {
			return d
		}
	}
	return ParseAmount(c.Text)
}

// ParseDayFirst parses a date written day before month.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CellDate reads a date cell. Numeric cells are Excel serial dates.
func CellDate(c Cell) (time.Time, bool) {
	if c.Numeric {
		serial, err := strconv.ParseFloat(c.Raw, 64)
		if err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	return ParseDayFirst(c.Text)
}

// NormalizeCode strips a trailing ".0" and surrounding spaces from a history
// code. An empty code reads as "nan", the marker for a missing value.
func NormalizeCode(s string) string {
	if s == "" {
		return "nan"
	}
	return strings.TrimSpace(codeSuffixRe.ReplaceAllString(s, ""))
}

// IsSentinel reports whether code marks a row to be dropped.
func IsSentinel(code string) bool {
	return SentinelCodes[code]
}

func findColumn(columns []string, name string) (int, error) {
	for i, c := range columns {
		if c == name {
			return i, nil
		}
	}
	want := strings.TrimSpace(name)
	for i, c := range columns {
		if strings.TrimSpace(c) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
}

func blank(cells []Cell) bool {
	for _, c := range cells {
		if !c.Empty() {
			return false
		}
	}
	return true
}

func cellValue(c Cell) string {
	if c.Numeric {
		return c.Raw
	}
	return c.Text
}

// passThrough is the output value of a column copied unchanged: numbers stay
// numbers, text stays text.
func passThrough(c Cell) any {
	if c.Numeric {
		if f, err := strconv.ParseFloat(c.Raw, 64); err == nil {
			return f
		}
	}
	return textOrNil(c.Text)
}

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
