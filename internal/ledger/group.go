package ledger

import (
	"fmt"
	"unicode/utf8"

	"github.com/extrato-dev/extrato/internal/model"
)

// DefaultSheetNameLimit is the longest sheet name a workbook accepts.
const DefaultSheetNameLimit = 31

// FundGroup holds the records of one fund and the sheet they are written to.
type FundGroup struct {
	Fund    string
	Sheet   string
	Records []model.TransactionRecord
}

// Group partitions records by fund, in order of first appearance, keeping the
// original order inside each group. Sheet names are cut to limit runes; names
// that collide after cutting get a " (n)" suffix.
func Group(records []model.TransactionRecord, limit int) []FundGroup {
	if limit <= 0 {
		limit = DefaultSheetNameLimit
	}

	var groups []FundGroup
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.Fund]
		if !ok {
			i = len(groups)
			index[rec.Fund] = i
			groups = append(groups, FundGroup{Fund: rec.Fund})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	used := make(map[string]bool, len(groups))
	for i := range groups {
		name := truncate(groups[i].Fund, limit)
		for n := 2; used[name]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncate(groups[i].Fund, limit-utf8.RuneCountInString(suffix)) + suffix
		}
		used[name] = true
		groups[i].Sheet = name
	}
	return groups
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
