package ledger

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extrato-dev/extrato/internal/model"
)

func rec(fund, date string) model.TransactionRecord {
	return model.TransactionRecord{Fund: fund, Date: date}
}

func TestGroup_PreservesOrder(t *testing.T) {
	records := []model.TransactionRecord{
		rec("BB RF REF DI TP FI", "01/01/2024"),
		rec("BB RF CP ABSOLUTO", "02/01/2024"),
		rec("BB RF REF DI TP FI", "03/01/2024"),
		rec("BB RF CP ABSOLUTO", "04/01/2024"),
		rec("BB RF REF DI TP FI", "05/01/2024"),
	}

	groups := Group(records, DefaultSheetNameLimit)
	require.Len(t, groups, 2)

	assert.Equal(t, "BB RF REF DI TP FI", groups[0].Fund)
	assert.Equal(t, "BB RF REF DI TP FI", groups[0].Sheet)
	require.Len(t, groups[0].Records, 3)
	assert.Equal(t, "01/01/2024", groups[0].Records[0].Date)
	assert.Equal(t, "03/01/2024", groups[0].Records[1].Date)
	assert.Equal(t, "05/01/2024", groups[0].Records[2].Date)

	assert.Equal(t, "BB RF CP ABSOLUTO", groups[1].Fund)
	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, "02/01/2024", groups[1].Records[0].Date)
	assert.Equal(t, "04/01/2024", groups[1].Records[1].Date)
}

func TestGroup_Empty(t *testing.T) {
	assert.Nil(t, Group(nil, DefaultSheetNameLimit))
}

func TestGroup_TruncatesSheetName(t *testing.T) {
	long := "FUNDO DE INVESTIMENTO COM NOME MUITO LONGO"
	groups := Group([]model.TransactionRecord{rec(long, "01/01/2024")}, DefaultSheetNameLimit)
	require.Len(t, groups, 1)
	assert.Equal(t, long, groups[0].Fund)
	assert.Equal(t, long[:31], groups[0].Sheet)
}

func TestGroup_DeduplicatesTruncatedNames(t *testing.T) {
	records := []model.TransactionRecord{
		rec("BB RF CP ABSOLUTO", "01/01/2024"),
		rec("BB RF REF DI TP FI", "02/01/2024"),
		rec("BB RF SOLIDEZ ABSOL", "03/01/2024"),
	}
	groups := Group(records, 5)
	require.Len(t, groups, 3)
	assert.Equal(t, "BB RF", groups[0].Sheet)
	assert.Equal(t, "B (2)", groups[1].Sheet)
	assert.Equal(t, "B (3)", groups[2].Sheet)
	for _, g := range groups {
		assert.LessOrEqual(t, utf8.RuneCountInString(g.Sheet), 5)
	}
}

func TestGroup_DefaultLimit(t *testing.T) {
	long := "FUNDO DE INVESTIMENTO COM NOME MUITO LONGO"
	groups := Group([]model.TransactionRecord{rec(long, "01/01/2024")}, 0)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Sheet, DefaultSheetNameLimit)
}

func TestGroup_TruncatesRunes(t *testing.T) {
	groups := Group([]model.TransactionRecord{rec("AÇÃOÇÃO", "01/01/2024")}, 3)
	require.Len(t, groups, 1)
	assert.Equal(t, "AÇÃ", groups[0].Sheet)
}
