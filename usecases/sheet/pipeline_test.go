package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/challenge-backend/models"
)

const weeklyExport = `Challenge BUT;;;;
Semaine 11;;;;
;;;;
Région;Magasin;CA N;Budget;CA N-1
Nord;BUT Lille;12 500,00;10 000,00;11 000,00
;BUT Roubaix;7 500,00;10 000,00;
;Total Nord;20 000,00;20 000,00;
Sud;BUT Nîmes;5 000,00;10 000,00;4 000,00
`

func TestScore_WeeklyExport(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader(weeklyExport), EncodingAuto)
	require.NoError(t, err)

	scored, err := Score(rows, importDate)
	require.NoError(t, err)

	assert.Equal(t, models.ImportSchemaRevenue, scored.Schema)
	assert.Equal(t, 2, scored.HeaderRowIndex)
	require.Len(t, scored.Stores, 3)
	assert.Equal(t, "butlille", scored.Stores[0].StoreSlug)
	assert.Equal(t, 125.0, scored.Stores[0].GlobalPercent)
	assert.Equal(t, 13.64, scored.Stores[0].ProgressPercent)
	assert.Equal(t, "butnimes", scored.Stores[2].StoreSlug)
	assert.Equal(t, "sud", scored.Stores[2].RegionSlug)

	require.Len(t, scored.Regions, 2)
	assert.Equal(t, "nord", scored.Regions[0].RegionSlug)
	assert.Equal(t, 100.0, scored.Regions[0].CurrentScore)
	assert.Equal(t, 2, scored.Regions[0].StoreCount)
	assert.Equal(t, "sud", scored.Regions[1].RegionSlug)
	assert.Equal(t, 50.0, scored.Regions[1].CurrentScore)
}

func TestScore_TitleMentioningObjectivesAndRegion(t *testing.T) {
	rows, err := DecodeRows(strings.NewReader("Objectifs région Nord;;;\nRégion;Magasin;CA N;Budget\nNord;BUT A;10;10\n"),
		EncodingAuto)
	require.NoError(t, err)

	scored, err := Score(rows, importDate)
	require.NoError(t, err)
	assert.Equal(t, 1, scored.HeaderRowIndex)
	require.Len(t, scored.Stores, 1)
	assert.Equal(t, 100.0, scored.Stores[0].GlobalPercent)
}

func TestScore_HeaderMissing(t *testing.T) {
	_, err := Score([]models.RawRow{{"a", "b"}}, importDate)
	assert.ErrorIs(t, err, models.ErrHeaderNotFound)
}
