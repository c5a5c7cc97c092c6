package service

import (
	"testing"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByRocnikAveragesAndOrder(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	vinar := mkUser(t, "vinar")
	r1 := mkUser(t, "rater1")
	r2 := mkUser(t, "rater2")
	rocnik := mkRocnik(t, 2025, true)

	rated := mkVino(t, "Ryzlink", vinar.ID, rocnik.ID)
	mkHodnoceni(t, rated.ID, r1.ID, 80)
	mkHodnoceni(t, rated.ID, r2.ID, 90)

	lower := mkVino(t, "Veltlín", vinar.ID, rocnik.ID)
	mkHodnoceni(t, lower.ID, r1.ID, 70)

	// Two unrated wines sort last, between themselves by name.
	mkVino(t, "Zweigeltrebe", vinar.ID, rocnik.ID)
	mkVino(t, "André", vinar.ID, rocnik.ID)

	out, err := vina.ListByRocnik(rocnik.ID)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "Ryzlink", out[0].Nazev)
	assert.Equal(t, 85.0, out[0].AvgBody)
	assert.EqualValues(t, 2, out[0].PocetHodnoceni)

	assert.Equal(t, "Veltlín", out[1].Nazev)
	assert.Equal(t, 70.0, out[1].AvgBody)

	assert.Equal(t, "André", out[2].Nazev)
	assert.Equal(t, 0.0, out[2].AvgBody)
	assert.EqualValues(t, 0, out[2].PocetHodnoceni)

	assert.Equal(t, "Zweigeltrebe", out[3].Nazev)
	assert.Equal(t, 0.0, out[3].AvgBody)
}

func TestListByRocnikRoundsToOneDecimal(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	vinar := mkUser(t, "vinar")
	rocnik := mkRocnik(t, 2025, true)
	v := mkVino(t, "Ryzlink", vinar.ID, rocnik.ID)

	for i, body := range []int{70, 71, 71} {
		rater := mkUser(t, "rater"+string(rune('a'+i)))
		mkHodnoceni(t, v.ID, rater.ID, body)
	}

	out, err := vina.ListByRocnik(rocnik.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 70.7, out[0].AvgBody)
}

func TestListRatableExcludesOwnWines(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	me := mkUser(t, "me")
	other := mkUser(t, "other")
	rocnik := mkRocnik(t, 2025, true)

	mkVino(t, "Moje víno", me.ID, rocnik.ID)
	b := mkVino(t, "Bílé", other.ID, rocnik.ID)
	a := mkVino(t, "André", other.ID, rocnik.ID)
	mkHodnoceni(t, b.ID, me.ID, 66)

	out, err := vina.ListRatable(rocnik.ID, me.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Name ascending; my own wine never appears.
	assert.Equal(t, a.ID, out[0].Vino.ID)
	assert.Nil(t, out[0].Moje)

	assert.Equal(t, b.ID, out[1].Vino.ID)
	require.NotNil(t, out[1].Moje)
	assert.Equal(t, 66, out[1].Moje.Body)
}

func TestSubmitRatingsClampAndClear(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	vinar := mkUser(t, "a")
	rater := mkUser(t, "b")
	rocnik := mkRocnik(t, 2025, true)
	wine := mkVino(t, "Riesling", vinar.ID, rocnik.ID)

	// Score above range is stored clamped.
	err := vina.SubmitRatings(rater.ID, []RatingEntry{{VinoID: wine.ID, Body: "105"}})
	require.NoError(t, err)

	var h models.Hodnoceni
	require.NoError(t, database.DB.Where("vino_id = ?", wine.ID).First(&h).Error)
	assert.Equal(t, 100, h.Body)

	// Negative clamps to 0.
	err = vina.SubmitRatings(rater.ID, []RatingEntry{{VinoID: wine.ID, Body: "-3"}})
	require.NoError(t, err)
	require.NoError(t, database.DB.Where("vino_id = ?", wine.ID).First(&h).Error)
	assert.Equal(t, 0, h.Body)

	// Empty score clears the rating.
	err = vina.SubmitRatings(rater.ID, []RatingEntry{{VinoID: wine.ID, Body: "  "}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, countRows(t, &models.Hodnoceni{}))
}

func TestSubmitRatingsSkipsSelfAndMalformed(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	vinar := mkUser(t, "a")
	rater := mkUser(t, "b")
	rocnik := mkRocnik(t, 2025, true)
	own := mkVino(t, "Vlastní", vinar.ID, rocnik.ID)
	foreign := mkVino(t, "Cizí", rater.ID, rocnik.ID)

	err := vina.SubmitRatings(vinar.ID, []RatingEntry{
		{VinoID: own.ID, Body: "95"},       // self-rating, skipped
		{VinoID: foreign.ID, Body: "abc"},  // malformed, skipped
		{VinoID: 99999, Body: "50"},        // unknown wine, skipped
		{VinoID: foreign.ID, Body: " 88 "}, // stored
	})
	require.NoError(t, err)

	var all []models.Hodnoceni
	require.NoError(t, database.DB.Find(&all).Error)
	require.Len(t, all, 1)
	assert.Equal(t, foreign.ID, all[0].VinoID)
	assert.Equal(t, 88, all[0].Body)

	// No stored rating ever points at the rater's own wine.
	var selfRated int64
	err = database.DB.Model(&models.Hodnoceni{}).
		Joins("JOIN VINO ON VINO.id = HODNOCENI.vino_id").
		Where("VINO.vinar_id = HODNOCENI.hodnotitel_id").
		Count(&selfRated).Error
	require.NoError(t, err)
	assert.EqualValues(t, 0, selfRated)
}

func TestSubmitRatingsUpsertsAndIsIdempotent(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	vinar := mkUser(t, "a")
	rater := mkUser(t, "b")
	rocnik := mkRocnik(t, 2025, true)
	w1 := mkVino(t, "Ryzlink", vinar.ID, rocnik.ID)
	w2 := mkVino(t, "Veltlín", vinar.ID, rocnik.ID)

	batch := []RatingEntry{
		{VinoID: w1.ID, Body: "80", Poznamka: "jemné"},
		{VinoID: w2.ID, Body: "60"},
	}
	require.NoError(t, vina.SubmitRatings(rater.ID, batch))
	require.NoError(t, vina.SubmitRatings(rater.ID, batch))

	var all []models.Hodnoceni
	require.NoError(t, database.DB.Order("vino_id").Find(&all).Error)
	require.Len(t, all, 2)
	assert.Equal(t, 80, all[0].Body)
	assert.Equal(t, "jemné", all[0].Poznamka)
	assert.Equal(t, 60, all[1].Body)

	// A changed score updates in place instead of adding a second row.
	require.NoError(t, vina.SubmitRatings(rater.ID, []RatingEntry{{VinoID: w1.ID, Body: "90"}}))
	require.NoError(t, database.DB.Order("vino_id").Find(&all).Error)
	require.Len(t, all, 2)
	assert.Equal(t, 90, all[0].Body)
}

func TestDeleteOwnedChecksOwnershipAndCascades(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	owner := mkUser(t, "owner")
	other := mkUser(t, "other")
	rocnik := mkRocnik(t, 2025, true)
	wine := mkVino(t, "Ryzlink", owner.ID, rocnik.ID)
	mkHodnoceni(t, wine.ID, other.ID, 77)

	// Someone else cannot delete it.
	err := vina.DeleteOwned(wine.ID, other.ID)
	assert.ErrorIs(t, err, ErrVinoNotFound)
	assert.EqualValues(t, 1, countRows(t, &models.Vino{}))

	// The owner can, and the ratings go with it.
	require.NoError(t, vina.DeleteOwned(wine.ID, owner.ID))
	assert.EqualValues(t, 0, countRows(t, &models.Vino{}))
	assert.EqualValues(t, 0, countRows(t, &models.Hodnoceni{}))
}

func TestGetOwned(t *testing.T) {
	setupDB(t)
	vina := VinoService{}

	owner := mkUser(t, "owner")
	other := mkUser(t, "other")
	rocnik := mkRocnik(t, 2025, true)
	wine := mkVino(t, "Ryzlink", owner.ID, rocnik.ID)

	got, err := vina.GetOwned(wine.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, wine.ID, got.ID)

	_, err = vina.GetOwned(wine.ID, other.ID)
	assert.ErrorIs(t, err, ErrVinoNotFound)
}
