package service

import (
	"testing"
	"time"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNextYearSequence(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	// Empty table: the current calendar year.
	first, err := rocniky.CreateNext()
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), first.Rok)
	assert.False(t, first.IsActive)

	// Afterwards always max + 1.
	second, err := rocniky.CreateNext()
	require.NoError(t, err)
	assert.Equal(t, first.Rok+1, second.Rok)
}

func TestActivateOnlyNewest(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	older := mkRocnik(t, 2024, false)
	newer := mkRocnik(t, 2025, true)

	// Activating an older edition changes nothing: 2025 stays the only
	// active one.
	require.NoError(t, rocniky.Activate(older.ID))

	active, err := rocniky.GetActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, newer.ID, active.ID)

	n, err := rocniky.CountActive()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestActivateNewestDeactivatesRest(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	mkRocnik(t, 2023, true)
	newest := mkRocnik(t, 2024, false)

	require.NoError(t, rocniky.Activate(newest.ID))

	active, err := rocniky.GetActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, newest.ID, active.ID)

	n, err := rocniky.CountActive()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestActiveCountInvariant(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	a := mkRocnik(t, 2023, false)
	b := mkRocnik(t, 2024, false)
	c := mkRocnik(t, 2025, false)

	steps := []func() error{
		func() error { return rocniky.Activate(c.ID) },
		func() error { return rocniky.Activate(a.ID) },
		func() error { return rocniky.Deactivate(c.ID) },
		func() error { return rocniky.Deactivate(c.ID) },
		func() error { return rocniky.Activate(b.ID) },
		func() error { return rocniky.Activate(c.ID) },
		func() error { return rocniky.Deactivate(a.ID) },
	}
	for i, step := range steps {
		require.NoError(t, step())
		n, err := rocniky.CountActive()
		require.NoError(t, err)
		assert.LessOrEqual(t, n, int64(1), "step %d", i)
	}
}

func TestDeactivateAllowsZeroActive(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	r := mkRocnik(t, 2025, true)
	require.NoError(t, rocniky.Deactivate(r.ID))

	active, err := rocniky.GetActive()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestDeleteRocnikCascades(t *testing.T) {
	setupDB(t)
	rocniky := RocnikService{}

	vinar := mkUser(t, "vinar")
	rater := mkUser(t, "rater")
	r := mkRocnik(t, 2025, true)
	keep := mkRocnik(t, 2024, false)

	v1 := mkVino(t, "Ryzlink", vinar.ID, r.ID)
	mkHodnoceni(t, v1.ID, rater.ID, 80)
	v2 := mkVino(t, "Veltlín", vinar.ID, keep.ID)
	mkHodnoceni(t, v2.ID, rater.ID, 70)

	require.NoError(t, rocniky.Delete(r.ID))

	assert.EqualValues(t, 1, countRows(t, &models.Rocnik{}))
	assert.EqualValues(t, 1, countRows(t, &models.Vino{}))
	assert.EqualValues(t, 1, countRows(t, &models.Hodnoceni{}))

	// The other edition is untouched.
	var left models.Vino
	require.NoError(t, database.DB.First(&left).Error)
	assert.Equal(t, v2.ID, left.ID)
}
