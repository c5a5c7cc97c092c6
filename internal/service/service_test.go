package service

import (
	"path/filepath"
	"testing"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/models"

	"github.com/stretchr/testify/require"
)

// setupDB points database.DB at a fresh sqlite file for one test.
func setupDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kost_test.db")
	require.NoError(t, database.Init(dbPath, false))
}

func mkUser(t *testing.T, login string) *models.User {
	t.Helper()
	u := &models.User{
		Login:        login,
		PasswordHash: "x",
		Jmeno:        login,
		Email:        login + "@example.com",
		IsActive:     true,
	}
	require.NoError(t, database.DB.Create(u).Error)
	return u
}

func mkRocnik(t *testing.T, rok int, active bool) *models.Rocnik {
	t.Helper()
	r := &models.Rocnik{Rok: rok, IsActive: active}
	require.NoError(t, database.DB.Create(r).Error)
	return r
}

func mkVino(t *testing.T, nazev string, vinarID, rocnikID uint) *models.Vino {
	t.Helper()
	v := &models.Vino{Nazev: nazev, VinarID: vinarID, RocnikID: rocnikID}
	require.NoError(t, database.DB.Create(v).Error)
	return v
}

func mkHodnoceni(t *testing.T, vinoID, raterID uint, body int) *models.Hodnoceni {
	t.Helper()
	h := &models.Hodnoceni{Body: body, VinoID: vinoID, HodnotitelID: raterID}
	require.NoError(t, database.DB.Create(h).Error)
	return h
}

func countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(model).Count(&n).Error)
	return n
}
