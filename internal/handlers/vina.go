package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/middleware"
	"github.com/bockpetr/kost/internal/models"
	"github.com/bockpetr/kost/internal/service"

	"github.com/gin-gonic/gin"
)

// Producer-facing wine management. All routes sit behind RequireAuth;
// ownership is re-checked in the service on every mutation.

func VinaSprava(c *gin.Context) {
	vc := middleware.GetViewContext(c)
	vinoSvc := service.VinoService{}

	var wines []models.Vino
	if vc.ActiveRocnik != nil {
		var err error
		wines, err = vinoSvc.ListByVinar(vc.ActiveRocnik.ID, vc.User.ID)
		if err != nil {
			logger.Error("list own vina:", err)
		}
	}

	render(c, http.StatusOK, "sprava_vin.html", gin.H{
		"Wines": wines,
	})
}

func vinoFormData(extra gin.H) gin.H {
	data := gin.H{
		"Barvy":      models.BarvyVina,
		"Sladkosti":  models.SladkostiVina,
		"Privlastky": models.PrivlastkyVina,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func VinoPridat(c *gin.Context) {
	render(c, http.StatusOK, "pridat_vino.html", vinoFormData(nil))
}

// VinoPridatSubmit creates a wine in the active edition. Without an active
// edition the form re-renders with a domain error and nothing is stored.
func VinoPridatSubmit(c *gin.Context) {
	vc := middleware.GetViewContext(c)

	if vc.ActiveRocnik == nil {
		render(c, http.StatusOK, "pridat_vino.html", vinoFormData(gin.H{
			"Error": "Není nastaven žádný aktivní ročník!",
		}))
		return
	}

	nazev := strings.TrimSpace(c.PostForm("nazev"))
	if nazev == "" {
		render(c, http.StatusOK, "pridat_vino.html", vinoFormData(gin.H{
			"Error": "Název vína je povinný.",
		}))
		return
	}

	rokSklizne, _ := strconv.Atoi(c.PostForm("rok_sklizne"))

	vino := models.Vino{
		Nazev:      nazev,
		Odruda:     strings.TrimSpace(c.PostForm("odruda")),
		Barva:      c.PostForm("barva"),
		Sladkost:   c.PostForm("sladkost"),
		Privlastek: c.PostForm("privlastek"),
		RokSklizne: rokSklizne,
		VinarID:    vc.User.ID,
		RocnikID:   vc.ActiveRocnik.ID,
	}

	vinoSvc := service.VinoService{}
	if err := vinoSvc.Create(&vino); err != nil {
		logger.Error("create vino:", err)
		render(c, http.StatusInternalServerError, "pridat_vino.html", vinoFormData(gin.H{
			"Error": "Víno se nepodařilo uložit.",
		}))
		return
	}

	audit(c, "vino", vino.ID, "create", "Přidáno víno "+vino.Nazev)
	c.Redirect(http.StatusSeeOther, "/vina/sprava")
}

func VinoUpravit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		vinoNotOwned(c)
		return
	}

	vc := middleware.GetViewContext(c)
	vinoSvc := service.VinoService{}
	vino, err := vinoSvc.GetOwned(id, vc.User.ID)
	if err != nil {
		vinoNotOwned(c)
		return
	}

	render(c, http.StatusOK, "upravit_vino.html", vinoFormData(gin.H{
		"Wine": vino,
	}))
}

func VinoUpravitSubmit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		vinoNotOwned(c)
		return
	}

	vc := middleware.GetViewContext(c)
	vinoSvc := service.VinoService{}
	vino, err := vinoSvc.GetOwned(id, vc.User.ID)
	if err != nil {
		vinoNotOwned(c)
		return
	}

	vino.Nazev = strings.TrimSpace(c.PostForm("nazev"))
	vino.Odruda = strings.TrimSpace(c.PostForm("odruda"))
	vino.Barva = c.PostForm("barva")
	vino.Sladkost = c.PostForm("sladkost")
	vino.Privlastek = c.PostForm("privlastek")
	vino.RokSklizne, _ = strconv.Atoi(c.PostForm("rok_sklizne"))

	if err := vinoSvc.Update(vino); err != nil {
		logger.Error("update vino:", err)
		render(c, http.StatusInternalServerError, "upravit_vino.html", vinoFormData(gin.H{
			"Wine":  vino,
			"Error": "Víno se nepodařilo uložit.",
		}))
		return
	}

	c.Redirect(http.StatusSeeOther, "/vina/sprava")
}

func VinoSmazat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		vinoNotOwned(c)
		return
	}

	vc := middleware.GetViewContext(c)
	vinoSvc := service.VinoService{}
	if err := vinoSvc.DeleteOwned(id, vc.User.ID); err != nil {
		if err != service.ErrVinoNotFound {
			logger.Error("delete vino:", err)
		}
		vinoNotOwned(c)
		return
	}

	audit(c, "vino", id, "delete", "")
	c.Redirect(http.StatusSeeOther, "/vina/sprava")
}

func vinoNotOwned(c *gin.Context) {
	setFlash(c, "Víno nenalezeno nebo nemáte oprávnění s ním pracovat.")
	c.Redirect(http.StatusSeeOther, "/vina/sprava")
}

// Hodnoceni renders the rating table: every wine of the active edition the
// caller does not own, prefilled with the caller's existing scores.
func Hodnoceni(c *gin.Context) {
	vc := middleware.GetViewContext(c)

	if vc.ActiveRocnik == nil {
		render(c, http.StatusOK, "hodnoceni.html", gin.H{
			"Error": "Není aktivní ročník.",
		})
		return
	}

	vinoSvc := service.VinoService{}
	wines, err := vinoSvc.ListRatable(vc.ActiveRocnik.ID, vc.User.ID)
	if err != nil {
		logger.Error("list ratable vina:", err)
	}

	render(c, http.StatusOK, "hodnoceni.html", gin.H{
		"WinesData": wines,
	})
}

// HodnoceniSubmit collects every body_<id>/poznamka_<id> pair from the form
// and hands the batch to the service, which commits it as one transaction.
func HodnoceniSubmit(c *gin.Context) {
	vc := middleware.GetViewContext(c)

	if err := c.Request.ParseForm(); err != nil {
		c.Redirect(http.StatusSeeOther, "/vina/hodnoceni")
		return
	}

	var entries []service.RatingEntry
	for key, vals := range c.Request.PostForm {
		if !strings.HasPrefix(key, "body_") || len(vals) == 0 {
			continue
		}
		idStr := strings.TrimPrefix(key, "body_")
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			continue
		}
		entries = append(entries, service.RatingEntry{
			VinoID:   uint(id),
			Body:     vals[0],
			Poznamka: c.Request.PostForm.Get("poznamka_" + idStr),
		})
	}

	vinoSvc := service.VinoService{}
	if err := vinoSvc.SubmitRatings(vc.User.ID, entries); err != nil {
		logger.Error("submit ratings:", err)
		setFlash(c, "Hodnocení se nepodařilo uložit.")
	}

	c.Redirect(http.StatusSeeOther, "/vina/hodnoceni")
}
