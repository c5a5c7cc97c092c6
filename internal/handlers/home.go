package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/middleware"
	"github.com/bockpetr/kost/internal/models"
	"github.com/bockpetr/kost/internal/service"

	"github.com/gin-gonic/gin"
)

// Index shows the ranked wine list for the selected edition (?rocnik_id=),
// defaulting to the newest one.
func Index(c *gin.Context) {
	rocniky := service.RocnikService{}
	vinoSvc := service.VinoService{}

	var selected *models.Rocnik
	if idStr := c.Query("rocnik_id"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil && id > 0 {
			r, err := rocniky.GetByID(uint(id))
			if err != nil {
				logger.Error("load rocnik:", err)
			}
			selected = r
		}
	}
	if selected == nil {
		newest, err := rocniky.GetNewest()
		if err != nil {
			logger.Error("load newest rocnik:", err)
		}
		selected = newest
	}

	rocnikNazev := "V databázi nejsou žádné ročníky"
	var vina []models.VinoWithStats
	if selected != nil {
		rocnikNazev = fmt.Sprintf("Ročník %d", selected.Rok)
		if !selected.IsActive {
			rocnikNazev += " (Archiv)"
		}
		var err error
		vina, err = vinoSvc.ListByRocnik(selected.ID)
		if err != nil {
			logger.Error("list vina:", err)
		}
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"RocnikNazev": rocnikNazev,
		"Rocnik":      selected,
		"Vina":        vina,
	})
}

// VinoDetail shows one wine with its ratings.
func VinoDetail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		setFlash(c, "Víno nenalezeno.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	vinoSvc := service.VinoService{}
	vino, ratings, err := vinoSvc.Detail(id)
	if err != nil {
		if err != service.ErrVinoNotFound {
			logger.Error("vino detail:", err)
		}
		setFlash(c, "Víno nenalezeno.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	render(c, http.StatusOK, "detail_vino.html", gin.H{
		"Vino":    vino,
		"Ratings": ratings,
	})
}

// VinarDetail is the public producer page. Contact fields are masked in the
// template for anonymous visitors.
func VinarDetail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		setFlash(c, "Vinař nenalezen.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	users := service.UserService{}
	vinar, err := users.GetByID(id)
	if err != nil {
		logger.Error("vinar detail:", err)
	}
	if vinar == nil {
		setFlash(c, "Vinař nenalezen.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	render(c, http.StatusOK, "detail_vinar.html", gin.H{
		"Vinar":    vinar,
		"LoggedIn": middleware.GetViewContext(c).LoggedIn(),
	})
}
