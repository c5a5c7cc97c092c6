package handlers

import (
	"fmt"
	"net/http"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/middleware"
	"github.com/bockpetr/kost/internal/service"

	"github.com/gin-gonic/gin"
)

// Edition lifecycle pages. All routes here sit behind RequireAdmin.

func RocnikySprava(c *gin.Context) {
	rocniky := service.RocnikService{}
	all, err := rocniky.GetAll()
	if err != nil {
		logger.Error("list rocniky:", err)
	}

	render(c, http.StatusOK, "sprava_rocniku.html", gin.H{
		"Rocniky": all,
	})
}

func RocnikPridat(c *gin.Context) {
	rocniky := service.RocnikService{}
	r, err := rocniky.CreateNext()
	if err != nil {
		logger.Error("create rocnik:", err)
		setFlash(c, "Ročník se nepodařilo vytvořit.")
	} else {
		audit(c, "rocnik", r.ID, "create", fmt.Sprintf("Vytvořen ročník %d", r.Rok))
	}
	c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
}

// RocnikAktivovat promotes an edition. Only the newest edition can be
// activated; for anything older the call changes nothing.
func RocnikAktivovat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
		return
	}

	rocniky := service.RocnikService{}
	if err := rocniky.Activate(id); err != nil {
		logger.Error("activate rocnik:", err)
		setFlash(c, "Ročník se nepodařilo aktivovat.")
	} else {
		audit(c, "rocnik", id, "activate", "")
	}
	c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
}

func RocnikDeaktivovat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
		return
	}

	rocniky := service.RocnikService{}
	if err := rocniky.Deactivate(id); err != nil {
		logger.Error("deactivate rocnik:", err)
		setFlash(c, "Ročník se nepodařilo deaktivovat.")
	} else {
		audit(c, "rocnik", id, "deactivate", "")
	}
	c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
}

// RocnikSmazat deletes an edition with all its wines and their ratings.
func RocnikSmazat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
		return
	}

	rocniky := service.RocnikService{}
	if err := rocniky.Delete(id); err != nil {
		logger.Error("delete rocnik:", err)
		setFlash(c, "Ročník se nepodařilo smazat.")
	} else {
		audit(c, "rocnik", id, "delete", "")
	}
	c.Redirect(http.StatusSeeOther, "/rocniky/sprava")
}

// audit records a mutation under the acting user, best effort.
func audit(c *gin.Context, entity string, entityID uint, action, details string) {
	vc := middleware.GetViewContext(c)
	if vc.User == nil {
		return
	}
	database.CreateAuditLog(vc.User.ID, entity, entityID, action, details)
}
