package server

import (
	"html/template"
	"net/http"

	"github.com/bockpetr/kost/internal/config"
	"github.com/bockpetr/kost/internal/handlers"
	"github.com/bockpetr/kost/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// maskEmail hides most of the local part of a contact e-mail shown on the
// public producer page.
func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}

func maskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	masked := make([]rune, n)
	for i := range runes {
		if i >= n-2 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")

	r.SetFuncMap(template.FuncMap{
		"maskEmail": maskEmail,
		"maskPhone": maskPhone,
	})
	r.LoadHTMLGlob("web/templates/*.html")

	// Cookie store carries only flash messages; identity rides the signed
	// access token.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("kost_session", store))

	r.Use(middleware.Identity(cfg.SecretKey))

	// veřejné stránky
	r.GET("/", handlers.Index)
	r.GET("/vino/:id", handlers.VinoDetail)
	r.GET("/vinar/:id", handlers.VinarDetail)

	// AUTH
	r.GET("/auth/login", handlers.LoginPage)
	r.POST("/auth/login", handlers.LoginSubmit(cfg))
	r.GET("/auth/logout", handlers.Logout)

	// správa ročníků — jen admin
	rocniky := r.Group("/rocniky", middleware.RequireAdmin())
	rocniky.GET("/sprava", handlers.RocnikySprava)
	rocniky.POST("/pridat", handlers.RocnikPridat)
	rocniky.GET("/aktivovat/:id", handlers.RocnikAktivovat)
	rocniky.GET("/deaktivovat/:id", handlers.RocnikDeaktivovat)
	rocniky.GET("/smazat/:id", handlers.RocnikSmazat)

	// účty: profil pro přihlášené, zbytek jen admin
	users := r.Group("/users")
	users.GET("/profil", middleware.RequireAuth(), handlers.Profil)
	users.POST("/profil", middleware.RequireAuth(), handlers.ProfilSubmit)
	users.GET("/sprava", middleware.RequireAdmin(), handlers.UsersSprava)
	users.GET("/pridat", middleware.RequireAdmin(), handlers.UserPridat)
	users.POST("/pridat", middleware.RequireAdmin(), handlers.UserPridatSubmit)
	users.GET("/upravit/:id", middleware.RequireAdmin(), handlers.UserUpravit)
	users.POST("/upravit/:id", middleware.RequireAdmin(), handlers.UserUpravitSubmit)
	users.GET("/smazat/:id", middleware.RequireAdmin(), handlers.UserSmazat)

	// vína a hodnocení — přihlášení uživatelé
	vina := r.Group("/vina", middleware.RequireAuth())
	vina.GET("/sprava", handlers.VinaSprava)
	vina.GET("/pridat", handlers.VinoPridat)
	vina.POST("/pridat", handlers.VinoPridatSubmit)
	vina.GET("/upravit/:id", handlers.VinoUpravit)
	vina.POST("/upravit/:id", handlers.VinoUpravitSubmit)
	vina.GET("/smazat/:id", handlers.VinoSmazat)
	vina.GET("/hodnoceni", handlers.Hodnoceni)
	vina.POST("/hodnoceni", handlers.HodnoceniSubmit)

	// AUDIT
	r.GET("/audit", middleware.RequireAdmin(), handlers.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
