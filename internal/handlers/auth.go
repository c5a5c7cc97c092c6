package handlers

import (
	"net/http"
	"strings"

	"github.com/bockpetr/kost/internal/config"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/service"
	"github.com/bockpetr/kost/internal/token"

	"github.com/gin-gonic/gin"
)

func LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{})
}

// LoginSubmit verifies credentials and issues the signed session cookie.
func LoginSubmit(cfg *config.Config) gin.HandlerFunc {
	users := service.UserService{}

	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		user := users.CheckCredentials(username, password)
		if user == nil {
			render(c, http.StatusOK, "login.html", gin.H{"Error": "Neplatné jméno nebo heslo."})
			return
		}
		if !user.IsActive {
			render(c, http.StatusOK, "login.html", gin.H{"Error": "Váš účet byl deaktivován."})
			return
		}

		tok, err := token.Issue(cfg.SecretKey, user.Login, cfg.TokenTTL)
		if err != nil {
			logger.Error("issue token:", err)
			render(c, http.StatusInternalServerError, "login.html", gin.H{"Error": "Přihlášení se nezdařilo."})
			return
		}

		maxAge := int(cfg.TokenTTL.Seconds())
		c.SetCookie(token.CookieName, token.CookieValue(tok), maxAge, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}

func Logout(c *gin.Context) {
	c.SetCookie(token.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
