package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/middleware"
	"github.com/bockpetr/kost/internal/models"
	"github.com/bockpetr/kost/internal/service"

	"github.com/gin-gonic/gin"
)

func Profil(c *gin.Context) {
	vc := middleware.GetViewContext(c)
	render(c, http.StatusOK, "profil.html", gin.H{
		"ProfilUser": vc.User,
	})
}

// ProfilSubmit updates the caller's own contact fields. A password change is
// optional and requires a matching confirmation.
func ProfilSubmit(c *gin.Context) {
	vc := middleware.GetViewContext(c)
	user := vc.User

	user.Jmeno = strings.TrimSpace(c.PostForm("jmeno"))
	user.Email = strings.TrimSpace(c.PostForm("email"))
	user.Telefon = strings.TrimSpace(c.PostForm("telefon"))
	user.Adresa = strings.TrimSpace(c.PostForm("adresa"))

	newPassword := c.PostForm("new_password")
	if newPassword != "" {
		if newPassword != c.PostForm("password_confirm") {
			render(c, http.StatusOK, "profil.html", gin.H{
				"ProfilUser": user,
				"Error":      "Hesla se neshodují!",
			})
			return
		}
		hash, err := service.HashPassword(newPassword)
		if err != nil {
			logger.Error("hash password:", err)
			render(c, http.StatusInternalServerError, "profil.html", gin.H{
				"ProfilUser": user,
				"Error":      "Heslo se nepodařilo změnit.",
			})
			return
		}
		user.PasswordHash = hash
	}

	if err := database.DB.Omit("Roles").Save(user).Error; err != nil {
		logger.Error("save profil:", err)
		render(c, http.StatusInternalServerError, "profil.html", gin.H{
			"ProfilUser": user,
			"Error":      "Uložení se nezdařilo.",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/profil")
}

func UsersSprava(c *gin.Context) {
	users := service.UserService{}
	all, err := users.GetAll()
	if err != nil {
		logger.Error("list users:", err)
	}
	render(c, http.StatusOK, "sprava_uzivatelu.html", gin.H{
		"Users": all,
	})
}

func UserPridat(c *gin.Context) {
	users := service.UserService{}
	roles, err := users.GetAllRoles()
	if err != nil {
		logger.Error("list roles:", err)
	}
	render(c, http.StatusOK, "pridat_uzivatele.html", gin.H{
		"AllRoles": roles,
	})
}

func UserPridatSubmit(c *gin.Context) {
	users := service.UserService{}

	login := strings.TrimSpace(c.PostForm("login"))
	password := c.PostForm("password")

	renderError := func(msg string) {
		roles, _ := users.GetAllRoles()
		render(c, http.StatusBadRequest, "pridat_uzivatele.html", gin.H{
			"AllRoles": roles,
			"Error":    msg,
		})
	}

	if login == "" || password == "" {
		renderError("Login a heslo jsou povinné.")
		return
	}

	if existing, err := users.GetByLogin(login); err != nil {
		logger.Error("check login:", err)
		renderError("Uložení se nezdařilo.")
		return
	} else if existing != nil {
		renderError(fmt.Sprintf("Uživatel s loginem '%s' už existuje!", login))
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		logger.Error("hash password:", err)
		renderError("Uložení se nezdařilo.")
		return
	}

	user := models.User{
		Login:        login,
		PasswordHash: hash,
		Jmeno:        strings.TrimSpace(c.PostForm("jmeno")),
		Email:        strings.TrimSpace(c.PostForm("email")),
		Telefon:      strings.TrimSpace(c.PostForm("telefon")),
		Adresa:       strings.TrimSpace(c.PostForm("adresa")),
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Error("create user:", err)
		renderError("Uložení se nezdařilo.")
		return
	}
	if err := users.SetRoles(&user, formRoleIDs(c)); err != nil {
		logger.Error("set roles:", err)
	}

	audit(c, "user", user.ID, "create", "Vytvořen uživatel "+user.Login)
	c.Redirect(http.StatusSeeOther, "/users/sprava")
}

func UserUpravit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		userNotFound(c)
		return
	}

	users := service.UserService{}
	target, err := users.GetByID(id)
	if err != nil {
		logger.Error("load user:", err)
	}
	if target == nil {
		userNotFound(c)
		return
	}

	roles, _ := users.GetAllRoles()
	render(c, http.StatusOK, "upravit_uzivatele.html", gin.H{
		"UserToEdit": target,
		"AllRoles":   roles,
	})
}

// UserUpravitSubmit saves an account edited by an admin. Admins editing
// their own account cannot drop their active flag or roles, so they cannot
// lock themselves out.
func UserUpravitSubmit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		userNotFound(c)
		return
	}

	users := service.UserService{}
	target, err := users.GetByID(id)
	if err != nil {
		logger.Error("load user:", err)
	}
	if target == nil {
		userNotFound(c)
		return
	}

	target.Jmeno = strings.TrimSpace(c.PostForm("jmeno"))
	target.Email = strings.TrimSpace(c.PostForm("email"))
	target.Telefon = strings.TrimSpace(c.PostForm("telefon"))
	target.Adresa = strings.TrimSpace(c.PostForm("adresa"))

	vc := middleware.GetViewContext(c)
	if vc.User != nil && vc.User.ID == target.ID {
		target.IsActive = true
	} else {
		target.IsActive = c.PostForm("is_active") != ""
		if err := users.SetRoles(target, formRoleIDs(c)); err != nil {
			logger.Error("set roles:", err)
		}
	}

	if err := database.DB.Omit("Roles").Save(target).Error; err != nil {
		logger.Error("save user:", err)
	}

	c.Redirect(http.StatusSeeOther, "/users/sprava")
}

func UserSmazat(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		userNotFound(c)
		return
	}

	users := service.UserService{}
	target, err := users.GetByID(id)
	if err != nil {
		logger.Error("load user:", err)
	}
	if target == nil {
		userNotFound(c)
		return
	}

	vc := middleware.GetViewContext(c)
	if vc.User != nil && vc.User.ID == target.ID {
		setFlash(c, "Nemůžete smazat svůj vlastní účet!")
		c.Redirect(http.StatusSeeOther, "/users/sprava")
		return
	}

	if err := users.Delete(target.ID); err != nil {
		logger.Error("delete user:", err)
		setFlash(c, "Uživatele se nepodařilo smazat.")
	} else {
		audit(c, "user", target.ID, "delete", "Smazán uživatel "+target.Login)
	}
	c.Redirect(http.StatusSeeOther, "/users/sprava")
}

func userNotFound(c *gin.Context) {
	setFlash(c, "Uživatel nenalezen.")
	c.Redirect(http.StatusSeeOther, "/users/sprava")
}

// formRoleIDs reads the role checkboxes.
func formRoleIDs(c *gin.Context) []uint {
	var ids []uint
	for _, v := range c.PostFormArray("roles") {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
