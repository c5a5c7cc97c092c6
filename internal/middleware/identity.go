package middleware

import (
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/models"
	"github.com/bockpetr/kost/internal/service"
	"github.com/bockpetr/kost/internal/token"

	"github.com/gin-gonic/gin"
)

const viewContextKey = "ViewContext"

// ViewContext is the ambient request-scoped state every page needs: who is
// asking and the edition menu. Built once per request and passed explicitly,
// never global.
type ViewContext struct {
	User         *models.User // nil for anonymous
	AllRocniky   []models.Rocnik
	ActiveRocnik *models.Rocnik
}

func (vc *ViewContext) LoggedIn() bool {
	return vc.User != nil
}

func (vc *ViewContext) IsAdmin() bool {
	return vc.User != nil && vc.User.IsAdmin()
}

// Identity resolves the access-token cookie into a ViewContext on every
// request. Absent, malformed and expired tokens all resolve to anonymous
// here; so does a login whose account no longer exists. Protected routes add
// RequireAuth or RequireAdmin on top.
func Identity(secretKey string) gin.HandlerFunc {
	users := service.UserService{}
	rocniky := service.RocnikService{}

	return func(c *gin.Context) {
		vc := &ViewContext{}

		if raw, err := c.Cookie(token.CookieName); err == nil && raw != "" {
			if login, err := token.ParseCookie(secretKey, raw); err == nil {
				user, err := users.GetByLogin(login)
				if err != nil {
					logger.Warning("identity lookup:", err)
				}
				vc.User = user
			}
		}

		if all, err := rocniky.GetAll(); err == nil {
			vc.AllRocniky = all
		}
		if active, err := rocniky.GetActive(); err == nil {
			vc.ActiveRocnik = active
		}

		c.Set(viewContextKey, vc)
		c.Next()
	}
}

// GetViewContext returns the context built by Identity. Routes registered
// outside the Identity chain get an empty anonymous context.
func GetViewContext(c *gin.Context) *ViewContext {
	if v, ok := c.Get(viewContextKey); ok {
		if vc, ok := v.(*ViewContext); ok {
			return vc
		}
	}
	return &ViewContext{}
}
