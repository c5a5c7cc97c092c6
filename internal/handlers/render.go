package handlers

import (
	"strconv"

	"github.com/bockpetr/kost/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and folds the per-request ViewContext plus any pending
// flash message into the template data.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	vc := middleware.GetViewContext(c)
	data["Ctx"] = vc
	if vc.User != nil {
		data["CurrentUser"] = vc.User
	}
	if msg := popFlash(c); msg != "" {
		data["Flash"] = msg
	}

	c.HTML(status, tmpl, data)
}

// setFlash stores a one-shot message shown on the page after the next
// redirect. This is the uniform not-found / not-owned policy: no hard 404
// pages, always back to a listing with an inline message.
func setFlash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

func popFlash(c *gin.Context) string {
	sess := sessions.Default(c)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	_ = sess.Save()
	if s, ok := flashes[0].(string); ok {
		return s
	}
	return ""
}

// uintParam parses a positive numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
