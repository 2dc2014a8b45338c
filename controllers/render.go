package controllers

import (
	"net/http"
	"strconv"
	"time"

	"blogapp/config"
	"blogapp/global"
	"blogapp/middlewares"
	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const defaultSiteName = "blog"

func siteName() string {
	if config.AppConfig != nil && config.AppConfig.App.Name != "" {
		return config.AppConfig.App.Name
	}
	return defaultSiteName
}

// siteSince is the configured launch date of the blog, zero when unset or
// malformed.
func siteSince() time.Time {
	if config.AppConfig == nil || config.AppConfig.App.Since == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", config.AppConfig.App.Since, time.Local)
	if err != nil {
		global.Log.WithError(err).Warn("app.since is not a date")
		return time.Time{}
	}
	return t
}

func render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["site"] = siteName()
	if _, ok := data["query"]; !ok {
		data["query"] = ""
	}
	ctx.HTML(status, name, data)
}

func renderAdmin(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if admin := middlewares.CurrentAdmin(ctx); admin != nil {
		data["admin"] = admin
	}
	render(ctx, status, name, data)
}

func renderError(ctx *gin.Context, status int, message string) {
	render(ctx, status, "error.html", gin.H{"title": "出错了", "message": message})
}

// fail renders the error page matching err. Unexpected errors are logged
// and shown as a generic failure.
func fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrArticleNotFound):
		renderError(ctx, http.StatusNotFound, "文章不存在")
	case errors.Is(err, services.ErrTagNotFound):
		renderError(ctx, http.StatusNotFound, "标签不存在")
	default:
		_ = ctx.Error(err)
		global.Log.WithError(err).WithField("path", ctx.Request.URL.Path).Error("request failed")
		renderError(ctx, http.StatusInternalServerError, "服务器开小差了，请稍后再试")
	}
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		renderError(ctx, http.StatusBadRequest, "无效的编号")
		return 0, false
	}
	return uint(id), true
}
