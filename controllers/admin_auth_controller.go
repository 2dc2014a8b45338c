package controllers

import (
	"net/http"

	"blogapp/global"
	"blogapp/middlewares"
	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginPage shows the login form, or goes straight to the dashboard when
// the visitor is already signed in.
func LoginPage(authn middlewares.Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID, err := authn.Identify(ctx); err == nil {
			if _, err := services.FindAdmin(ctx.Request.Context(), userID); err == nil {
				ctx.Redirect(http.StatusSeeOther, "/admin")
				return
			}
		}
		render(ctx, http.StatusOK, "admin_login.html", gin.H{"title": "登录"})
	}
}

func Login(authn middlewares.Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var form LoginForm
		if err := ctx.ShouldBind(&form); err != nil {
			render(ctx, http.StatusBadRequest, "admin_login.html", gin.H{
				"title":    "登录",
				"error":    "请输入用户名和密码",
				"username": form.Username,
			})
			return
		}

		user, err := services.Authenticate(ctx.Request.Context(), form.Username, form.Password)
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrNotAdmin) {
			global.Log.WithField("username", form.Username).Info("admin login rejected")
			render(ctx, http.StatusUnauthorized, "admin_login.html", gin.H{
				"title":    "登录",
				"error":    "用户名或密码错误",
				"username": form.Username,
			})
			return
		}
		if err != nil {
			fail(ctx, err)
			return
		}

		if err := authn.Issue(ctx, user); err != nil {
			fail(ctx, err)
			return
		}
		global.Log.WithField("username", user.Username).Info("admin logged in")
		ctx.Redirect(http.StatusSeeOther, "/admin")
	}
}

func Logout(authn middlewares.Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authn.Revoke(ctx)
		ctx.Redirect(http.StatusSeeOther, middlewares.LoginPath)
	}
}
