package middlewares

import (
	"net/http"

	"blogapp/global"
	"blogapp/models"
	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	AdminKey  = "admin"
	LoginPath = "/admin/login"
)

// AdminAuth guards admin pages; visitors without an admin session are
// sent to the login page.
func AdminAuth(authn Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !authorize(ctx, authn) {
			ctx.Redirect(http.StatusSeeOther, LoginPath)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminAPIAuth guards admin JSON endpoints.
func AdminAPIAuth(authn Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !authorize(ctx, authn) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func authorize(ctx *gin.Context, authn Authenticator) bool {
	userID, err := authn.Identify(ctx)
	if err != nil {
		return false
	}

	user, err := services.FindAdmin(ctx.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, services.ErrNotAdmin) {
			global.Log.WithError(err).Error("load admin user")
		}
		return false
	}

	ctx.Set(AdminKey, user)
	return true
}

// CurrentAdmin returns the user stored by AdminAuth.
func CurrentAdmin(ctx *gin.Context) *models.User {
	if v, ok := ctx.Get(AdminKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
