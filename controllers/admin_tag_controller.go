package controllers

import (
	"net/http"

	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func TagsPage(ctx *gin.Context) {
	tags, err := services.ListTags(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	renderAdmin(ctx, http.StatusOK, "admin_tags.html", gin.H{"title": "标签", "tags": tags})
}

func NewTagPage(ctx *gin.Context) {
	renderAdmin(ctx, http.StatusOK, "admin_tag_form.html", gin.H{"title": "新标签"})
}

func CreateTag(ctx *gin.Context) {
	name := ctx.PostForm("name")

	_, err := services.CreateTag(ctx.Request.Context(), name)
	switch {
	case errors.Is(err, services.ErrEmptyTagName):
		renderAdmin(ctx, http.StatusBadRequest, "admin_tag_form.html", gin.H{"title": "新标签", "error": "名称不能为空", "name": name})
		return
	case errors.Is(err, services.ErrTagExists):
		renderAdmin(ctx, http.StatusBadRequest, "admin_tag_form.html", gin.H{"title": "新标签", "error": "标签已存在", "name": name})
		return
	case err != nil:
		fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/admin/tags")
}

func DeleteTag(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := services.DeleteTag(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/admin/tags")
}
