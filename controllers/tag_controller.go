package controllers

import (
	"net/http"

	"blogapp/services"

	"github.com/gin-gonic/gin"
)

func Tags(ctx *gin.Context) {
	tags, err := services.ListTags(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "tags.html", gin.H{"title": "标签", "tags": tags})
}

func TagArticles(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	tag, articles, err := services.ArticlesByTag(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "tag_articles.html", gin.H{
		"title":    tag.Name,
		"tag":      tag,
		"articles": articles,
	})
}
