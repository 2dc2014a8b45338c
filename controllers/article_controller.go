package controllers

import (
	"html/template"
	"net/http"
	"strconv"

	"blogapp/global"
	"blogapp/services"

	"github.com/gin-gonic/gin"
)

const searchLimit = 20

func ShowArticle(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	c := ctx.Request.Context()
	article, err := services.GetArticle(c, id)
	if err != nil {
		fail(ctx, err)
		return
	}

	views, err := services.RecordArticleView(c, id)
	if err != nil {
		global.Log.WithError(err).WithField("article_id", id).Warn("record article view")
	}

	render(ctx, http.StatusOK, "article.html", gin.H{
		"title":        article.Title,
		"article":      article,
		"content_html": template.HTML(services.RenderArticleHTML(c, article)),
		"edited":       article.UpdatedAt.Sub(article.CreatedAt) > 0,
		"views":        views,
	})
}

func Archive(ctx *gin.Context) {
	archive, err := services.ArchiveByYear(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "archive.html", gin.H{
		"title":                    "归档",
		"articles_grouped_by_year": archive,
	})
}

func Search(ctx *gin.Context) {
	query := ctx.Query("q")
	results, err := services.SearchArticles(ctx.Request.Context(), query, searchLimit)
	if err != nil {
		fail(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "search.html", gin.H{
		"title":   "搜索",
		"query":   query,
		"results": results,
	})
}

// GetArticleViews 从 Redis 获取单篇文章阅读数
func GetArticleViews(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	views, err := services.ArticleViews(ctx.Request.Context(), uint(id))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "views": views})
}

// GetTopArticles 返回阅读量 Top N 排行
func GetTopArticles(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	list, err := services.TopArticles(ctx.Request.Context(), top)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": list})
}
