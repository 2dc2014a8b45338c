package controllers

import (
	"net/http"
	"strconv"

	"blogapp/models"
	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const dashboardTopArticles = 10

type ArticleForm struct {
	Title     string `form:"title"`
	ContentMD string `form:"content_md"`
	TagIDs    []uint `form:"tag_ids"`
}

func (f *ArticleForm) article(id uint) *models.Article {
	return &models.Article{ID: id, Title: f.Title, ContentMD: f.ContentMD, TagIDs: f.TagIDs}
}

func Dashboard(ctx *gin.Context) {
	c := ctx.Request.Context()
	stats, err := services.BlogStats(c, siteSince())
	if err != nil {
		fail(ctx, err)
		return
	}
	top, err := services.TopArticles(c, dashboardTopArticles)
	if err != nil {
		fail(ctx, err)
		return
	}

	renderAdmin(ctx, http.StatusOK, "admin_dashboard.html", gin.H{
		"title":        "控制台",
		"stats":        stats,
		"top_articles": top,
	})
}

func ArticlesPage(ctx *gin.Context) {
	articles, err := services.ListArticles(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	renderAdmin(ctx, http.StatusOK, "admin_articles.html", gin.H{"title": "文章", "articles": articles})
}

// ArticlesData lists every article as JSON.
func ArticlesData(ctx *gin.Context) {
	articles, err := services.ListArticles(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"articles": articles})
}

func renderArticleForm(ctx *gin.Context, status int, title, action string, article *models.Article, formErr string) {
	tags, err := services.AllTags(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	renderAdmin(ctx, status, "admin_article_form.html", gin.H{
		"title":   title,
		"action":  action,
		"article": article,
		"tags":    tags,
		"error":   formErr,
	})
}

func NewArticlePage(ctx *gin.Context) {
	renderArticleForm(ctx, http.StatusOK, "写文章", "/admin/new_article", &models.Article{}, "")
}

func CreateArticle(ctx *gin.Context) {
	var form ArticleForm
	if err := ctx.ShouldBind(&form); err != nil {
		renderArticleForm(ctx, http.StatusBadRequest, "写文章", "/admin/new_article", form.article(0), "表单内容无效")
		return
	}

	_, err := services.CreateArticle(ctx.Request.Context(), form.Title, form.ContentMD, form.TagIDs)
	if errors.Is(err, services.ErrEmptyTitle) {
		renderArticleForm(ctx, http.StatusBadRequest, "写文章", "/admin/new_article", form.article(0), "标题不能为空")
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/admin/articles")
}

func editAction(id uint) string {
	return "/admin/edit_article/" + strconv.FormatUint(uint64(id), 10)
}

func EditArticlePage(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	article, err := services.GetArticle(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	renderArticleForm(ctx, http.StatusOK, "编辑文章", editAction(id), article, "")
}

func UpdateArticle(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var form ArticleForm
	if err := ctx.ShouldBind(&form); err != nil {
		renderArticleForm(ctx, http.StatusBadRequest, "编辑文章", editAction(id), form.article(id), "表单内容无效")
		return
	}

	err := services.UpdateArticle(ctx.Request.Context(), id, form.Title, form.ContentMD, form.TagIDs)
	if errors.Is(err, services.ErrEmptyTitle) {
		renderArticleForm(ctx, http.StatusBadRequest, "编辑文章", editAction(id), form.article(id), "标题不能为空")
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/admin/articles")
}

func DeleteArticle(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := services.DeleteArticle(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/admin/articles")
}
