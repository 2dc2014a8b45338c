package controllers

import (
	"net/http"

	"blogapp/global"
	"blogapp/models"
	"blogapp/services"

	"github.com/gin-gonic/gin"
)

const (
	recentArticleCount = 5
	popularTagCount    = 10
)

// Index renders the home page. Each section falls back to an empty value
// when its query fails so the page always renders.
func Index(ctx *gin.Context) {
	c := ctx.Request.Context()
	log := global.Log.WithField("page", "index")

	if err := services.IncrementVisit(c); err != nil {
		log.WithError(err).Warn("increment visit")
	}

	recent, err := services.RecentArticles(c, recentArticleCount)
	if err != nil {
		log.WithError(err).Warn("recent articles")
		recent = []models.ArticleSummary{}
	}

	popular, err := services.PopularTags(c, popularTagCount)
	if err != nil {
		log.WithError(err).Warn("popular tags")
		popular = []models.TagWithCount{}
	}

	stats, err := services.BlogStats(c, siteSince())
	if err != nil {
		log.WithError(err).Warn("blog stats")
		stats = &models.BlogStats{}
	}

	render(ctx, http.StatusOK, "index.html", gin.H{
		"title":           "首页",
		"recent_articles": recent,
		"popular_tags":    popular,
		"article_count":   stats.ArticleCount,
		"tag_count":       stats.TagCount,
		"running_days":    stats.DaysRunning,
		"visit_count":     stats.VisitCount,
	})
}

func staticPage(name, title string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		render(ctx, http.StatusOK, name, gin.H{"title": title})
	}
}

var (
	About   = staticPage("about.html", "关于")
	Friends = staticPage("friends.html", "友链")
	Travel  = staticPage("travel.html", "足迹")
)
