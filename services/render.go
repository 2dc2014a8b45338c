package services

import (
	"context"
	"strconv"
	"time"

	"blogapp/global"
	"blogapp/models"
	"blogapp/utils"
)

const htmlCacheTTL = time.Hour

// htmlKey holds a hash of rendered versions of one article, one field per
// updated_at. A render that raced with an edit can only fill the field of
// the version it read, which nobody asks for afterwards.
func htmlKey(id uint) string {
	return "article:" + strconv.FormatUint(uint64(id), 10) + ":html"
}

func htmlVersion(article *models.Article) string {
	if article.UpdatedAt.IsZero() {
		return "0"
	}
	return strconv.FormatInt(article.UpdatedAt.UnixNano(), 10)
}

// RenderArticleHTML converts the article body to HTML, going through the
// Redis cache when one is configured. Cache failures only cost a re-render.
func RenderArticleHTML(ctx context.Context, article *models.Article) string {
	rdb := cache(ctx)
	if rdb == nil {
		return utils.RenderMarkdown(article.ContentMD)
	}

	key, version := htmlKey(article.ID), htmlVersion(article)
	if cached, err := rdb.HGet(key, version).Result(); err == nil {
		return cached
	}

	html := utils.RenderMarkdown(article.ContentMD)
	pipe := rdb.TxPipeline()
	pipe.HSet(key, version, html)
	pipe.Expire(key, htmlCacheTTL)
	if _, err := pipe.Exec(); err != nil {
		global.Log.WithError(err).WithField("article_id", article.ID).Warn("cache article html")
	}
	return html
}

func InvalidateArticleCache(ctx context.Context, id uint) error {
	rdb := cache(ctx)
	if rdb == nil {
		return nil
	}
	return rdb.Del(htmlKey(id)).Err()
}

// forgetArticleHTML drops the cached HTML right after a write, ahead of the
// event round trip.
func forgetArticleHTML(ctx context.Context, id uint) {
	if err := InvalidateArticleCache(ctx, id); err != nil {
		global.Log.WithError(err).WithField("article_id", id).Warn("invalidate article html")
	}
}
