package services

import (
	"context"
	"strconv"
	"time"

	"blogapp/global"
	"blogapp/models"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const rankKey = "rank:article:views"

func viewKey(id string) string {
	return "article:" + id + ":views"
}

// IncrementVisit bumps the visit counter in one upsert, so the first
// visits cannot race on creating the row.
func IncrementVisit(ctx context.Context) error {
	counter := models.SiteCounter{Name: models.CounterVisits, Value: 1}
	err := orm(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value": gorm.Expr("site_counters.value + ?", 1),
		}),
	}).Create(&counter).Error
	return errors.Wrap(err, "increment visit counter")
}

// BlogStats aggregates counts for the home page. Days running are
// measured from since, or from the oldest article when since is zero.
func BlogStats(ctx context.Context, since time.Time) (*models.BlogStats, error) {
	stats := &models.BlogStats{}

	if err := orm(ctx).Model(&models.Article{}).Count(&stats.ArticleCount).Error; err != nil {
		return nil, errors.Wrap(err, "count articles")
	}
	if err := orm(ctx).Model(&models.Tag{}).Count(&stats.TagCount).Error; err != nil {
		return nil, errors.Wrap(err, "count tags")
	}

	var counter models.SiteCounter
	err := orm(ctx).Where("name = ?", models.CounterVisits).First(&counter).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "load visit counter")
	}
	stats.VisitCount = counter.Value

	if since.IsZero() && stats.ArticleCount > 0 {
		var oldest models.Article
		if err := orm(ctx).Order("created_at ASC").First(&oldest).Error; err != nil {
			return nil, errors.Wrap(err, "oldest article")
		}
		since = oldest.CreatedAt
	}
	stats.DaysRunning = daysBetween(since, time.Now())

	return stats, nil
}

func daysBetween(from, to time.Time) int64 {
	if from.IsZero() || to.Before(from) {
		return 0
	}
	return int64(to.Sub(from).Hours() / 24)
}

// RecordArticleView bumps the per-article view counter and the ranking.
// It returns the new count, or 0 when Redis is not configured.
func RecordArticleView(ctx context.Context, id uint) (int64, error) {
	rdb := cache(ctx)
	if rdb == nil {
		return 0, nil
	}

	idStr := strconv.FormatUint(uint64(id), 10)
	pipe := rdb.TxPipeline()
	incrCmd := pipe.Incr(viewKey(idStr))
	pipe.ZIncrBy(rankKey, 1, idStr)
	if _, err := pipe.Exec(); err != nil {
		return 0, errors.Wrap(err, "record article view")
	}
	return incrCmd.Val(), nil
}

func ArticleViews(ctx context.Context, id uint) (int64, error) {
	rdb := cache(ctx)
	if rdb == nil {
		return 0, nil
	}

	views, err := rdb.Get(viewKey(strconv.FormatUint(uint64(id), 10))).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "article views")
	}
	return views, nil
}

// TopArticles returns the top most viewed articles with their titles.
func TopArticles(ctx context.Context, top int) ([]models.ArticleRank, error) {
	rdb := cache(ctx)
	if rdb == nil || top <= 0 {
		return []models.ArticleRank{}, nil
	}

	zres, err := rdb.ZRevRangeWithScores(rankKey, 0, int64(top-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "article ranking")
	}

	list := make([]models.ArticleRank, 0, len(zres))
	ids := make([]uint, 0, len(zres))
	for idx, z := range zres {
		member, _ := z.Member.(string)
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
		list = append(list, models.ArticleRank{Rank: idx + 1, ID: uint(id), Views: int64(z.Score)})
	}
	if len(ids) == 0 {
		return list, nil
	}

	var articles []models.Article
	if err := orm(ctx).Select("id", "title").Where("id IN ?", ids).Find(&articles).Error; err != nil {
		global.Log.WithError(err).Warn("load titles for ranking")
		return list, nil
	}
	titles := make(map[uint]string, len(articles))
	for _, a := range articles {
		titles[a.ID] = a.Title
	}
	for i := range list {
		list[i].Title = titles[list[i].ID]
	}
	return list, nil
}

// forgetArticleViews drops the counters of a deleted article.
func forgetArticleViews(ctx context.Context, id uint) error {
	rdb := cache(ctx)
	if rdb == nil {
		return nil
	}

	idStr := strconv.FormatUint(uint64(id), 10)
	pipe := rdb.TxPipeline()
	pipe.Del(viewKey(idStr))
	pipe.ZRem(rankKey, idStr)
	_, err := pipe.Exec()
	return errors.Wrap(err, "forget article views")
}
