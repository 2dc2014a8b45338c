package services

import (
	"context"
	"strings"

	"blogapp/models"

	"github.com/pkg/errors"
)

// '!' escapes the same way in MySQL and SQLite, unlike a backslash.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchArticles 简单的基于关键词检索：每个关键词都需命中标题或正文
func SearchArticles(ctx context.Context, query string, limit int) ([]models.ArticleSummary, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return []models.ArticleSummary{}, nil
	}

	q := orm(ctx).Model(&models.Article{})
	for _, kw := range keywords {
		like := "%" + likeEscaper.Replace(kw) + "%"
		q = q.Where("(title LIKE ? ESCAPE '!' OR content_md LIKE ? ESCAPE '!')", like, like)
	}

	var articles []models.Article
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&articles).Error; err != nil {
		return nil, errors.Wrap(err, "search articles")
	}
	return summarize(articles), nil
}
