package services

import (
	"context"
	"strings"
	"time"

	"blogapp/models"
	"blogapp/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const previewLength = 120

func ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := orm(ctx).Order("created_at DESC, id DESC").Find(&articles).Error; err != nil {
		return nil, errors.Wrap(err, "list articles")
	}
	if err := attachTags(orm(ctx), articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := orm(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get article %d", id)
	}

	one := []models.Article{article}
	if err := attachTags(orm(ctx), one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// ArticlesByTag returns the tag and the articles carrying it, newest
// first. Each article still lists all of its tags.
func ArticlesByTag(ctx context.Context, tagID uint) (*models.Tag, []models.Article, error) {
	tag, err := GetTag(ctx, tagID)
	if err != nil {
		return nil, nil, err
	}

	tagged := orm(ctx).Model(&models.ArticleTag{}).Select("article_id").Where("tag_id = ?", tagID)

	var articles []models.Article
	err = orm(ctx).Where("id IN (?)", tagged).Order("created_at DESC, id DESC").Find(&articles).Error
	if err != nil {
		return nil, nil, errors.Wrapf(err, "list articles for tag %d", tagID)
	}
	if err := attachTags(orm(ctx), articles); err != nil {
		return nil, nil, err
	}
	return tag, articles, nil
}

// ArchiveByYear groups all articles by creation year. Years are
// descending and articles within a year are newest first.
func ArchiveByYear(ctx context.Context) ([]models.YearArchive, error) {
	articles, err := ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	return groupByYear(articles), nil
}

// groupByYear expects articles sorted newest first.
func groupByYear(articles []models.Article) []models.YearArchive {
	var archive []models.YearArchive
	for _, a := range articles {
		year := a.CreatedAt.Year()
		if n := len(archive); n == 0 || archive[n-1].Year != year {
			archive = append(archive, models.YearArchive{Year: year})
		}
		last := &archive[len(archive)-1]
		last.Articles = append(last.Articles, a)
	}
	return archive
}

func RecentArticles(ctx context.Context, limit int) ([]models.ArticleSummary, error) {
	var articles []models.Article
	err := orm(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&articles).Error
	if err != nil {
		return nil, errors.Wrap(err, "recent articles")
	}
	return summarize(articles), nil
}

func summarize(articles []models.Article) []models.ArticleSummary {
	out := make([]models.ArticleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, models.ArticleSummary{
			ID:        a.ID,
			Title:     a.Title,
			Preview:   utils.Preview(a.ContentMD, previewLength),
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}

func CreateArticle(ctx context.Context, title, contentMD string, tagIDs []uint) (uint, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}

	now := time.Now()
	article := models.Article{Title: title, ContentMD: contentMD, CreatedAt: now, UpdatedAt: now}
	err := orm(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return errors.Wrap(err, "insert article")
		}
		return linkTags(tx, article.ID, tagIDs)
	})
	if err != nil {
		return 0, err
	}

	notify(ctx, ArticleEvent{Type: EventArticleCreated, ArticleID: article.ID, At: now})
	return article.ID, nil
}

func UpdateArticle(ctx context.Context, id uint, title, contentMD string, tagIDs []uint) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	err := orm(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		err := tx.First(&article, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "load article %d", id)
		}

		err = tx.Model(&article).Updates(map[string]interface{}{
			"title":      title,
			"content_md": contentMD,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return errors.Wrapf(err, "update article %d", id)
		}

		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return errors.Wrapf(err, "clear tags of article %d", id)
		}
		return linkTags(tx, id, tagIDs)
	})
	if err != nil {
		return err
	}

	forgetArticleHTML(ctx, id)
	notify(ctx, ArticleEvent{Type: EventArticleUpdated, ArticleID: id, At: time.Now()})
	return nil
}

func DeleteArticle(ctx context.Context, id uint) error {
	err := orm(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return errors.Wrapf(err, "clear tags of article %d", id)
		}
		res := tx.Delete(&models.Article{}, id)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete article %d", id)
		}
		if res.RowsAffected == 0 {
			return ErrArticleNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	forgetArticleHTML(ctx, id)
	notify(ctx, ArticleEvent{Type: EventArticleDeleted, ArticleID: id, At: time.Now()})
	return nil
}

// linkTags inserts join rows for the given tag ids. Duplicates and ids
// without a matching tag are dropped.
func linkTags(tx *gorm.DB, articleID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Order("id").Pluck("id", &existing).Error; err != nil {
		return errors.Wrap(err, "resolve tags")
	}
	if len(existing) == 0 {
		return nil
	}

	links := make([]models.ArticleTag, 0, len(existing))
	for _, tagID := range existing {
		links = append(links, models.ArticleTag{ArticleID: articleID, TagID: tagID})
	}
	return errors.Wrap(tx.Create(&links).Error, "link tags")
}

// attachTags merges the article_tags associations into articles in place.
func attachTags(db *gorm.DB, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uint, len(articles))
	index := make(map[uint]int, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
		index[a.ID] = i
	}

	var rows []struct {
		ArticleID uint
		TagID     uint
		Name      string
	}
	err := db.Table("article_tags").
		Select("article_tags.article_id, article_tags.tag_id, tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", ids).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return errors.Wrap(err, "load article tags")
	}

	for _, r := range rows {
		a := &articles[index[r.ArticleID]]
		a.TagIDs = append(a.TagIDs, r.TagID)
		a.Tags = append(a.Tags, models.Tag{ID: r.TagID, Name: r.Name})
	}
	return nil
}
