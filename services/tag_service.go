package services

import (
	"context"
	"strings"

	"blogapp/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func tagsWithCount(db *gorm.DB) *gorm.DB {
	return db.Table("tags").
		Select("tags.id, tags.name, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id, tags.name")
}

// ListTags returns every tag with the number of articles using it,
// ordered by name.
func ListTags(ctx context.Context) ([]models.TagWithCount, error) {
	var tags []models.TagWithCount
	if err := tagsWithCount(orm(ctx)).Order("tags.name ASC").Scan(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	return tags, nil
}

// PopularTags returns the limit most used tags. Unused tags are left out.
func PopularTags(ctx context.Context, limit int) ([]models.TagWithCount, error) {
	var tags []models.TagWithCount
	err := tagsWithCount(orm(ctx)).
		Having("COUNT(article_tags.article_id) > 0").
		Order("article_count DESC, tags.id ASC").
		Limit(limit).
		Scan(&tags).Error
	if err != nil {
		return nil, errors.Wrap(err, "popular tags")
	}
	return tags, nil
}

func AllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := orm(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "all tags")
	}
	return tags, nil
}

func GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := orm(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get tag %d", id)
	}
	return &tag, nil
}

func CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}

	var n int64
	if err := orm(ctx).Model(&models.Tag{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, errors.Wrap(err, "check tag name")
	}
	if n > 0 {
		return nil, ErrTagExists
	}

	tag := models.Tag{Name: name}
	if err := orm(ctx).Create(&tag).Error; err != nil {
		return nil, errors.Wrap(err, "insert tag")
	}
	return &tag, nil
}

// DeleteTag removes the tag and its article associations.
func DeleteTag(ctx context.Context, id uint) error {
	return orm(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return errors.Wrapf(err, "clear articles of tag %d", id)
		}
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete tag %d", id)
		}
		if res.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}
