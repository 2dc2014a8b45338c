package models

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// ArticleTag 文章-标签关联
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	TagID     uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

func (ArticleTag) TableName() string {
	return "article_tags"
}

type TagWithCount struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ArticleCount int64  `json:"article_count"`
}
