package models

import "time"

type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ContentMD string    `gorm:"column:content_md;type:text;not null" json:"content_md"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled from article_tags after load.
	TagIDs []uint `gorm:"-" json:"tags"`
	Tags   []Tag  `gorm:"-" json:"-"`
}

func (Article) TableName() string {
	return "articles"
}

// HasTag reports whether the article is associated with tagID.
func (a *Article) HasTag(tagID uint) bool {
	for _, id := range a.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// ArticleSummary is the short form shown in recent-article lists.
type ArticleSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}

// YearArchive groups the articles published in one calendar year.
type YearArchive struct {
	Year     int       `json:"year"`
	Articles []Article `json:"articles"`
}
