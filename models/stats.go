package models

const CounterVisits = "visits"

// SiteCounter is a named durable counter, e.g. total home page visits.
type SiteCounter struct {
	Name  string `gorm:"primaryKey;type:varchar(32)"`
	Value int64  `gorm:"not null;default:0"`
}

func (SiteCounter) TableName() string {
	return "site_counters"
}

type BlogStats struct {
	ArticleCount int64 `json:"article_count"`
	TagCount     int64 `json:"tag_count"`
	DaysRunning  int64 `json:"days_running"`
	VisitCount   int64 `json:"visit_count"`
}

// ArticleRank is one entry of the most-viewed ranking.
type ArticleRank struct {
	Rank  int    `json:"rank"`
	ID    uint   `json:"id"`
	Title string `json:"title,omitempty"`
	Views int64  `json:"views"`
}
