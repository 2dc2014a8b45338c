package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Article{}, &Tag{}, &ArticleTag{}, &SiteCounter{})
}
