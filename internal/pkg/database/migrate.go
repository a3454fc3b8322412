package database

import (
	"DigitalOrganisms/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 建表，外键及级联删除由模型上的 constraint 声明
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Member{},
		&model.Article{},
		&model.ResearchArticle{},
		&model.Citation{},
		&model.ForumPost{},
		&model.Discussion{},
		&model.Comment{},
		&model.Integration{},
		&model.IntegrationUsageLog{},
		&model.DailySnapshot{},
	)
}
