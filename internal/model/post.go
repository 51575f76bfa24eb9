package model

import "time"

// Post 内容主体（作者创建后不可变；组与图片可选）
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID string `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	GroupID  *uint  `gorm:"index:idx_post_group"`
	Group    *Group `gorm:"foreignKey:GroupID"`
	Text     string `gorm:"type:text;not null"`
	// Image is the media-relative storage path; empty when no upload.
	Image     string    `gorm:"type:varchar(255)"`
	PubDate   time.Time `gorm:"index:idx_post_pubdate;not null"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
