package model

import "time"

// Comment 评论（创建后不可修改、不可删除）
type Comment struct {
	ID       uint   `gorm:"primaryKey"`
	PostID   uint   `gorm:"index:idx_comment_post;not null"`
	Post     Post   `gorm:"foreignKey:PostID"`
	AuthorID string `gorm:"type:varchar(36);not null"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	Text     string `gorm:"type:text;not null"`
	Created  time.Time
}

func (Comment) TableName() string { return "comments" }
