package model

import "time"

// User is an account identity. Created by the auth service; the rest of
// the system treats it as read-only.
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(254)" json:"-"`
	PasswordHash string `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
