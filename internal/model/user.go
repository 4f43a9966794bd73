package model

import "time"

// User 用户（认证主体 + 作者）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(128)"`
	Password  string `gorm:"type:varchar(128);not null"` // bcrypt hash
	FullName  string `gorm:"type:varchar(128)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
