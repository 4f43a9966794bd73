package model

import "time"

// Group 话题分组，slug 作为 URL 查找键
type Group struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Group) TableName() string { return "groups" }
