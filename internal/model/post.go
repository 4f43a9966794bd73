package model

import "time"

// Post 内容主体；author 创建后不可变，按 created_at 倒序展示
type Post struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	Text      string  `gorm:"type:text;not null"`
	AuthorID  string  `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User   `gorm:"foreignKey:AuthorID"`
	GroupID   *string `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group  `gorm:"foreignKey:GroupID"`
	Image     string  `gorm:"type:varchar(255)"` // 相对路径，空表示无图
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
