package model

import "time"

// Comment 评论，附着于单个 Post；随 Post 级联删除
type Comment struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Text      string `gorm:"type:text;not null"`
	PostID    string `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	Post      *Post  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  string `gorm:"type:varchar(36);index:idx_comment_author;not null"`
	Author    *User  `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string { return "comments" }
