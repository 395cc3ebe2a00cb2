package model

import "time"

// Post 博客文章
// AuthorID 在创建时写入之后不再变更，可见性只能由作者通过 publish/hide 切换
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	AuthorID  string    `gorm:"type:varchar(36);not null;index" json:"author_id"`
	IsHidden  bool      `gorm:"not null;default:false" json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 强制指定表名
func (Post) TableName() string {
	return "posts"
}
