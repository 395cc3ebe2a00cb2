package model

import "time"

// 用户角色
// ADMIN 可以查看全量用户并创建任意角色的账号，BLOGGER 只能管理自己的文章
const (
	UserTypeAdmin   = "ADMIN"
	UserTypeBlogger = "BLOGGER"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null;unique" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Type         string    `gorm:"type:varchar(16);not null;default:BLOGGER" json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 强制指定表名
func (User) TableName() string {
	return "users"
}

type AuthClaims struct {
	UserID string `json:"id"`
}
