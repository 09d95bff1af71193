package models

import "time"

// User owns every other entity.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	HashID       string `gorm:"size:32;uniqueIndex;not null"`
	CreatedAt    time.Time
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}

// Token is an opaque API key resolving to a user.
type Token struct {
	Key       string `gorm:"size:40;primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
}

// TableName overrides the table name.
func (Token) TableName() string {
	return "auth_tokens"
}
