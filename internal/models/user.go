package models

import (
	"time"
)

// User is an account allowed to log in.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Nombre       string    `gorm:"size:150;not null" json:"nombre"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps the model to its table.
func (User) TableName() string {
	return "usuarios"
}
