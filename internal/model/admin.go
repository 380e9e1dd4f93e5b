package model

import "time"

type AdminRecord struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AdminRecord) TableName() string { return "admins" }
