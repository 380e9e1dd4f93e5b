package model

import "time"

// Account 身份账号，由身份提供方维护
type Account struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

func (Account) TableName() string { return "accounts" }

// Profile 用户资料，与 Account 一对一，email 为冗余字段且必须唯一
type Profile struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	NombreUsuario string    `gorm:"column:nombre_usuario;size:64;not null" json:"nombre_usuario"`
	Email         string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Profile) TableName() string { return "usuarios" }
