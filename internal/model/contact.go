package model

import "time"

type ContactMessage struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"column:id_usuario;size:36;not null;index" json:"id_usuario"`
	Nombre           string    `gorm:"size:100;not null" json:"nombre"`
	Asunto           string    `gorm:"size:200;not null" json:"asunto"`
	CuerpoMensaje    string    `gorm:"column:cuerpo_mensaje;type:text;not null" json:"cuerpo_mensaje"`
	Email            string    `gorm:"size:128;not null" json:"email"`
	FechaPublicacion time.Time `gorm:"column:fecha_publicacion;index" json:"fecha_publicacion"`
}

func (ContactMessage) TableName() string { return "mensajes_contacto" }

// ContactMessageView 附带发送者资料
type ContactMessageView struct {
	ContactMessage
	NombreUsuario string `gorm:"column:nombre_usuario" json:"nombre_usuario"`
}
