package model

import "time"

type Comment struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	PublicacionID uint64    `gorm:"column:publicacion_id;not null;index:idx_pub_created,priority:1" json:"publicacion_id"`
	UserID        string    `gorm:"column:id_usuario;size:36;not null;index" json:"id_usuario"`
	Contenido     string    `gorm:"type:text;not null" json:"contenido"`
	CreatedAt     time.Time `gorm:"index:idx_pub_created,priority:2" json:"created_at"`
}

func (Comment) TableName() string { return "comentarios" }

// CommentView 评论列表视图
type CommentView struct {
	Comment
	NombreUsuario     string `gorm:"column:nombre_usuario" json:"nombre_usuario"`
	TituloPublicacion string `gorm:"column:titulo_publicacion" json:"titulo_publicacion,omitempty"`
}
