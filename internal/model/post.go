package model

import (
	"strings"
	"time"
)

// PublicationType 内容类型，取值固定
type PublicationType string

const (
	TypeNews  PublicationType = "noticia"
	TypePost  PublicationType = "entrada"
	TypeEvent PublicationType = "evento"
)

// 英文别名
var typeAliases = map[string]PublicationType{
	"noticia": TypeNews,
	"news":    TypeNews,
	"entrada": TypePost,
	"post":    TypePost,
	"evento":  TypeEvent,
	"event":   TypeEvent,
}

// ParsePublicationType 不在集合内返回 false
func ParsePublicationType(s string) (PublicationType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

type Publication struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	Tipo       PublicationType `gorm:"size:16;not null;index:idx_tipo_created,priority:1" json:"tipo"`
	Titulo     string          `gorm:"size:200;not null" json:"titulo"`
	Contenido  string          `gorm:"type:text;not null" json:"contenido"`
	Imagen     string          `gorm:"size:512" json:"imagen"`
	AutorEmail string          `gorm:"size:128;not null;index" json:"autor_email"`
	CreatedAt  time.Time       `gorm:"index:idx_tipo_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt  *time.Time      `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (Publication) TableName() string { return "publicaciones" }

// PublicationDetail 详情，附带作者昵称
type PublicationDetail struct {
	Publication
	NombreUsuario string `json:"nombre_usuario"`
}
