package rdb

import (
	"context"

	"Radio_Community/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// List 按时间倒序，附带发送者昵称
func (r *ContactRepository) List(ctx context.Context) ([]model.ContactMessageView, error) {
	list := make([]model.ContactMessageView, 0)
	err := r.DB.WithContext(ctx).
		Table("mensajes_contacto AS m").
		Select("m.*, u.nombre_usuario AS nombre_usuario").
		Joins("LEFT JOIN usuarios u ON u.id = m.id_usuario").
		Order("m.fecha_publicacion DESC, m.id DESC").
		Scan(&list).Error
	return list, err
}
