package rdb

import (
	"context"

	"Radio_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// ListByPublication 按时间升序，附带作者昵称
func (r *CommentRepository) ListByPublication(ctx context.Context, publicationID uint64) ([]model.CommentView, error) {
	list := make([]model.CommentView, 0)
	err := r.DB.WithContext(ctx).
		Table("comentarios AS c").
		Select("c.*, u.nombre_usuario AS nombre_usuario").
		Joins("LEFT JOIN usuarios u ON u.id = c.id_usuario").
		Where("c.publicacion_id = ?", publicationID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&list).Error
	return list, err
}

// ListAll 全部评论按时间倒序，附带作者昵称和文章标题
func (r *CommentRepository) ListAll(ctx context.Context) ([]model.CommentView, error) {
	list := make([]model.CommentView, 0)
	err := r.DB.WithContext(ctx).
		Table("comentarios AS c").
		Select("c.*, u.nombre_usuario AS nombre_usuario, p.titulo AS titulo_publicacion").
		Joins("LEFT JOIN usuarios u ON u.id = c.id_usuario").
		Joins("LEFT JOIN publicaciones p ON p.id = c.publicacion_id").
		Order("c.created_at DESC, c.id DESC").
		Scan(&list).Error
	return list, err
}

// Delete 硬删除，返回被删除的评论
func (r *CommentRepository) Delete(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
