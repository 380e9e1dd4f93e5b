package rdb

import (
	"context"

	"Radio_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PublicationRepository struct {
	DB *gorm.DB
}

func (r *PublicationRepository) Create(ctx context.Context, p *model.Publication) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PublicationRepository) FindByID(ctx context.Context, id uint64) (*model.Publication, error) {
	var p model.Publication
	err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// List 按创建时间倒序；tipo 为空时不过滤
func (r *PublicationRepository) List(ctx context.Context, tipo model.PublicationType) ([]model.Publication, error) {
	list := make([]model.Publication, 0)
	q := r.DB.WithContext(ctx)
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	err := q.Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// Update 只更新传入的列，返回更新后的记录
func (r *PublicationRepository) Update(ctx context.Context, id uint64, fields map[string]any) (*model.Publication, error) {
	var p model.Publication
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteWithComments 连同评论一起删除，返回被删除的记录
func (r *PublicationRepository) DeleteWithComments(ctx context.Context, id uint64) (*model.Publication, error) {
	var p model.Publication
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("publicacion_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Publication{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
