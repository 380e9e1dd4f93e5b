package rdb

import (
	"context"
	"errors"

	"Radio_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrLastAdmin = errors.New("refusing to delete the last admin")

type AdminRepository struct {
	DB *gorm.DB
}

// List 按创建时间升序
func (r *AdminRepository) List(ctx context.Context) ([]model.AdminRecord, error) {
	var list []model.AdminRecord
	err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *AdminRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.AdminRecord{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*model.AdminRecord, error) {
	var rec model.AdminRecord
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	return &rec, err
}

func (r *AdminRepository) Create(ctx context.Context, rec *model.AdminRecord) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

// DeleteByEmail 在同一事务内加锁计数再删除，保证管理员集合不会被删空
func (r *AdminRepository) DeleteByEmail(ctx context.Context, email string) (*model.AdminRecord, error) {
	var deleted model.AdminRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []model.AdminRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id").Find(&all).Error; err != nil {
			return err
		}

		found := false
		for _, rec := range all {
			if rec.Email == email {
				deleted = rec
				found = true
				break
			}
		}
		if !found {
			return gorm.ErrRecordNotFound
		}
		if len(all) <= 1 {
			return ErrLastAdmin
		}
		return tx.Delete(&model.AdminRecord{}, deleted.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// SeedIfEmpty 仅当 admins 为空时写入，返回写入条数
func (r *AdminRepository) SeedIfEmpty(ctx context.Context, recs []model.AdminRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	inserted := 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.AdminRecord{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for i := range recs {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&recs[i])
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	return inserted, err
}
