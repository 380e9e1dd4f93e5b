package rdb

import (
	"context"

	"Radio_Community/internal/model"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) error {
	return r.DB.WithContext(ctx).Create(acc).Error
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	var acc model.Account
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&acc).Error
	return &acc, err
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var acc model.Account
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	return &acc, err
}

type ProfileRepository struct {
	DB *gorm.DB
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return &p, err
}

// FindByEmail 依赖 usuarios.email 唯一约束，否则可能匹配到别人的资料
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error
	return &p, err
}
