package repository

import (
	"context"
	"errors"

	"github.com/artmafra/notas/internal/service/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Service, error) {
	var service domain.Service
	err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListServiceFilter) ([]*domain.Service, error) {
	var services []*domain.Service
	stmt := db.WithContext(ctx).Model(&domain.Service{})
	if filter.Description != "" {
		stmt = stmt.Where("description LIKE ?", "%"+filter.Description+"%")
	}
	err := stmt.Order("code asc").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, code string, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("code = ?", code).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	result := db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&domain.Service{})
	return result.RowsAffected, result.Error
}
