package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, service *Service) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Service, error)
	List(ctx context.Context, db *gorm.DB, filter ListServiceFilter) ([]*Service, error)
	Update(ctx context.Context, db *gorm.DB, code string, values map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, code string) (int64, error)
}
