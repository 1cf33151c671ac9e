package repository

import (
	"context"
	"errors"

	"github.com/artmafra/notas/internal/supplier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := db.WithContext(ctx).
		Where("cnpj = ?", cnpj).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListSupplierFilter) ([]*domain.Supplier, error) {
	var suppliers []*domain.Supplier
	stmt := db.WithContext(ctx).Model(&domain.Supplier{})
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.City != "" {
		stmt = stmt.Where("city = ?", filter.City)
	}
	if filter.TaxRegime != "" {
		stmt = stmt.Where("tax_regime = ?", filter.TaxRegime)
	}
	err := stmt.Order("name asc").Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, cnpj string, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("cnpj = ?", cnpj).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, cnpj string) (int64, error) {
	result := db.WithContext(ctx).
		Where("cnpj = ?", cnpj).
		Delete(&domain.Supplier{})
	return result.RowsAffected, result.Error
}
