package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string) (*Supplier, error)
	List(ctx context.Context, db *gorm.DB, filter ListSupplierFilter) ([]*Supplier, error)
	Update(ctx context.Context, db *gorm.DB, cnpj string, values map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, cnpj string) (int64, error)
}
