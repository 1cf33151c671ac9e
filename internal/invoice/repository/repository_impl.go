package repository

import (
	"context"
	"errors"

	"github.com/artmafra/notas/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceFilter) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.SupplierCNPJ != "" {
		stmt = stmt.Where("supplier_cnpj = ?", filter.SupplierCNPJ)
	}
	if filter.ServiceCode != "" {
		stmt = stmt.Where("service_code = ?", filter.ServiceCode)
	}
	if filter.EntryFrom != "" {
		stmt = stmt.Where("entry_date >= ?", filter.EntryFrom)
	}
	if filter.EntryTo != "" {
		stmt = stmt.Where("entry_date <= ?", filter.EntryTo)
	}
	err := stmt.Order("entry_date desc, id desc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Invoice{})
	return result.RowsAffected, result.Error
}
