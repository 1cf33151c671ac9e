package service

import (
	"context"
	"strings"
	"time"

	"github.com/artmafra/notas/internal/supplier/domain"
	"github.com/artmafra/notas/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("supplier.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListSupplierRequest) ([]domain.Supplier, error) {
	filter := domain.ListSupplierFilter{
		Name: strings.ToUpper(strings.TrimSpace(req.Name)),
		City: strings.TrimSpace(req.City),
	}
	if regime, ok := domain.ParseTaxRegime(req.TaxRegime); ok {
		filter.TaxRegime = regime
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	suppliers := make([]domain.Supplier, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		suppliers = append(suppliers, *item)
	}
	return suppliers, nil
}

func (s *Service) GetByCNPJ(ctx context.Context, req domain.GetSupplierRequest) (domain.Supplier, error) {
	cnpj := strings.TrimSpace(req.CNPJ)
	if !domain.ValidCNPJ(cnpj) {
		return domain.Supplier{}, domain.ErrInvalidCNPJ
	}

	item, err := s.repo.FindByCNPJ(ctx, s.db, cnpj)
	if err != nil {
		return domain.Supplier{}, err
	}
	if item == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	cnpj := strings.TrimSpace(req.CNPJ)
	if !domain.ValidCNPJ(cnpj) {
		return domain.Supplier{}, domain.ErrInvalidCNPJ
	}

	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	regime, ok := domain.ParseTaxRegime(req.TaxRegime)
	if !ok {
		return domain.Supplier{}, domain.ErrInvalidTaxRegime
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		CNPJ:      cnpj,
		Name:      name,
		City:      strings.TrimSpace(req.City),
		TaxRegime: regime,
		Note:      trimNote(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &supplier); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Supplier{}, domain.ErrDuplicate
		}
		return domain.Supplier{}, err
	}

	return supplier, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSupplierRequest) (domain.Supplier, error) {
	cnpj := strings.TrimSpace(req.CNPJ)
	if !domain.ValidCNPJ(cnpj) {
		return domain.Supplier{}, domain.ErrInvalidCNPJ
	}

	values := map[string]any{}
	if req.Name != nil {
		name := strings.ToUpper(strings.TrimSpace(*req.Name))
		if name == "" {
			return domain.Supplier{}, domain.ErrInvalidName
		}
		values["name"] = name
	}
	if req.City != nil {
		values["city"] = strings.TrimSpace(*req.City)
	}
	if req.TaxRegime != nil {
		regime, ok := domain.ParseTaxRegime(*req.TaxRegime)
		if !ok {
			return domain.Supplier{}, domain.ErrInvalidTaxRegime
		}
		values["tax_regime"] = regime
	}
	if req.Note != nil {
		values["note"] = strings.TrimSpace(*req.Note)
	}

	if len(values) > 0 {
		values["updated_at"] = time.Now().UTC()
		affected, err := s.repo.Update(ctx, s.db, cnpj, values)
		if err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.Supplier{}, domain.ErrDuplicate
			}
			return domain.Supplier{}, err
		}
		if affected == 0 {
			return domain.Supplier{}, domain.ErrNotFound
		}
	}

	return s.GetByCNPJ(ctx, domain.GetSupplierRequest{CNPJ: cnpj})
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteSupplierRequest) error {
	cnpj := strings.TrimSpace(req.CNPJ)
	if !domain.ValidCNPJ(cnpj) {
		return domain.ErrInvalidCNPJ
	}

	affected, err := s.repo.Delete(ctx, s.db, cnpj)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	return &trimmed
}
