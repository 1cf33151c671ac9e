package service

import (
	"context"
	"strings"
	"time"

	"github.com/artmafra/notas/internal/service/domain"
	"github.com/artmafra/notas/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Registry struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.ServiceRegistry {
	return &Registry{
		db:   p.DB,
		log:  p.Log.Named("service.registry"),
		repo: p.Repo,
	}
}

func (s *Registry) List(ctx context.Context, req domain.ListServiceRequest) ([]domain.Service, error) {
	filter := domain.ListServiceFilter{
		Description: strings.TrimSpace(req.Description),
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		services = append(services, *item)
	}
	return services, nil
}

func (s *Registry) GetByCode(ctx context.Context, req domain.GetServiceRequest) (domain.Service, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Service{}, domain.ErrInvalidCode
	}

	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Registry) Create(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Service{}, domain.ErrInvalidCode
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Service{}, domain.ErrInvalidDescription
	}

	rateSN := rateSetOrEmpty(req.RateSN)
	rateN := rateSetOrEmpty(req.RateN)
	rateMEI := rateSetOrEmpty(req.RateMEI)
	if !rateSN.Valid() || !rateN.Valid() || !rateMEI.Valid() {
		return domain.Service{}, domain.ErrInvalidRate
	}

	now := time.Now().UTC()
	service := domain.Service{
		Code:         code,
		Description:  description,
		DebitAccount: strings.TrimSpace(req.DebitAccount),
		RateSN:       datatypes.NewJSONType(rateSN),
		RateN:        datatypes.NewJSONType(rateN),
		RateMEI:      datatypes.NewJSONType(rateMEI),
		Note:         req.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &service); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Service{}, domain.ErrDuplicate
		}
		return domain.Service{}, err
	}

	return service, nil
}

func (s *Registry) Update(ctx context.Context, req domain.UpdateServiceRequest) (domain.Service, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Service{}, domain.ErrInvalidCode
	}

	values := map[string]any{}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Service{}, domain.ErrInvalidDescription
		}
		values["description"] = description
	}
	if req.DebitAccount != nil {
		values["debit_account"] = strings.TrimSpace(*req.DebitAccount)
	}
	if req.RateSN != nil {
		if !req.RateSN.Valid() {
			return domain.Service{}, domain.ErrInvalidRate
		}
		values["rate_sn"] = datatypes.NewJSONType(*req.RateSN)
	}
	if req.RateN != nil {
		if !req.RateN.Valid() {
			return domain.Service{}, domain.ErrInvalidRate
		}
		values["rate_n"] = datatypes.NewJSONType(*req.RateN)
	}
	if req.RateMEI != nil {
		if !req.RateMEI.Valid() {
			return domain.Service{}, domain.ErrInvalidRate
		}
		values["rate_mei"] = datatypes.NewJSONType(*req.RateMEI)
	}
	if req.Note != nil {
		values["note"] = strings.TrimSpace(*req.Note)
	}

	if len(values) > 0 {
		values["updated_at"] = time.Now().UTC()
		affected, err := s.repo.Update(ctx, s.db, code, values)
		if err != nil {
			return domain.Service{}, err
		}
		if affected == 0 {
			return domain.Service{}, domain.ErrNotFound
		}
	}

	return s.GetByCode(ctx, domain.GetServiceRequest{Code: code})
}

func (s *Registry) Delete(ctx context.Context, req domain.DeleteServiceRequest) error {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.ErrInvalidCode
	}

	affected, err := s.repo.Delete(ctx, s.db, code)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func rateSetOrEmpty(rates *domain.RateSet) domain.RateSet {
	if rates == nil {
		return domain.RateSet{}
	}
	return *rates
}
