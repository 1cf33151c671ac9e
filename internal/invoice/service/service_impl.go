package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artmafra/notas/internal/invoice/domain"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Suppliers supplierdomain.Service
	Services  servicedomain.ServiceRegistry
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	suppliers supplierdomain.Service
	services  servicedomain.ServiceRegistry
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		suppliers: p.Suppliers,
		services:  p.Services,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.Invoice, error) {
	filter := domain.ListInvoiceFilter{
		SupplierCNPJ: strings.TrimSpace(req.SupplierCNPJ),
		ServiceCode:  strings.TrimSpace(req.ServiceCode),
		EntryFrom:    strings.TrimSpace(req.EntryFrom),
		EntryTo:      strings.TrimSpace(req.EntryTo),
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return domain.Invoice{}, domain.ErrInvalidNumber
	}
	if req.ValueCents < 0 {
		return domain.Invoice{}, domain.ErrInvalidValue
	}
	if req.MaterialDeductionCents < 0 || req.MaterialDeductionCents > req.ValueCents {
		return domain.Invoice{}, domain.ErrInvalidMaterial
	}

	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return domain.Invoice{}, err
	}

	supplier, err := s.suppliers.GetByCNPJ(ctx, supplierdomain.GetSupplierRequest{CNPJ: req.SupplierCNPJ})
	if err != nil {
		if errors.Is(err, supplierdomain.ErrNotFound) || errors.Is(err, supplierdomain.ErrInvalidCNPJ) {
			return domain.Invoice{}, domain.ErrSupplierNotFound
		}
		return domain.Invoice{}, err
	}

	contracted, err := s.services.GetByCode(ctx, servicedomain.GetServiceRequest{Code: req.ServiceCode})
	if err != nil {
		if errors.Is(err, servicedomain.ErrNotFound) || errors.Is(err, servicedomain.ErrInvalidCode) {
			return domain.Invoice{}, domain.ErrServiceNotFound
		}
		return domain.Invoice{}, err
	}

	withheld := Compute(contracted.RatesForRegime(supplier.TaxRegime), req.ValueCents, req.MaterialDeductionCents)

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:                     s.genID.Generate(),
		SupplierCNPJ:           supplier.CNPJ,
		ServiceCode:            contracted.Code,
		InvoiceNumber:          number,
		EntryDate:              entryDate,
		IssueDate:              issueDate,
		DueDate:                dueDate,
		ValueCents:             req.ValueCents,
		MaterialDeductionCents: req.MaterialDeductionCents,
		ISSQNCents:             withheld.ISSQNCents,
		INSSCents:              withheld.INSSCents,
		CSCents:                withheld.CSCents,
		IRRFCents:              withheld.IRRFCents,
		NetAmountCents:         NetAmount(req.ValueCents, withheld),
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	return invoice, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if current == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	values := map[string]any{}
	if req.InvoiceNumber != nil {
		number := strings.TrimSpace(*req.InvoiceNumber)
		if number == "" {
			return domain.Invoice{}, domain.ErrInvalidNumber
		}
		values["invoice_number"] = number
	}
	if req.EntryDate != nil {
		entryDate, err := parseDate(*req.EntryDate)
		if err != nil {
			return domain.Invoice{}, err
		}
		values["entry_date"] = entryDate
	}
	if req.IssueDate != nil {
		issueDate, err := parseDate(*req.IssueDate)
		if err != nil {
			return domain.Invoice{}, err
		}
		values["issue_date"] = issueDate
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return domain.Invoice{}, err
		}
		values["due_date"] = dueDate
	}

	supplierCNPJ := current.SupplierCNPJ
	serviceCode := current.ServiceCode
	valueCents := current.ValueCents
	materialCents := current.MaterialDeductionCents
	recompute := false

	if req.SupplierCNPJ != nil {
		supplierCNPJ = strings.TrimSpace(*req.SupplierCNPJ)
		recompute = true
	}
	if req.ServiceCode != nil {
		serviceCode = strings.TrimSpace(*req.ServiceCode)
		recompute = true
	}
	if req.ValueCents != nil {
		valueCents = *req.ValueCents
		recompute = true
	}
	if req.MaterialDeductionCents != nil {
		materialCents = *req.MaterialDeductionCents
		recompute = true
	}

	if recompute {
		if valueCents < 0 {
			return domain.Invoice{}, domain.ErrInvalidValue
		}
		if materialCents < 0 || materialCents > valueCents {
			return domain.Invoice{}, domain.ErrInvalidMaterial
		}

		supplier, err := s.suppliers.GetByCNPJ(ctx, supplierdomain.GetSupplierRequest{CNPJ: supplierCNPJ})
		if err != nil {
			if errors.Is(err, supplierdomain.ErrNotFound) || errors.Is(err, supplierdomain.ErrInvalidCNPJ) {
				return domain.Invoice{}, domain.ErrSupplierNotFound
			}
			return domain.Invoice{}, err
		}
		contracted, err := s.services.GetByCode(ctx, servicedomain.GetServiceRequest{Code: serviceCode})
		if err != nil {
			if errors.Is(err, servicedomain.ErrNotFound) || errors.Is(err, servicedomain.ErrInvalidCode) {
				return domain.Invoice{}, domain.ErrServiceNotFound
			}
			return domain.Invoice{}, err
		}

		withheld := Compute(contracted.RatesForRegime(supplier.TaxRegime), valueCents, materialCents)
		values["supplier_cnpj"] = supplier.CNPJ
		values["service_code"] = contracted.Code
		values["value_cents"] = valueCents
		values["material_deduction_cents"] = materialCents
		values["issqn_cents"] = withheld.ISSQNCents
		values["inss_cents"] = withheld.INSSCents
		values["cs_cents"] = withheld.CSCents
		values["irrf_cents"] = withheld.IRRFCents
		values["net_amount_cents"] = NetAmount(valueCents, withheld)
	}

	if len(values) > 0 {
		values["updated_at"] = time.Now().UTC()
		affected, err := s.repo.Update(ctx, s.db, id, values)
		if err != nil {
			return domain.Invoice{}, err
		}
		if affected == 0 {
			return domain.Invoice{}, domain.ErrNotFound
		}
	}

	return s.GetByID(ctx, domain.GetInvoiceRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteInvoiceRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", domain.ErrInvalidDate
	}
	return value, nil
}
