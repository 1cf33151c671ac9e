package domain

import "context"

type ListSupplierRequest struct {
	Name      string
	City      string
	TaxRegime string
}

type ListSupplierFilter struct {
	Name      string
	City      string
	TaxRegime TaxRegime
}

type CreateSupplierRequest struct {
	CNPJ      string  `json:"cnpj"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	TaxRegime string  `json:"tax_regime"`
	Note      *string `json:"note"`
}

// UpdateSupplierRequest carries a partial update keyed by CNPJ. Nil fields
// are left untouched.
type UpdateSupplierRequest struct {
	CNPJ      string  `json:"cnpj"`
	Name      *string `json:"name"`
	City      *string `json:"city"`
	TaxRegime *string `json:"tax_regime"`
	Note      *string `json:"note"`
}

type DeleteSupplierRequest struct {
	CNPJ string `json:"cnpj"`
}

type GetSupplierRequest struct {
	CNPJ string
}

type Service interface {
	List(context.Context, ListSupplierRequest) ([]Supplier, error)
	GetByCNPJ(context.Context, GetSupplierRequest) (Supplier, error)
	Create(context.Context, CreateSupplierRequest) (Supplier, error)
	Update(context.Context, UpdateSupplierRequest) (Supplier, error)
	Delete(context.Context, DeleteSupplierRequest) error
}
