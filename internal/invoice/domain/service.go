package domain

import "context"

type ListInvoiceRequest struct {
	SupplierCNPJ string
	ServiceCode  string
	EntryFrom    string
	EntryTo      string
}

type ListInvoiceFilter struct {
	SupplierCNPJ string
	ServiceCode  string
	EntryFrom    string
	EntryTo      string
}

type CreateInvoiceRequest struct {
	SupplierCNPJ           string `json:"supplier_cnpj"`
	ServiceCode            string `json:"service_code"`
	InvoiceNumber          string `json:"invoice_number"`
	EntryDate              string `json:"entry_date"`
	IssueDate              string `json:"issue_date"`
	DueDate                string `json:"due_date"`
	ValueCents             int64  `json:"value_cents"`
	MaterialDeductionCents int64  `json:"material_deduction_cents"`
}

// UpdateInvoiceRequest carries a partial update keyed by ID. Changing the
// supplier, service, value or material deduction recomputes the withheld
// amounts and net.
type UpdateInvoiceRequest struct {
	ID                     string  `json:"id"`
	SupplierCNPJ           *string `json:"supplier_cnpj"`
	ServiceCode            *string `json:"service_code"`
	InvoiceNumber          *string `json:"invoice_number"`
	EntryDate              *string `json:"entry_date"`
	IssueDate              *string `json:"issue_date"`
	DueDate                *string `json:"due_date"`
	ValueCents             *int64  `json:"value_cents"`
	MaterialDeductionCents *int64  `json:"material_deduction_cents"`
}

type DeleteInvoiceRequest struct {
	ID string `json:"id"`
}

type GetInvoiceRequest struct {
	ID string
}

type Service interface {
	List(context.Context, ListInvoiceRequest) ([]Invoice, error)
	GetByID(context.Context, GetInvoiceRequest) (Invoice, error)
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	Update(context.Context, UpdateInvoiceRequest) (Invoice, error)
	Delete(context.Context, DeleteInvoiceRequest) error
}
