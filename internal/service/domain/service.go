package domain

import "context"

type ListServiceRequest struct {
	Description string
}

type ListServiceFilter struct {
	Description string
}

type CreateServiceRequest struct {
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	DebitAccount string   `json:"debit_account"`
	RateSN       *RateSet `json:"rate_sn"`
	RateN        *RateSet `json:"rate_n"`
	RateMEI      *RateSet `json:"rate_mei"`
	Note         *string  `json:"note"`
}

// UpdateServiceRequest carries a partial update keyed by Code. Nil fields
// are left untouched; a present rate set replaces the stored one wholesale.
type UpdateServiceRequest struct {
	Code         string   `json:"code"`
	Description  *string  `json:"description"`
	DebitAccount *string  `json:"debit_account"`
	RateSN       *RateSet `json:"rate_sn"`
	RateN        *RateSet `json:"rate_n"`
	RateMEI      *RateSet `json:"rate_mei"`
	Note         *string  `json:"note"`
}

type DeleteServiceRequest struct {
	Code string `json:"code"`
}

type GetServiceRequest struct {
	Code string
}

type ServiceRegistry interface {
	List(context.Context, ListServiceRequest) ([]Service, error)
	GetByCode(context.Context, GetServiceRequest) (Service, error)
	Create(context.Context, CreateServiceRequest) (Service, error)
	Update(context.Context, UpdateServiceRequest) (Service, error)
	Delete(context.Context, DeleteServiceRequest) error
}
