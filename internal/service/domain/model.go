package domain

import (
	"time"

	supplierdomain "github.com/artmafra/notas/internal/supplier/domain"
	"gorm.io/datatypes"
)

// RateSet holds withholding rates in basis points (1% = 100 bp). A nil rate
// means the tax does not apply under that regime.
type RateSet struct {
	ISSQN *int64 `json:"issqn,omitempty"`
	INSS  *int64 `json:"inss,omitempty"`
	CS    *int64 `json:"cs,omitempty"`
	IRRF  *int64 `json:"irrf,omitempty"`
}

// Valid reports whether every present rate is within 0..10000 bp.
func (r RateSet) Valid() bool {
	for _, rate := range []*int64{r.ISSQN, r.INSS, r.CS, r.IRRF} {
		if rate != nil && (*rate < 0 || *rate > 10000) {
			return false
		}
	}
	return true
}

// Service is a contracted service type carrying one rate set per tax regime.
type Service struct {
	Code         string                         `gorm:"primaryKey" json:"code"`
	Description  string                         `gorm:"not null" json:"description"`
	DebitAccount string                         `gorm:"column:debit_account;not null;default:''" json:"debit_account"`
	RateSN       datatypes.JSONType[RateSet]    `gorm:"column:rate_sn;type:jsonb" json:"rate_sn"`
	RateN        datatypes.JSONType[RateSet]    `gorm:"column:rate_n;type:jsonb" json:"rate_n"`
	RateMEI      datatypes.JSONType[RateSet]    `gorm:"column:rate_mei;type:jsonb" json:"rate_mei"`
	Note         *string                        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time                      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

// RatesForRegime returns the rate set applicable to the given tax regime.
func (s Service) RatesForRegime(regime supplierdomain.TaxRegime) RateSet {
	switch regime {
	case supplierdomain.TaxRegimeSimplesNacional:
		return s.RateSN.Data()
	case supplierdomain.TaxRegimeNormal:
		return s.RateN.Data()
	case supplierdomain.TaxRegimeMEI:
		return s.RateMEI.Data()
	default:
		return RateSet{}
	}
}
