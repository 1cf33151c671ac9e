package domain

import (
	"strings"
	"time"
)

// TaxRegime selects which rate set of a service applies to a supplier's
// invoices.
type TaxRegime string

const (
	TaxRegimeSimplesNacional TaxRegime = "SN"
	TaxRegimeNormal          TaxRegime = "N"
	TaxRegimeMEI             TaxRegime = "MEI"
)

// ParseTaxRegime normalizes user input into a known regime.
func ParseTaxRegime(value string) (TaxRegime, bool) {
	switch TaxRegime(normalizeRegime(value)) {
	case TaxRegimeSimplesNacional:
		return TaxRegimeSimplesNacional, true
	case TaxRegimeNormal:
		return TaxRegimeNormal, true
	case TaxRegimeMEI:
		return TaxRegimeMEI, true
	default:
		return "", false
	}
}

// Supplier is a service provider identified by its CNPJ.
// Name is stored upper-cased and must be unique.
type Supplier struct {
	CNPJ      string    `gorm:"column:cnpj;primaryKey;size:14" json:"cnpj"`
	Name      string    `gorm:"not null;uniqueIndex:uq_suppliers_name" json:"name"`
	City      string    `gorm:"not null;default:''" json:"city"`
	TaxRegime TaxRegime `gorm:"column:tax_regime;type:varchar(8);not null" json:"tax_regime"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Supplier) TableName() string { return "suppliers" }

func normalizeRegime(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// ValidCNPJ reports whether value is exactly 14 ASCII digits.
func ValidCNPJ(value string) bool {
	if len(value) != 14 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
