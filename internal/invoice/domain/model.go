package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice records a supplier service invoice together with the withholding
// amounts computed at registration time. All monetary values are in cents.
type Invoice struct {
	ID                     snowflake.ID `gorm:"primaryKey" json:"id"`
	SupplierCNPJ           string       `gorm:"column:supplier_cnpj;size:14;not null;index" json:"supplier_cnpj"`
	ServiceCode            string       `gorm:"column:service_code;not null;index" json:"service_code"`
	InvoiceNumber          string       `gorm:"column:invoice_number;not null" json:"invoice_number"`
	EntryDate              string       `gorm:"column:entry_date;type:date;not null" json:"entry_date"`
	IssueDate              string       `gorm:"column:issue_date;type:date;not null" json:"issue_date"`
	DueDate                string       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	ValueCents             int64        `gorm:"column:value_cents;not null" json:"value_cents"`
	MaterialDeductionCents int64        `gorm:"column:material_deduction_cents;not null;default:0" json:"material_deduction_cents"`
	ISSQNCents             int64        `gorm:"column:issqn_cents;not null;default:0" json:"issqn_cents"`
	INSSCents              int64        `gorm:"column:inss_cents;not null;default:0" json:"inss_cents"`
	CSCents                int64        `gorm:"column:cs_cents;not null;default:0" json:"cs_cents"`
	IRRFCents              int64        `gorm:"column:irrf_cents;not null;default:0" json:"irrf_cents"`
	NetAmountCents         int64        `gorm:"column:net_amount_cents;not null" json:"net_amount_cents"`
	CreatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
