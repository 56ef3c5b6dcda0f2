package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bordro durumları.
const (
	PayrollDraft    = "draft"
	PayrollApproved = "approved"
	PayrollPaid     = "paid"
)

var payrollTransitions = map[string][]string{
	PayrollDraft:    {PayrollApproved},
	PayrollApproved: {PayrollPaid},
}

// Payroll bir personelin aylık bordrosu. Tüm tutarlar TL.
type Payroll struct {
	ID         string `json:"id" bson:"_id"`
	CompanyID  string `json:"company_id" bson:"company_id"`
	EmployeeID string `json:"employee_id" bson:"employee_id"`
	Year       int    `json:"year" bson:"year"`
	Month      int    `json:"month" bson:"month"`

	BaseSalary decimal.Decimal `json:"base_salary" bson:"base_salary"`
	Overtime   decimal.Decimal `json:"overtime" bson:"overtime"`
	Bonus      decimal.Decimal `json:"bonus" bson:"bonus"`
	Allowances decimal.Decimal `json:"allowances" bson:"allowances"`
	Gross      decimal.Decimal `json:"gross" bson:"gross"`

	SGKBase              decimal.Decimal `json:"sgk_base" bson:"sgk_base"`
	SGKEmployee          decimal.Decimal `json:"sgk_employee" bson:"sgk_employee"`
	UnemploymentEmployee decimal.Decimal `json:"unemployment_employee" bson:"unemployment_employee"`
	IncomeTaxBase        decimal.Decimal `json:"income_tax_base" bson:"income_tax_base"`
	CumulativeTaxBase    decimal.Decimal `json:"cumulative_tax_base" bson:"cumulative_tax_base"` // bu ay dahil
	IncomeTax            decimal.Decimal `json:"income_tax" bson:"income_tax"`
	StampTax             decimal.Decimal `json:"stamp_tax" bson:"stamp_tax"`
	IncomeTaxExemption   decimal.Decimal `json:"income_tax_exemption" bson:"income_tax_exemption"`
	StampTaxExemption    decimal.Decimal `json:"stamp_tax_exemption" bson:"stamp_tax_exemption"`
	OtherDeductions      decimal.Decimal `json:"other_deductions" bson:"other_deductions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions" bson:"total_deductions"`
	Net                  decimal.Decimal `json:"net" bson:"net"`

	SGKEmployer          decimal.Decimal `json:"sgk_employer" bson:"sgk_employer"`
	UnemploymentEmployer decimal.Decimal `json:"unemployment_employer" bson:"unemployment_employer"`
	EmployerCost         decimal.Decimal `json:"employer_cost" bson:"employer_cost"`

	Status     string     `json:"status" bson:"status"`
	Notes      string     `json:"notes" bson:"notes"`
	ApprovedBy *string    `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanTransitionTo durum geçişi kontrolü.
func (p *Payroll) CanTransitionTo(target string) bool {
	return allowed(payrollTransitions, p.Status, target)
}
