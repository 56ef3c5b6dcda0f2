package dto

import "github.com/shopspring/decimal"

// CreatePayrollRequest bordro girdisi. BaseSalary nil ise personel maaşı kullanılır.
type CreatePayrollRequest struct {
	EmployeeID      string           `json:"employee_id"`
	Year            int              `json:"year"`
	Month           int              `json:"month"`
	BaseSalary      *decimal.Decimal `json:"base_salary"`
	Overtime        decimal.Decimal  `json:"overtime"`
	Bonus           decimal.Decimal  `json:"bonus"`
	Allowances      decimal.Decimal  `json:"allowances"`
	OtherDeductions decimal.Decimal  `json:"other_deductions"`
	Notes           string           `json:"notes"`
}

// UpdatePayrollRequest taslak bordro güncellemesi; bordro yeniden hesaplanır.
type UpdatePayrollRequest struct {
	BaseSalary      *decimal.Decimal `json:"base_salary"`
	Overtime        *decimal.Decimal `json:"overtime"`
	Bonus           *decimal.Decimal `json:"bonus"`
	Allowances      *decimal.Decimal `json:"allowances"`
	OtherDeductions *decimal.Decimal `json:"other_deductions"`
	Notes           *string          `json:"notes"`
}

// GeneratePayrollRequest dönem için toplu taslak üretimi.
type GeneratePayrollRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// GeneratePayrollResult toplu üretim özeti.
type GeneratePayrollResult struct {
	Year    int `json:"year"`
	Month   int `json:"month"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	// MissingSalary maaşı tanımsız olduğu için atlanan personelin sicil numaraları.
	MissingSalary []string `json:"missing_salary,omitempty"`
}

// PayrollQuery liste filtreleri.
type PayrollQuery struct {
	PageRequest
	EmployeeID string `query:"employee_id"`
	Year       int    `query:"year"`
	Month      int    `query:"month"`
	Status     string `query:"status"`
}

// PayrollExport dışa aktarılan dosya.
type PayrollExport struct {
	FileName    string
	ContentType string
	Content     []byte
	Digest      string // XML için kanonik SHA-256 (base64)
}
