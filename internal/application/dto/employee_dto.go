package dto

import "github.com/shopspring/decimal"

// EmployeeRequest personel oluşturma/güncelleme girdisi. Tarihler YYYY-MM-DD.
type EmployeeRequest struct {
	EmployeeNumber        string          `json:"employee_number"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	NationalID            string          `json:"national_id"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	Position              string          `json:"position"`
	DepartmentID          *string         `json:"department_id"`
	UserID                *string         `json:"user_id"`
	HireDate              string          `json:"hire_date"`
	BirthDate             string          `json:"birth_date"`
	EmploymentType        string          `json:"employment_type"`
	Status                string          `json:"status"`
	Salary                decimal.Decimal `json:"salary"`
	IBAN                  string          `json:"iban"`
	Address               string          `json:"address"`
	EmergencyContactName  string          `json:"emergency_contact_name"`
	EmergencyContactPhone string          `json:"emergency_contact_phone"`
}

// TerminateEmployeeRequest işten çıkış girdisi.
type TerminateEmployeeRequest struct {
	TerminationDate string `json:"termination_date"`
	Reason          string `json:"reason"`
}

// EmployeeQuery personel listesi sorgu parametreleri.
type EmployeeQuery struct {
	PageRequest
	DepartmentID string `query:"department_id"`
	Status       string `query:"status"`
	Search       string `query:"search"`
}

// ImportRowError içe aktarmada hatalı satır.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult CSV içe aktarma özeti.
type ImportResult struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}
