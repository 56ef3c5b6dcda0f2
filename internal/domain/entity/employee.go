package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Çalışma tipleri.
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"
)

// Personel durumları.
const (
	EmployeeActive     = "active"
	EmployeeOnLeave    = "on_leave"
	EmployeeTerminated = "terminated"
)

// IsValidEmploymentType çalışma tipi doğrulaması.
func IsValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}

// IsValidEmployeeStatus personel durumu doğrulaması.
func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeActive, EmployeeOnLeave, EmployeeTerminated:
		return true
	}
	return false
}

// Employee şirket personeli.
type Employee struct {
	ID                    string          `json:"id" bson:"_id"`
	CompanyID             string          `json:"company_id" bson:"company_id"`
	DepartmentID          *string         `json:"department_id,omitempty" bson:"department_id,omitempty"`
	UserID                *string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	EmployeeNumber        string          `json:"employee_number" bson:"employee_number"`
	FirstName             string          `json:"first_name" bson:"first_name"`
	LastName              string          `json:"last_name" bson:"last_name"`
	NationalID            string          `json:"national_id" bson:"national_id"` // TC Kimlik No
	Email                 string          `json:"email" bson:"email"`
	Phone                 string          `json:"phone" bson:"phone"`
	Position              string          `json:"position" bson:"position"`
	HireDate              time.Time       `json:"hire_date" bson:"hire_date"`
	BirthDate             *time.Time      `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	EmploymentType        string          `json:"employment_type" bson:"employment_type"`
	Status                string          `json:"status" bson:"status"`
	Salary                decimal.Decimal `json:"salary" bson:"salary"` // aylık brüt
	IBAN                  string          `json:"iban" bson:"iban"`
	Address               string          `json:"address" bson:"address"`
	EmergencyContactName  string          `json:"emergency_contact_name" bson:"emergency_contact_name"`
	EmergencyContactPhone string          `json:"emergency_contact_phone" bson:"emergency_contact_phone"`
	TerminationDate       *time.Time      `json:"termination_date,omitempty" bson:"termination_date,omitempty"`
	CreatedAt             time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" bson:"updated_at"`
}

// FullName "Ad Soyad".
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
