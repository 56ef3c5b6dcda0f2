package entity

import "time"

// Şirket durumları.
const (
	CompanyActive    = "active"
	CompanySuspended = "suspended"
	CompanyInactive  = "inactive"
)

// Company sistemdeki bir kiracıyı (tenant) temsil eder.
type Company struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	TaxNumber string    `json:"tax_number" bson:"tax_number"` // VKN, 10 hane
	TaxOffice string    `json:"tax_office" bson:"tax_office"`
	Address   string    `json:"address" bson:"address"`
	Phone     string    `json:"phone" bson:"phone"`
	Email     string    `json:"email" bson:"email"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SaaS modülleri (company_modules tablosundaki CHECK ile aynı olmalı).
const (
	ModuleEmployees   = "employees"
	ModuleLeave       = "leave"
	ModulePayroll     = "payroll"
	ModuleRecruitment = "recruitment"
	ModulePerformance = "performance"
	ModuleTraining    = "training"
)

// AllModules bilinen tüm modüller.
var AllModules = []string{
	ModuleEmployees, ModuleLeave, ModulePayroll,
	ModuleRecruitment, ModulePerformance, ModuleTraining,
}

// IsValidModule modül adının bilinen bir modül olup olmadığını söyler.
func IsValidModule(name string) bool {
	for _, m := range AllModules {
		if m == name {
			return true
		}
	}
	return false
}

// CompanyModule bir şirkette etkinleştirilmiş SaaS modülü.
type CompanyModule struct {
	ID          string     `json:"id" bson:"_id"`
	CompanyID   string     `json:"company_id" bson:"company_id"`
	ModuleName  string     `json:"module_name" bson:"module_name"`
	IsActive    bool       `json:"is_active" bson:"is_active"`
	ActivatedAt time.Time  `json:"activated_at" bson:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"` // nil = süresiz
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// ActiveAt modülün verilen anda kullanılabilir olup olmadığını söyler.
func (m *CompanyModule) ActiveAt(t time.Time) bool {
	if m == nil || !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(t)
}
