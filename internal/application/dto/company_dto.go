package dto

import "time"

// CreateCompanyRequest şirket oluşturma girdisi.
type CreateCompanyRequest struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
	TaxOffice string `json:"tax_office"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// UpdateCompanyRequest kısmi güncelleme.
type UpdateCompanyRequest struct {
	Name      *string `json:"name"`
	TaxOffice *string `json:"tax_office"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Status    *string `json:"status"`
}

// ModuleToggleRequest modül açma/kapama. ExpiresAt nil ise süresizdir.
type ModuleToggleRequest struct {
	ModuleName string     `json:"module_name"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

// ModuleStatus bir modülün şirketteki durumu.
type ModuleStatus struct {
	ModuleName string     `json:"module_name"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
