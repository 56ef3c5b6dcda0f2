package repository

import "time"

// Page listeleme için sayfalama. Limit <= 0 ise uygulama katmanı varsayılanı kullanır.
type Page struct {
	Limit  int
	Offset int
}

// EmployeeFilter personel listesi filtreleri.
type EmployeeFilter struct {
	Page
	CompanyID    string
	DepartmentID string
	Status       string
	Search       string // ad, soyad, e-posta veya sicil no içinde arar
}

// LeaveFilter izin listesi filtreleri. From/To aralıkla kesişen izinleri seçer.
type LeaveFilter struct {
	Page
	CompanyID  string
	EmployeeID string
	Status     string
	Type       string
	From       *time.Time
	To         *time.Time
}

// PerformanceFilter değerlendirme listesi filtreleri.
type PerformanceFilter struct {
	Page
	CompanyID  string
	EmployeeID string
	ReviewerID string
	Period     string
	Status     string
	// ExcludeDrafts taslak değerlendirmeleri listeden çıkarır.
	ExcludeDrafts bool
}

// PayrollFilter bordro listesi filtreleri. Sıfır Year/Month filtre uygulanmaz demektir.
type PayrollFilter struct {
	Page
	CompanyID  string
	EmployeeID string
	Year       int
	Month      int
	Status     string
}

// JobFilter ilan listesi filtreleri.
type JobFilter struct {
	Page
	CompanyID    string
	Status       string
	DepartmentID string
}

// ApplicationFilter başvuru listesi filtreleri.
type ApplicationFilter struct {
	Page
	CompanyID string
	JobID     string
	Stage     string
}

// TrainingFilter eğitim listesi filtreleri.
type TrainingFilter struct {
	Page
	CompanyID string
	Status    string
}

// NotificationFilter kullanıcı bildirimleri filtreleri.
type NotificationFilter struct {
	Page
	UserID     string
	UnreadOnly bool
}

// AuditFilter denetim kaydı filtreleri.
type AuditFilter struct {
	Page
	CompanyID  string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
}
