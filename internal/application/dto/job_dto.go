package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobRequest ilan oluşturma/güncelleme girdisi.
type JobRequest struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Requirements   string           `json:"requirements"`
	DepartmentID   *string          `json:"department_id"`
	Location       string           `json:"location"`
	EmploymentType string           `json:"employment_type"`
	SalaryMin      *decimal.Decimal `json:"salary_min"`
	SalaryMax      *decimal.Decimal `json:"salary_max"`
	Status         string           `json:"status"`
	ClosesAt       *time.Time       `json:"closes_at"`
}

// JobQuery ilan listesi filtreleri.
type JobQuery struct {
	PageRequest
	Status       string `query:"status"`
	DepartmentID string `query:"department_id"`
}

// PublicJobResponse herkese açık ilan görünümü.
type PublicJobResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Requirements   string           `json:"requirements"`
	Location       string           `json:"location"`
	EmploymentType string           `json:"employment_type"`
	SalaryMin      *decimal.Decimal `json:"salary_min,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salary_max,omitempty"`
	ClosesAt       *time.Time       `json:"closes_at,omitempty"`
}

// ApplyRequest aday başvurusu.
type ApplyRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"cover_letter"`
	ResumeText  string `json:"resume_text"`
	CVKey       string `json:"cv_key"`
}

// ApplyResponse başvuru alındı bilgisi.
type ApplyResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// CVUploadRequest yüklenecek CV dosyası bilgisi.
type CVUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// CVUploadResponse imzalı yükleme adresi.
type CVUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateApplicationRequest aşama ve not güncellemesi.
type UpdateApplicationRequest struct {
	Stage *string `json:"stage"`
	Notes *string `json:"notes"`
}

// ApplicationQuery başvuru listesi filtreleri.
type ApplicationQuery struct {
	PageRequest
	JobID string `query:"job_id"`
	Stage string `query:"stage"`
}

// CandidateEvaluation LLM değerlendirme sonucu.
type CandidateEvaluation struct {
	Score     int      `json:"score"` // 0-100
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
	Provider  string   `json:"provider"`
}
