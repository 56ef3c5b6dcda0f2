package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// İlan durumları.
const (
	JobDraft  = "draft"
	JobOpen   = "open"
	JobClosed = "closed"
)

// IsValidJobStatus ilan durumu doğrulaması.
func IsValidJobStatus(s string) bool {
	return s == JobDraft || s == JobOpen || s == JobClosed
}

// Job bir iş ilanı.
type Job struct {
	ID             string           `json:"id" bson:"_id"`
	CompanyID      string           `json:"company_id" bson:"company_id"`
	DepartmentID   *string          `json:"department_id,omitempty" bson:"department_id,omitempty"`
	Title          string           `json:"title" bson:"title"`
	Description    string           `json:"description" bson:"description"`
	Requirements   string           `json:"requirements" bson:"requirements"`
	Location       string           `json:"location" bson:"location"`
	EmploymentType string           `json:"employment_type" bson:"employment_type"`
	SalaryMin      *decimal.Decimal `json:"salary_min,omitempty" bson:"salary_min,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salary_max,omitempty" bson:"salary_max,omitempty"`
	Status         string           `json:"status" bson:"status"`
	ClosesAt       *time.Time       `json:"closes_at,omitempty" bson:"closes_at,omitempty"`
	CreatedBy      string           `json:"created_by" bson:"created_by"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" bson:"updated_at"`
}

// AcceptsApplications ilan açık ve kapanış tarihi geçmemişse true.
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobOpen {
		return false
	}
	return j.ClosesAt == nil || j.ClosesAt.After(now)
}

// Başvuru aşamaları.
const (
	StageNew       = "new"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
	StageWithdrawn = "withdrawn"
)

var stageOrder = []string{StageNew, StageScreening, StageInterview, StageOffer, StageHired}

// IsValidStage aşama doğrulaması.
func IsValidStage(s string) bool {
	if s == StageRejected || s == StageWithdrawn {
		return true
	}
	for _, st := range stageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// IsFinalStage hired, rejected ve withdrawn son aşamalardır.
func IsFinalStage(s string) bool {
	return s == StageHired || s == StageRejected || s == StageWithdrawn
}

// JobApplication bir ilana yapılan aday başvurusu.
type JobApplication struct {
	ID          string     `json:"id" bson:"_id"`
	CompanyID   string     `json:"company_id" bson:"company_id"`
	JobID       string     `json:"job_id" bson:"job_id"`
	FirstName   string     `json:"first_name" bson:"first_name"`
	LastName    string     `json:"last_name" bson:"last_name"`
	Email       string     `json:"email" bson:"email"`
	Phone       string     `json:"phone" bson:"phone"`
	CoverLetter string     `json:"cover_letter" bson:"cover_letter"`
	ResumeText  string     `json:"resume_text" bson:"resume_text"`
	CVKey       string     `json:"cv_key,omitempty" bson:"cv_key"` // nesne deposundaki anahtar
	Stage       string     `json:"stage" bson:"stage"`
	Notes       string     `json:"notes" bson:"notes"`
	AIScore     *int       `json:"ai_score,omitempty" bson:"ai_score,omitempty"`
	AISummary   string     `json:"ai_summary,omitempty" bson:"ai_summary"`
	AIStrengths []string   `json:"ai_strengths,omitempty" bson:"ai_strengths"`
	AIConcerns  []string   `json:"ai_concerns,omitempty" bson:"ai_concerns"`
	EvaluatedAt *time.Time `json:"evaluated_at,omitempty" bson:"evaluated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanMoveTo aşama geçiş kuralı: ileri yönde bir adım, ya da son olmayan her
// aşamadan rejected/withdrawn.
func (a *JobApplication) CanMoveTo(target string) bool {
	if IsFinalStage(a.Stage) {
		return false
	}
	if target == StageRejected || target == StageWithdrawn {
		return true
	}
	for i, st := range stageOrder {
		if st == a.Stage {
			return i+1 < len(stageOrder) && stageOrder[i+1] == target
		}
	}
	return false
}
