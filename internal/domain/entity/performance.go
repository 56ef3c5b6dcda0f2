package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Değerlendirme durumları.
const (
	ReviewDraft        = "draft"
	ReviewSubmitted    = "submitted"
	ReviewAcknowledged = "acknowledged"
)

var reviewTransitions = map[string][]string{
	ReviewDraft:     {ReviewSubmitted},
	ReviewSubmitted: {ReviewAcknowledged},
}

// Performance bir personelin dönemsel performans değerlendirmesi.
// Beş kriter 1-5 arasında puanlanır; genel puan ortalamadır.
type Performance struct {
	ID             string          `json:"id" bson:"_id"`
	CompanyID      string          `json:"company_id" bson:"company_id"`
	EmployeeID     string          `json:"employee_id" bson:"employee_id"`
	ReviewerID     string          `json:"reviewer_id" bson:"reviewer_id"` // user id
	Period         string          `json:"period" bson:"period"`           // 2025-Q1, 2025-H1, 2025
	ReviewDate     time.Time       `json:"review_date" bson:"review_date"`
	Quality        int             `json:"quality" bson:"quality"`
	Productivity   int             `json:"productivity" bson:"productivity"`
	Teamwork       int             `json:"teamwork" bson:"teamwork"`
	Communication  int             `json:"communication" bson:"communication"`
	Leadership     int             `json:"leadership" bson:"leadership"`
	OverallScore   decimal.Decimal `json:"overall_score" bson:"overall_score"`
	Strengths      string          `json:"strengths" bson:"strengths"`
	Improvements   string          `json:"improvements" bson:"improvements"`
	Comments       string          `json:"comments" bson:"comments"`
	Status         string          `json:"status" bson:"status"`
	SubmittedAt    *time.Time      `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty" bson:"acknowledged_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}

// Scores kriter puanları sabit sırada.
func (p *Performance) Scores() []int {
	return []int{p.Quality, p.Productivity, p.Teamwork, p.Communication, p.Leadership}
}

// ComputeOverall kriter ortalamasını iki ondalığa yuvarlayarak OverallScore'a yazar.
func (p *Performance) ComputeOverall() {
	sum := 0
	scores := p.Scores()
	for _, s := range scores {
		sum += s
	}
	p.OverallScore = decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(scores)))).Round(2)
}

// CanTransitionTo durum geçişi kontrolü.
func (p *Performance) CanTransitionTo(target string) bool {
	return allowed(reviewTransitions, p.Status, target)
}
