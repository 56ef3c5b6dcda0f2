package dto

import "github.com/shopspring/decimal"

// PerformanceRequest değerlendirme oluşturma/güncelleme girdisi.
type PerformanceRequest struct {
	EmployeeID    string `json:"employee_id"`
	Period        string `json:"period"`
	ReviewDate    string `json:"review_date"`
	Quality       int    `json:"quality"`
	Productivity  int    `json:"productivity"`
	Teamwork      int    `json:"teamwork"`
	Communication int    `json:"communication"`
	Leadership    int    `json:"leadership"`
	Strengths     string `json:"strengths"`
	Improvements  string `json:"improvements"`
	Comments      string `json:"comments"`
}

// PerformanceQuery liste filtreleri.
type PerformanceQuery struct {
	PageRequest
	EmployeeID string `query:"employee_id"`
	ReviewerID string `query:"reviewer_id"`
	Period     string `query:"period"`
	Status     string `query:"status"`
}

// PeriodScore dönem ortalaması.
type PeriodScore struct {
	Period  string          `json:"period"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// PerformanceSummary personelin dönemlere göre ortalamaları.
type PerformanceSummary struct {
	EmployeeID string          `json:"employee_id"`
	Overall    decimal.Decimal `json:"overall"`
	Reviews    int             `json:"reviews"`
	Periods    []PeriodScore   `json:"periods"`
}
