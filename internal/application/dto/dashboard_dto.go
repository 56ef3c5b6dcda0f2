package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// DashboardSummaryDTO GET /api/dashboard/summary yanıtı.
type DashboardSummaryDTO struct {
	Headcount HeadcountDTO `json:"headcount"`

	PendingLeaves     int `json:"pending_leaves"`
	OnLeaveToday      int `json:"on_leave_today"`
	OpenJobs          int `json:"open_jobs"`
	ApplicationsMonth int `json:"applications_this_month"`
	UpcomingTrainings int `json:"upcoming_trainings"`

	Payroll PayrollTotalsDTO `json:"payroll"`

	Departments      []DepartmentHeadcountDTO `json:"departments"`
	RecentActivities []*entity.Activity       `json:"recent_activities"`

	PeriodLabel string `json:"period_label"` // ör. "Ekim 2026"
}

// HeadcountDTO personel sayıları.
type HeadcountDTO struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	OnLeave int `json:"on_leave"`
}

// PayrollTotalsDTO cari ay bordro toplamları.
type PayrollTotalsDTO struct {
	Count        int             `json:"count"`
	Gross        decimal.Decimal `json:"gross"`
	Net          decimal.Decimal `json:"net"`
	EmployerCost decimal.Decimal `json:"employer_cost"`
}

// DepartmentHeadcountDTO departman bazında personel sayısı.
type DepartmentHeadcountDTO struct {
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name"`
	Count          int    `json:"count"`
}
