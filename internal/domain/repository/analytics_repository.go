package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Headcount personel sayıları.
type Headcount struct {
	Total   int
	Active  int
	OnLeave int
}

// DepartmentHeadcount departman başına aktif personel sayısı.
type DepartmentHeadcount struct {
	DepartmentID   string // departmansız personel için boş
	DepartmentName string
	Count          int
}

// PayrollTotals bir dönemin bordro toplamları.
type PayrollTotals struct {
	Count        int
	Gross        decimal.Decimal
	Net          decimal.Decimal
	EmployerCost decimal.Decimal
}

// AnalyticsRepository dashboard için salt okunur sorgular.
type AnalyticsRepository interface {
	GetHeadcount(ctx context.Context, companyID string) (Headcount, error)
	CountPendingLeaves(ctx context.Context, companyID string) (int, error)
	// CountOnLeave verilen günü kapsayan onaylı izinlerdeki farklı personel sayısı.
	CountOnLeave(ctx context.Context, companyID string, day time.Time) (int, error)
	CountOpenJobs(ctx context.Context, companyID string) (int, error)
	CountApplicationsSince(ctx context.Context, companyID string, since time.Time) (int, error)
	GetPayrollTotals(ctx context.Context, companyID string, year, month int) (PayrollTotals, error)
	CountUpcomingTrainings(ctx context.Context, companyID string, from time.Time) (int, error)
	GetHeadcountByDepartment(ctx context.Context, companyID string) ([]DepartmentHeadcount, error)
}
