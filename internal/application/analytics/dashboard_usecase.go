// Package analytics İK panosunun özet sorgularını içerir.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

const dashboardActivities = 10 // panodaki son aktivite sayısı

// DashboardUseCase şirket özetini üretir.
//
// Veri kaynağı: AnalyticsRepository (salt okunur) ve ActivityRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	activityRepo  repository.ActivityRepository
	now           func() time.Time
}

// NewDashboardUseCase kurucu.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, activityRepo repository.ActivityRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, activityRepo: activityRepo, now: time.Now}
}

// GetSummary panoyu doldurur. Sorgular ayrı goroutine'lerde paralel çalışır;
// herhangi biri hata verirse özet dönmez.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()

	// ── Tarih aralıkları ──────────────────────────────────────────────────────
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	type countResult struct {
		n   int
		err error
	}
	type headcountResult struct {
		h   repository.Headcount
		err error
	}
	type payrollResult struct {
		t   repository.PayrollTotals
		err error
	}
	type departmentsResult struct {
		d   []repository.DepartmentHeadcount
		err error
	}
	type activitiesResult struct {
		a   []*entity.Activity
		err error
	}

	headcountCh := make(chan headcountResult, 1)
	pendingCh := make(chan countResult, 1)
	onLeaveCh := make(chan countResult, 1)
	jobsCh := make(chan countResult, 1)
	appsCh := make(chan countResult, 1)
	trainingsCh := make(chan countResult, 1)
	payrollCh := make(chan payrollResult, 1)
	deptCh := make(chan departmentsResult, 1)
	actCh := make(chan activitiesResult, 1)

	count := func(ch chan<- countResult, f func() (int, error)) {
		n, err := f()
		ch <- countResult{n, err}
	}

	go func() {
		h, err := uc.analyticsRepo.GetHeadcount(ctx, companyID)
		headcountCh <- headcountResult{h, err}
	}()
	go count(pendingCh, func() (int, error) { return uc.analyticsRepo.CountPendingLeaves(ctx, companyID) })
	go count(onLeaveCh, func() (int, error) { return uc.analyticsRepo.CountOnLeave(ctx, companyID, today) })
	go count(jobsCh, func() (int, error) { return uc.analyticsRepo.CountOpenJobs(ctx, companyID) })
	go count(appsCh, func() (int, error) { return uc.analyticsRepo.CountApplicationsSince(ctx, companyID, monthStart) })
	go count(trainingsCh, func() (int, error) { return uc.analyticsRepo.CountUpcomingTrainings(ctx, companyID, today) })
	go func() {
		t, err := uc.analyticsRepo.GetPayrollTotals(ctx, companyID, now.Year(), int(now.Month()))
		payrollCh <- payrollResult{t, err}
	}()
	go func() {
		d, err := uc.analyticsRepo.GetHeadcountByDepartment(ctx, companyID)
		deptCh <- departmentsResult{d, err}
	}()
	go func() {
		a, err := uc.activityRepo.ListRecent(ctx, companyID, dashboardActivities)
		actCh <- activitiesResult{a, err}
	}()

	headcount := <-headcountCh
	pending := <-pendingCh
	onLeave := <-onLeaveCh
	jobs := <-jobsCh
	apps := <-appsCh
	trainings := <-trainingsCh
	payroll := <-payrollCh
	depts := <-deptCh
	acts := <-actCh

	for _, c := range []struct {
		name string
		err  error
	}{
		{"personel sayıları", headcount.err},
		{"bekleyen izinler", pending.err},
		{"bugün izinde olanlar", onLeave.err},
		{"açık ilanlar", jobs.err},
		{"aylık başvurular", apps.err},
		{"yaklaşan eğitimler", trainings.err},
		{"bordro toplamları", payroll.err},
		{"departman dağılımı", depts.err},
		{"son aktiviteler", acts.err},
	} {
		if c.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", c.name, c.err)
		}
	}

	departments := make([]dto.DepartmentHeadcountDTO, 0, len(depts.d))
	for _, d := range depts.d {
		departments = append(departments, dto.DepartmentHeadcountDTO{
			DepartmentID:   d.DepartmentID,
			DepartmentName: d.DepartmentName,
			Count:          d.Count,
		})
	}
	activities := acts.a
	if activities == nil {
		activities = []*entity.Activity{}
	}

	return &dto.DashboardSummaryDTO{
		Headcount: dto.HeadcountDTO{
			Total:   headcount.h.Total,
			Active:  headcount.h.Active,
			OnLeave: headcount.h.OnLeave,
		},
		PendingLeaves:     pending.n,
		OnLeaveToday:      onLeave.n,
		OpenJobs:          jobs.n,
		ApplicationsMonth: apps.n,
		UpcomingTrainings: trainings.n,
		Payroll: dto.PayrollTotalsDTO{
			Count:        payroll.t.Count,
			Gross:        payroll.t.Gross.Round(2),
			Net:          payroll.t.Net.Round(2),
			EmployerCost: payroll.t.EmployerCost.Round(2),
		},
		Departments:      departments,
		RecentActivities: activities,
		PeriodLabel:      trtext.MonthLabel(now),
	}, nil
}
