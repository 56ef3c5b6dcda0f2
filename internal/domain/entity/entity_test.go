package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ── Yetkiler ────────────────────────────────────────────────────────────────

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleSuperAdmin, PermCompaniesManage))
	assert.False(t, HasPermission(RoleAdmin, PermCompaniesManage))
	assert.True(t, HasPermission(RoleAdmin, PermAuditRead))
	assert.True(t, HasPermission(RoleHRManager, PermPayrollWrite))
	assert.False(t, HasPermission(RoleHRManager, PermSettingsWrite))
	assert.True(t, HasPermission(RoleManager, PermLeavesApprove))
	assert.False(t, HasPermission(RoleManager, PermPayrollRead))
	assert.True(t, HasPermission(RoleEmployee, PermLeavesWrite))
	assert.False(t, HasPermission(RoleEmployee, PermEmployeesRead))
	assert.False(t, HasPermission("bilinmeyen", PermLeavesRead))
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{RoleSuperAdmin, RoleAdmin, RoleHRManager, RoleManager, RoleEmployee} {
		assert.True(t, IsValidRole(r), r)
	}
	assert.False(t, IsValidRole("root"))
}

// ── Durum makineleri ────────────────────────────────────────────────────────

func TestLeave_CanTransitionTo(t *testing.T) {
	l := &Leave{Status: LeavePending}
	assert.True(t, l.CanTransitionTo(LeaveApproved))
	assert.True(t, l.CanTransitionTo(LeaveRejected))
	assert.True(t, l.CanTransitionTo(LeaveCancelled))

	l.Status = LeaveApproved
	assert.True(t, l.CanTransitionTo(LeaveCancelled))
	assert.False(t, l.CanTransitionTo(LeaveRejected))

	l.Status = LeaveRejected
	assert.False(t, l.CanTransitionTo(LeaveApproved))
}

func TestPayroll_CanTransitionTo(t *testing.T) {
	p := &Payroll{Status: PayrollDraft}
	assert.True(t, p.CanTransitionTo(PayrollApproved))
	assert.False(t, p.CanTransitionTo(PayrollPaid))
	p.Status = PayrollApproved
	assert.True(t, p.CanTransitionTo(PayrollPaid))
	p.Status = PayrollPaid
	assert.False(t, p.CanTransitionTo(PayrollDraft))
}

func TestJobApplication_CanMoveTo(t *testing.T) {
	a := &JobApplication{Stage: StageNew}
	assert.True(t, a.CanMoveTo(StageScreening))
	assert.False(t, a.CanMoveTo(StageOffer), "aşama atlanamaz")
	assert.True(t, a.CanMoveTo(StageRejected))
	assert.True(t, a.CanMoveTo(StageWithdrawn))

	a.Stage = StageOffer
	assert.True(t, a.CanMoveTo(StageHired))

	a.Stage = StageHired
	assert.False(t, a.CanMoveTo(StageRejected), "son aşamadan çıkılamaz")
}

func TestPerformance_ComputeOverall(t *testing.T) {
	p := &Performance{Quality: 5, Productivity: 4, Teamwork: 4, Communication: 3, Leadership: 5}
	p.ComputeOverall()
	assert.Equal(t, "4.2", p.OverallScore.String())

	p = &Performance{Quality: 1, Productivity: 2, Teamwork: 2, Communication: 2, Leadership: 2}
	p.ComputeOverall()
	assert.Equal(t, "1.8", p.OverallScore.String())

	assert.True(t, (&Performance{Status: ReviewDraft}).CanTransitionTo(ReviewSubmitted))
	assert.False(t, (&Performance{Status: ReviewDraft}).CanTransitionTo(ReviewAcknowledged))
}

// ── Diğer ───────────────────────────────────────────────────────────────────

func TestCompanyModule_ActiveAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&CompanyModule{IsActive: true}).ActiveAt(now))
	assert.True(t, (&CompanyModule{IsActive: true, ExpiresAt: &future}).ActiveAt(now))
	assert.False(t, (&CompanyModule{IsActive: true, ExpiresAt: &past}).ActiveAt(now))
	assert.False(t, (&CompanyModule{IsActive: false}).ActiveAt(now))
	assert.False(t, (*CompanyModule)(nil).ActiveAt(now))
}

func TestJob_AcceptsApplications(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	assert.True(t, (&Job{Status: JobOpen}).AcceptsApplications(now))
	assert.False(t, (&Job{Status: JobDraft}).AcceptsApplications(now))
	assert.False(t, (&Job{Status: JobOpen, ClosesAt: &past}).AcceptsApplications(now))
}

func TestDefaultSetting(t *testing.T) {
	s, ok := DefaultSetting(SettingMinimumWage)
	assert.True(t, ok)
	assert.Equal(t, SettingCategoryPayroll, s.Category)

	_, ok = DefaultSetting("yok")
	assert.False(t, ok)
}
