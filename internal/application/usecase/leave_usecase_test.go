package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

type leaveFixture struct {
	*world
	uc       *LeaveUseCase
	hr       Actor
	worker   Actor
	workerID string
}

func newLeaveFixture() *leaveFixture {
	w := newWorld()
	f := &leaveFixture{world: w, workerID: "e-1"}
	f.hr = w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	w.addUser("u-admin", "Ayşe Yılmaz", entity.RoleAdmin)
	f.worker = w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addEmployee(f.workerID, "u-1", date(2020, 1, 15), "50000")
	w.addEmployee("e-hr", "u-hr", date(2018, 5, 2), "90000")
	f.uc = NewLeaveUseCase(w.leaves, w.employees, w.settingUC, w.notifier, w.recorder)
	return f
}

// 2026-03-02 Pazartesi, 2026-03-06 Cuma.
func annualRequest(start, end string) dto.CreateLeaveRequest {
	return dto.CreateLeaveRequest{Type: entity.LeaveAnnual, StartDate: start, EndDate: end, Reason: "Tatil"}
}

func TestLeave_Create_KendiAdinaTalep(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	l, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-02", "2026-03-08"))
	require.NoError(t, err)

	assert.Equal(t, f.workerID, l.EmployeeID)
	assert.Equal(t, entity.LeavePending, l.Status)
	assert.Equal(t, 5, l.Days, "hafta sonu sayılmaz")

	assert.Len(t, f.notifications.forUser("u-hr"), 1)
	assert.Len(t, f.notifications.forUser("u-admin"), 1)
	assert.Empty(t, f.notifications.forUser("u-1"), "talep sahibi bildirim almaz")
	assert.Len(t, f.publisher.published, 2)

	require.Len(t, f.audit.list, 1)
	assert.Equal(t, entity.ActionCreate, f.audit.list[0].Action)
	require.Len(t, f.activities.list, 1)
	assert.Contains(t, f.activities.list[0].Description, "Zeynep Şahin")
}

func TestLeave_Create_CakisanTarih(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, f.worker, annualRequest("2026-03-05", "2026-03-10"))
	assert.ErrorIs(t, err, domain.ErrLeaveOverlap)
}

func TestLeave_Create_BaskasiAdinaYetkisiz(t *testing.T) {
	f := newLeaveFixture()
	req := annualRequest("2026-03-02", "2026-03-06")
	req.EmployeeID = "e-hr"

	_, err := f.uc.Create(context.Background(), f.worker, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeave_Create_GecersizAralik(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-06", "2026-03-02"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, f.worker, annualRequest("2026-03-07", "2026-03-08"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "yalnızca hafta sonu")
}

func TestLeave_Create_YetersizBakiye(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	newcomer := f.addUser("u-new", "Yeni Çalışan", entity.RoleEmployee)
	f.addEmployee("e-new", "u-new", date(2026, 1, 5), "40000")

	_, err := f.uc.Create(ctx, newcomer, annualRequest("2026-03-02", "2026-03-06"))
	assert.ErrorIs(t, err, domain.ErrInsufficientLeaveBalance)

	// Mazeret izni bakiyeden düşmez.
	sick := annualRequest("2026-03-02", "2026-03-06")
	sick.Type = entity.LeaveSick
	_, err = f.uc.Create(ctx, newcomer, sick)
	assert.NoError(t, err)
}

func TestLeave_Create_NegatifBakiyeAyari(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	newcomer := f.addUser("u-new", "Yeni Çalışan", entity.RoleEmployee)
	f.addEmployee("e-new", "u-new", date(2026, 1, 5), "40000")

	_, err := f.settingUC.Upsert(ctx, f.hr, entity.SettingLeaveAllowNegative, dto.UpsertSettingRequest{Value: "true"})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, newcomer, annualRequest("2026-03-02", "2026-03-06"))
	assert.NoError(t, err)
}

func TestLeave_Approve(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	l, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, f.worker, l.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "çalışan onaylayamaz")

	approved, err := f.uc.Approve(ctx, f.hr, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "u-hr", *approved.ReviewedBy)

	mine := f.notifications.forUser("u-1")
	require.Len(t, mine, 1)
	assert.Equal(t, "İzin talebiniz onaylandı", mine[0].Title)

	_, err = f.uc.Approve(ctx, f.hr, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLeave_Approve_KendiTalebiniDegerlendiremez(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	l, err := f.uc.Create(ctx, f.hr, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, f.hr, l.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLeave_Reject_GerekceZorunlu(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	l, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.uc.Reject(ctx, f.hr, l.ID, dto.RejectLeaveRequest{Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rejected, err := f.uc.Reject(ctx, f.hr, l.ID, dto.RejectLeaveRequest{Reason: "Yoğun dönem"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveRejected, rejected.Status)
	assert.Equal(t, "Yoğun dönem", rejected.RejectionReason)

	_, err = f.uc.Cancel(ctx, f.worker, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "reddedilen talep iptal edilemez")
}

func TestLeave_GetByID_BaskasininIzniGorunmez(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	l, err := f.uc.Create(ctx, f.hr, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)

	_, err = f.uc.GetByID(ctx, f.worker, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeave_Balance(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	approved, err := f.uc.Create(ctx, f.worker, annualRequest("2026-03-02", "2026-03-06"))
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, f.hr, approved.ID)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.worker, annualRequest("2026-04-06", "2026-04-07"))
	require.NoError(t, err)

	b, err := f.uc.Balance(ctx, f.worker, f.workerID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 6, b.ServiceYears)
	assert.Equal(t, 20, b.Entitlement)
	assert.Equal(t, 5, b.Used)
	assert.Equal(t, 2, b.Pending)
	assert.Equal(t, 15, b.Remaining)

	_, err = f.uc.Balance(ctx, f.worker, "e-hr", 2026)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
