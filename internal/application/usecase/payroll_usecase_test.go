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

func newPayrollFixture() (*world, *PayrollUseCase, Actor, Actor) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	worker := w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addEmployee("e-1", "u-1", date(2020, 1, 15), "50000")
	w.addEmployee("e-2", "", date(2018, 5, 2), "90000")
	w.addEmployee("e-3", "", date(2026, 5, 1), "40000") // dönemden sonra işe giriş
	uc := NewPayrollUseCase(w.payrolls, w.employees, w.tx, w.settingUC, w.notifier, w.recorder)
	return w, uc, hr, worker
}

func TestPayroll_Generate(t *testing.T) {
	w, uc, hr, _ := newPayrollFixture()
	ctx := context.Background()

	res, err := uc.Generate(ctx, hr, dto.GeneratePayrollRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, w.payrolls.byID, 2)

	for _, p := range w.payrolls.byID {
		assert.Equal(t, entity.PayrollDraft, p.Status)
		assert.True(t, p.Gross.Equal(p.BaseSalary), "ek ödeme yoksa brüt temel ücrete eşit")
		assert.True(t, p.Net.IsPositive())
		assert.True(t, p.Net.LessThan(p.Gross))
		assert.True(t, p.EmployerCost.GreaterThan(p.Gross))
	}

	again, err := uc.Generate(ctx, hr, dto.GeneratePayrollRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 3, again.Skipped)
	assert.Len(t, w.payrolls.byID, 2)
}

func TestPayroll_Generate_Dogrulama(t *testing.T) {
	_, uc, hr, worker := newPayrollFixture()
	ctx := context.Background()

	_, err := uc.Generate(ctx, worker, dto.GeneratePayrollRequest{Year: 2026, Month: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Generate(ctx, hr, dto.GeneratePayrollRequest{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPayroll_OnayVeOdeme(t *testing.T) {
	w, uc, hr, worker := newPayrollFixture()
	ctx := context.Background()
	_, err := uc.Generate(ctx, hr, dto.GeneratePayrollRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	var mine *entity.Payroll
	for _, p := range w.payrolls.byID {
		if p.EmployeeID == "e-1" {
			mine = p
		}
	}
	require.NotNil(t, mine)

	_, err = uc.MarkPaid(ctx, hr, mine.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "taslak doğrudan ödenemez")

	approved, err := uc.Approve(ctx, hr, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayrollApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	paid, err := uc.MarkPaid(ctx, hr, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayrollPaid, paid.Status)

	notes := w.notifications.forUser("u-1")
	require.Len(t, notes, 1)
	assert.Equal(t, "Maaşınız ödendi", notes[0].Title)
	assert.Contains(t, notes[0].Message, paid.Net.StringFixed(2))

	// Çalışan kendi bordrosunu görür, başkasınınkini görmez.
	got, err := uc.GetByID(ctx, worker, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)
	for _, p := range w.payrolls.byID {
		if p.EmployeeID == "e-2" {
			_, err = uc.GetByID(ctx, worker, p.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
	}

	err = uc.Delete(ctx, hr, mine.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "ödenmiş bordro silinemez")
}

func TestPayroll_Generate_MaasiOlmayanAtlanir(t *testing.T) {
	w, uc, hr, _ := newPayrollFixture()
	w.addEmployee("e-4", "", date(2021, 2, 1), "0").EmployeeNumber = "P004"

	res, err := uc.Generate(context.Background(), hr, dto.GeneratePayrollRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created, "diğer personelin bordrosu üretilir")
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, []string{"P004"}, res.MissingSalary)
	for _, p := range w.payrolls.byID {
		assert.NotEqual(t, "e-4", p.EmployeeID)
	}
}
