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

func newEmployeeFixture() (*world, *EmployeeUseCase, Actor, Actor) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	worker := w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addEmployee("e-1", "u-1", date(2020, 1, 15), "50000")
	w.addEmployee("e-2", "", date(2022, 6, 1), "45000")
	return w, NewEmployeeUseCase(w.employees, w.departments, w.users, nil, w.recorder), hr, worker
}

func TestEmployee_Terminate(t *testing.T) {
	w, uc, hr, _ := newEmployeeFixture()
	ctx := context.Background()

	_, err := uc.Terminate(ctx, hr, "e-2", dto.TerminateEmployeeRequest{TerminationDate: "2022-05-31"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "çıkış işe girişten önce olamaz")
	assert.Equal(t, entity.EmployeeActive, w.employees.byID["e-2"].Status)

	e, err := uc.Terminate(ctx, hr, "e-2", dto.TerminateEmployeeRequest{TerminationDate: "2026-09-30", Reason: "istifa"})
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeTerminated, e.Status)
	stored := w.employees.byID["e-2"]
	assert.Equal(t, entity.EmployeeTerminated, stored.Status)
	require.NotNil(t, stored.TerminationDate)
	assert.Equal(t, date(2026, 9, 30), *stored.TerminationDate)

	_, err = uc.Terminate(ctx, hr, "e-2", dto.TerminateEmployeeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Terminate(ctx, hr, "yok", dto.TerminateEmployeeRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployee_PersonelYalnizcaKendiKaydiniGorur(t *testing.T) {
	_, uc, hr, worker := newEmployeeFixture()
	ctx := context.Background()

	me, err := uc.Me(ctx, worker)
	require.NoError(t, err)
	assert.Equal(t, "e-1", me.ID)

	own, err := uc.GetByID(ctx, worker, "e-1")
	require.NoError(t, err)
	assert.Equal(t, "e-1", own.ID)

	_, err = uc.GetByID(ctx, worker, "e-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other, err := uc.GetByID(ctx, hr, "e-2")
	require.NoError(t, err)
	assert.Equal(t, "e-2", other.ID)

	_, err = uc.Me(ctx, hr)
	assert.ErrorIs(t, err, domain.ErrNotFound, "personel kaydı olmayan kullanıcı")
}
