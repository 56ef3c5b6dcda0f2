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

func newTrainingFixture(capacity int) (*world, *TrainingUseCase, Actor) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addEmployee("e-1", "u-1", date(2020, 1, 15), "50000")
	w.addEmployee("e-2", "", date(2021, 3, 1), "45000")
	w.trainings.byID["t-1"] = &entity.Training{
		ID: "t-1", CompanyID: w.companyID, Title: "İSG Temel Eğitimi",
		StartDate: date(2026, 11, 2), EndDate: date(2026, 11, 3),
		Capacity: capacity, Status: entity.TrainingPlanned,
	}
	return w, NewTrainingUseCase(w.trainings, w.employees, w.tx, w.notifier, w.recorder), hr
}

func TestTraining_Kontenjan(t *testing.T) {
	w, uc, hr := newTrainingFixture(1)
	ctx := context.Background()

	p, err := uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-1"})
	require.NoError(t, err)
	assert.Equal(t, "t-1", p.TrainingID)
	assert.Len(t, w.notifications.list, 1, "kullanıcısı olan personele bildirim gider")

	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, w.trainings.participants, 1)
	assert.Equal(t, 2, w.trainings.locks, "kapasite kontrolü kilitli kayıt üzerinden yapılır")

	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTraining_KilitliKayitDurumuEsasAlinir(t *testing.T) {
	w, uc, hr := newTrainingFixture(0)
	ctx := context.Background()

	_, err := uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-1"})
	require.NoError(t, err)

	// ilk okuma ile kilit arasında iptal edilen eğitim
	w.trainings.onLock = func(t *entity.Training) { t.Status = entity.TrainingCancelled }
	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, w.trainings.participants, 1)

	w.trainings.onLock = nil
	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	w.trainings.byID["t-1"].Status = entity.TrainingPlanned
	w.trainings.byID["t-1"].Capacity = 1
	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrConflict, "kapasite kilitli kayıttan okunur")

	_, err = uc.AddParticipant(ctx, hr, "yok", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTraining_BaskaSirketinPersoneli(t *testing.T) {
	w, uc, hr := newTrainingFixture(10)
	ctx := context.Background()

	w.employees.byID["e-x"] = &entity.Employee{ID: "e-x", CompanyID: "c-2", FirstName: "Ali", LastName: "Veli",
		Status: entity.EmployeeActive}
	_, err := uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	w.employees.byID["e-2"].Status = entity.EmployeeTerminated
	_, err = uc.AddParticipant(ctx, hr, "t-1", dto.AddParticipantRequest{EmployeeID: "e-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other := Actor{UserID: "u-9", CompanyID: "c-2", Role: entity.RoleHRManager}
	_, err = uc.AddParticipant(ctx, other, "t-1", dto.AddParticipantRequest{EmployeeID: "e-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "eğitim başka şirketten görünmez")
	assert.Empty(t, w.trainings.participants)
}
