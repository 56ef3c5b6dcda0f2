package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

func newPerformanceFixture() (*world, *PerformanceUseCase, Actor, Actor) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	worker := w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addEmployee("e-1", "u-1", date(2020, 1, 15), "50000")
	return w, NewPerformanceUseCase(w.performance, w.employees, w.notifier, w.recorder), hr, worker
}

func review(period string, q, p, t, c, l int) dto.PerformanceRequest {
	return dto.PerformanceRequest{EmployeeID: "e-1", Period: period,
		Quality: q, Productivity: p, Teamwork: t, Communication: c, Leadership: l}
}

func TestPerformance_GenelPuanOrtalama(t *testing.T) {
	_, uc, hr, _ := newPerformanceFixture()
	ctx := context.Background()

	r, err := uc.Create(ctx, hr, review("2026-q1", 5, 4, 4, 3, 5))
	require.NoError(t, err)
	assert.Equal(t, "2026-Q1", r.Period)
	assert.Equal(t, entity.ReviewDraft, r.Status)
	assert.Equal(t, "4.20", r.OverallScore.StringFixed(2))

	r, err = uc.Update(ctx, hr, r.ID, review("2026-Q1", 1, 2, 2, 2, 2))
	require.NoError(t, err)
	assert.True(t, r.OverallScore.Equal(decimal.RequireFromString("1.8")))

	_, err = uc.Create(ctx, hr, review("2026-Q1", 6, 4, 4, 4, 4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, hr, review("2026-Q5", 4, 4, 4, 4, 4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPerformance_OzetIkiOndalik(t *testing.T) {
	_, uc, hr, worker := newPerformanceFixture()
	ctx := context.Background()

	for _, in := range []dto.PerformanceRequest{
		review("2026-Q1", 5, 4, 4, 3, 5), // 4.2
		review("2026-Q1", 5, 4, 4, 3, 5), // 4.2
		review("2026-Q1", 3, 3, 4, 3, 4), // 3.4
	} {
		r, err := uc.Create(ctx, hr, in)
		require.NoError(t, err)
		_, err = uc.Submit(ctx, hr, r.ID)
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, hr, review("2026-Q2", 1, 1, 1, 1, 1)) // taslak, özete girmez
	require.NoError(t, err)

	sum, err := uc.Summary(ctx, worker, "e-1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Reviews)
	require.Len(t, sum.Periods, 1)
	assert.Equal(t, "3.93", sum.Periods[0].Average.String())
	assert.Equal(t, "3.93", sum.Overall.String())
}

func TestPerformance_YalnizcaTaslakDegistirilebilir(t *testing.T) {
	w, uc, hr, worker := newPerformanceFixture()
	ctx := context.Background()

	r, err := uc.Create(ctx, hr, review("2026", 4, 4, 4, 4, 4))
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, worker, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "taslak personele görünmez")

	_, err = uc.Submit(ctx, hr, r.ID)
	require.NoError(t, err)
	assert.Len(t, w.notifications.list, 1)

	_, err = uc.Update(ctx, hr, r.ID, review("2026", 5, 5, 5, 5, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, uc.Delete(ctx, hr, r.ID), domain.ErrInvalidTransition)
	_, err = uc.Submit(ctx, hr, r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := uc.Acknowledge(ctx, worker, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewAcknowledged, got.Status)
	assert.Equal(t, "4.00", w.performance.byID[r.ID].OverallScore.StringFixed(2))
}
