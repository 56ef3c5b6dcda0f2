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

func strPtr(s string) *string { return &s }

func TestDepartment_UstDepartmanDongusu(t *testing.T) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	uc := NewDepartmentUseCase(w.departments, w.employees, w.recorder)
	ctx := context.Background()

	a, err := uc.Create(ctx, hr, dto.DepartmentRequest{Name: "Genel Müdürlük"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, hr, dto.DepartmentRequest{Name: "Bilgi İşlem", ParentID: strPtr(a.ID)})
	require.NoError(t, err)
	c, err := uc.Create(ctx, hr, dto.DepartmentRequest{Name: "Yazılım", ParentID: strPtr(b.ID)})
	require.NoError(t, err)

	_, err = uc.Update(ctx, hr, a.ID, dto.DepartmentRequest{Name: "Genel Müdürlük", ParentID: strPtr(c.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "A -> C -> B -> A döngüsü")

	_, err = uc.Update(ctx, hr, b.ID, dto.DepartmentRequest{Name: "Bilgi İşlem", ParentID: strPtr(b.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, hr, dto.DepartmentRequest{Name: "Satış", ParentID: strPtr("yok")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Nil(t, w.departments.byID[a.ID].ParentID, "hatalı güncelleme kaydedilmemeli")

	moved, err := uc.Update(ctx, hr, c.ID, dto.DepartmentRequest{Name: "Yazılım", ParentID: strPtr(a.ID)})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)
}

func TestDepartment_PersoneliOlanSilinemez(t *testing.T) {
	w := newWorld()
	hr := w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	uc := NewDepartmentUseCase(w.departments, w.employees, w.recorder)
	ctx := context.Background()

	d, err := uc.Create(ctx, hr, dto.DepartmentRequest{Name: "Muhasebe"})
	require.NoError(t, err)
	e := w.addEmployee("e-1", "", date(2020, 1, 1), "50000")
	e.DepartmentID = strPtr(d.ID)

	err = uc.Delete(ctx, hr, d.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, w.departments.byID, d.ID)

	e.DepartmentID = nil
	require.NoError(t, uc.Delete(ctx, hr, d.ID))
	assert.NotContains(t, w.departments.byID, d.ID)

	assert.ErrorIs(t, uc.Delete(ctx, hr, d.ID), domain.ErrNotFound)
}
