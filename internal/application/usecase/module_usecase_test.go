package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

func TestModuleService_Toggle(t *testing.T) {
	w := newWorld()
	ctx := context.Background()
	root := w.addUser("u-root", "Sistem Yöneticisi", entity.RoleSuperAdmin)
	admin := w.addUser("u-admin", "Ayşe Yılmaz", entity.RoleAdmin)
	svc := NewModuleService(w.companies, w.recorder)

	_, err := svc.Toggle(ctx, admin, w.companyID, dto.ModuleToggleRequest{ModuleName: entity.ModulePayroll, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrForbidden, "şirket yöneticisi modül açamaz")

	_, err = svc.Toggle(ctx, root, w.companyID, dto.ModuleToggleRequest{ModuleName: "muhasebe", IsActive: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	past := time.Now().Add(-time.Hour)
	_, err = svc.Toggle(ctx, root, w.companyID, dto.ModuleToggleRequest{ModuleName: entity.ModulePayroll, IsActive: true, ExpiresAt: &past})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Toggle(ctx, root, "yok", dto.ModuleToggleRequest{ModuleName: entity.ModulePayroll, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.Toggle(ctx, root, w.companyID, dto.ModuleToggleRequest{ModuleName: entity.ModulePayroll, IsActive: true})
	require.NoError(t, err)
	require.Len(t, list, len(entity.AllModules))
	for _, st := range list {
		assert.Equal(t, st.ModuleName == entity.ModulePayroll, st.IsActive, st.ModuleName)
	}

	ok, err := svc.HasActiveModule(ctx, w.companyID, entity.ModulePayroll)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotEmpty(t, w.audit.list)
	last := w.audit.list[len(w.audit.list)-1]
	assert.Equal(t, "company_module", last.EntityType)
	assert.Equal(t, "u-root", last.UserID)
}

func TestModuleService_List_BaskaSirketGorunmez(t *testing.T) {
	w := newWorld()
	admin := w.addUser("u-admin", "Ayşe Yılmaz", entity.RoleAdmin)
	svc := NewModuleService(w.companies, w.recorder)

	_, err := svc.List(context.Background(), admin, "c-baska")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModuleService_HasActiveModule_BosParametre(t *testing.T) {
	svc := NewModuleService(newWorld().companies, nil)
	_, err := svc.HasActiveModule(context.Background(), "", entity.ModuleLeave)
	assert.Error(t, err)
}

func TestRecorder_AktiviteAdi(t *testing.T) {
	w := newWorld()
	a := w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)

	w.recorder.Record(context.Background(), a, Event{Action: entity.ActionCreate, EntityType: "leave", EntityID: "l-1", Description: "izin talebi oluşturdu"})
	w.recorder.Record(context.Background(), a, Event{Action: entity.ActionUpdate, EntityType: "leave", EntityID: "l-1"})

	assert.Len(t, w.audit.list, 2)
	require.Len(t, w.activities.list, 1, "açıklamasız olay aktiviteye yazılmaz")
	assert.Equal(t, "Zeynep Şahin izin talebi oluşturdu", w.activities.list[0].Description)

	var nilRecorder *Recorder
	assert.NotPanics(t, func() { nilRecorder.Record(context.Background(), a, Event{Action: entity.ActionDelete}) })
}
