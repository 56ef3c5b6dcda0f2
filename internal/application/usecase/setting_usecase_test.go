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

func TestSetting_KayitYoksaVarsayilan(t *testing.T) {
	w := newWorld()
	admin := w.addUser("u-admin", "Ayşe Demir", entity.RoleAdmin)
	ctx := context.Background()

	def, ok := entity.DefaultSetting(entity.SettingMinimumWage)
	require.True(t, ok)

	s, err := w.settingUC.Get(ctx, admin, entity.SettingMinimumWage)
	require.NoError(t, err)
	assert.Equal(t, def.Value, s.Value)
	assert.Equal(t, testCompany, s.CompanyID)

	_, err = w.settingUC.Get(ctx, admin, "bilinmeyen.anahtar")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = w.settingUC.Upsert(ctx, admin, entity.SettingMinimumWage, dto.UpsertSettingRequest{Value: "30000.00"})
	require.NoError(t, err)
	s, err = w.settingUC.Get(ctx, admin, entity.SettingMinimumWage)
	require.NoError(t, err)
	assert.Equal(t, "30000.00", s.Value)
	assert.Equal(t, entity.SettingCategoryPayroll, s.Category, "kategori varsayılandan gelir")

	other := Actor{UserID: "u-9", CompanyID: "c-2", Role: entity.RoleAdmin}
	s, err = w.settingUC.Get(ctx, other, entity.SettingMinimumWage)
	require.NoError(t, err)
	assert.Equal(t, def.Value, s.Value, "başka şirketin kaydı etkilemez")
}

func TestSetting_ListeVarsayilanlarlaBirlesir(t *testing.T) {
	w := newWorld()
	admin := w.addUser("u-admin", "Ayşe Demir", entity.RoleAdmin)
	ctx := context.Background()

	_, err := w.settingUC.Upsert(ctx, admin, entity.SettingStampTaxRate, dto.UpsertSettingRequest{Value: "0.01"})
	require.NoError(t, err)

	list, err := w.settingUC.List(ctx, admin, entity.SettingCategoryPayroll)
	require.NoError(t, err)
	keys := map[string]string{}
	for _, s := range list {
		assert.Equal(t, entity.SettingCategoryPayroll, s.Category)
		keys[s.Key] = s.Value
	}
	assert.Equal(t, "0.01", keys[entity.SettingStampTaxRate])
	assert.Contains(t, keys, entity.SettingMinimumWage)
	assert.NotContains(t, keys, entity.SettingLeaveAllowNegative)

	_, err = w.settingUC.Upsert(ctx, admin, entity.SettingLeaveAllowNegative, dto.UpsertSettingRequest{Value: "belki"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
