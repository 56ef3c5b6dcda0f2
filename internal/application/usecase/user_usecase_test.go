package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

func TestUser_KendiniSilemez(t *testing.T) {
	w := newWorld()
	admin := w.addUser("u-admin", "Ayşe Demir", entity.RoleAdmin)
	w.addUser("u-1", "Zeynep Şahin", entity.RoleEmployee)
	w.addUser("u-root", "Sistem", entity.RoleSuperAdmin)
	uc := NewUserUseCase(w.users, w.recorder)
	ctx := context.Background()

	err := uc.Delete(ctx, admin, "u-admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, w.users.byID, "u-admin")

	assert.ErrorIs(t, uc.Delete(ctx, admin, "u-root"), domain.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, admin, "u-1"))
	assert.NotContains(t, w.users.byID, "u-1")
	assert.ErrorIs(t, uc.Delete(ctx, admin, "u-1"), domain.ErrUserNotFound)
}
