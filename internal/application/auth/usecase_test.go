package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/jwt"
)

const testSecret = "test-secret-en-az-otuz-iki-karakter!!"

type fakeUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	f.byID[id].LastLoginAt = &at
	return nil
}

type fakeAudit struct {
	repository.AuditLogRepository
	logs []*entity.AuditLog
}

func (f *fakeAudit) Create(_ context.Context, l *entity.AuditLog) error {
	f.logs = append(f.logs, l)
	return nil
}

func newLoginFixture(t *testing.T) (*AuthUseCase, *fakeUsers, *fakeAudit) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Parola123!"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUsers{byID: map[string]*entity.User{
		"u-1": {ID: "u-1", CompanyID: "c-1", Email: "zeynep@ornek.com.tr", PasswordHash: string(hash),
			Name: "Zeynep Şahin", Role: entity.RoleHRManager, Status: entity.UserActive},
		"u-2": {ID: "u-2", CompanyID: "c-1", Email: "ali@ornek.com.tr", PasswordHash: string(hash),
			Name: "Ali Yılmaz", Role: entity.RoleEmployee, Status: entity.UserInactive},
	}}
	audit := &fakeAudit{}
	rec := usecase.NewRecorder(audit, nil, users, nil)
	uc := NewAuthUseCase(users, nil, rec, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "ik-portal"})
	return uc, users, audit
}

func TestLogin_BasariliGirisSonGirisiYazar(t *testing.T) {
	uc, users, audit := newLoginFixture(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Email: " Zeynep@Ornek.com.tr ", Password: "Parola123!"}, "10.0.0.1", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, res.User.LastLoginAt)

	id, err := jwt.Verify(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "c-1", id.CompanyID)
	assert.Equal(t, entity.RoleHRManager, id.Role)

	require.NotNil(t, users.byID["u-1"].LastLoginAt)
	assert.WithinDuration(t, time.Now(), *users.byID["u-1"].LastLoginAt, time.Minute)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, entity.ActionLogin, audit.logs[0].Action)
	assert.Equal(t, "10.0.0.1", audit.logs[0].IPAddress)
}

func TestLogin_PasifKullanici403(t *testing.T) {
	uc, users, audit := newLoginFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ali@ornek.com.tr", Password: "Parola123!"}, "", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, users.byID["u-2"].LastLoginAt)
	assert.Empty(t, audit.logs)
}

func TestLogin_YanlisParolaVeBilinmeyenEposta(t *testing.T) {
	uc, users, _ := newLoginFixture(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "zeynep@ornek.com.tr", Password: "yanlis"}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "yok@ornek.com.tr", Password: "Parola123!"}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ali@ornek.com.tr", Password: "yanlis"}, "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "pasif hesapta da parola önce doğrulanır")
	assert.Nil(t, users.byID["u-1"].LastLoginAt)
}
