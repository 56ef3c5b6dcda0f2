package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/jwt"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

// JWTConfig token üretim ayarları.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase kayıt, giriş, çıkış ve parola değişikliği.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	recorder    *usecase.Recorder
	jwtCfg      JWTConfig
}

// NewAuthUseCase kurucu.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, recorder *usecase.Recorder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, recorder: recorder, jwtCfg: jwtCfg}
}

// RegisterUser var olan bir şirkete kullanıcı ekler. Parola bcrypt ile saklanır.
// by nil ise (herkese açık kayıt) yalnızca employee rolü verilebilir; diğer roller
// aynı şirkette users:write yetkisi ister. E-posta kayıtlıysa ErrEmailAlreadyExists.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, by *usecase.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: geçerli bir e-posta adresi girin", domain.ErrInvalidInput)
	}
	if len(in.Password) < usecase.MinPasswordLength {
		return nil, fmt.Errorf("%w: parola en az %d karakter olmalıdır", domain.ErrInvalidInput, usecase.MinPasswordLength)
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: geçersiz rol %q", domain.ErrInvalidInput, role)
	}
	if role != entity.RoleEmployee && !canGrant(by, in.CompanyID, role) {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.CompanyActive {
		return nil, domain.ErrNotFound // şirket yok ya da pasif
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := sanitize.Text(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	actor := usecase.Actor{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role}
	if by != nil {
		actor = *by
	}
	uc.recorder.Record(ctx, actor, usecase.Event{Action: entity.ActionCreate, EntityType: "user", EntityID: user.ID,
		Changes: map[string]any{"email": user.Email, "role": user.Role}})
	return usecase.ToUserResponse(user, false), nil
}

// Login e-posta/parolayı doğrular, JWT üretir ve son giriş zamanını yazar.
// Bilinmeyen e-posta ile yanlış parola aynı hatayı döner.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	sess, err := jwt.Issue(uc.jwtCfg.Secret, uc.jwtCfg.Issuer,
		jwt.Identity{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role},
		time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	uc.recorder.Record(ctx, usecase.Actor{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role, IP: ip, UserAgent: userAgent},
		usecase.Event{Action: entity.ActionLogin, EntityType: "user", EntityID: user.ID})
	return &dto.LoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      *usecase.ToUserResponse(user, true),
	}, nil
}

// Logout çıkışı denetim kaydına yazar; token istemci tarafında (çerez) silinir.
func (uc *AuthUseCase) Logout(ctx context.Context, a usecase.Actor) {
	uc.recorder.Record(ctx, a, usecase.Event{Action: entity.ActionLogout, EntityType: "user", EntityID: a.UserID})
}

// Me oturumdaki kullanıcı ve yetkileri.
func (uc *AuthUseCase) Me(ctx context.Context, a usecase.Actor) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != a.CompanyID {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(user, true), nil
}

// ChangePassword mevcut parolayı doğrulayıp yenisini yazar.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, a usecase.Actor, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < usecase.MinPasswordLength {
		return fmt.Errorf("%w: parola en az %d karakter olmalıdır", domain.ErrInvalidInput, usecase.MinPasswordLength)
	}
	user, err := uc.userRepo.GetByID(ctx, a.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, usecase.Event{Action: entity.ActionUpdate, EntityType: "user", EntityID: user.ID,
		Changes: map[string]any{"password": "changed"}})
	return nil
}

func canGrant(by *usecase.Actor, companyID, role string) bool {
	if by == nil || !by.Can(entity.PermUsersWrite) {
		return false
	}
	if role == entity.RoleSuperAdmin {
		return by.Role == entity.RoleSuperAdmin
	}
	return by.CompanyID == companyID || by.Can(entity.PermCompaniesManage)
}
