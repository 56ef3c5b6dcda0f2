package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

// MinPasswordLength parola alt sınırı.
const MinPasswordLength = 8

// UserUseCase şirket kullanıcılarının yönetimi.
type UserUseCase struct {
	repo     repository.UserRepository
	recorder *Recorder
}

// NewUserUseCase kurucu.
func NewUserUseCase(repo repository.UserRepository, recorder *Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder}
}

// List şirket kullanıcıları.
func (uc *UserUseCase) List(ctx context.Context, a Actor, p dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	p = normalized(p)
	users, total, err := uc.repo.ListByCompany(ctx, a.CompanyID, toPage(p))
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *ToUserResponse(u, false))
	}
	return dto.NewListResponse(items, p, total), nil
}

// GetByID aynı şirketteki kullanıcı.
func (uc *UserUseCase) GetByID(ctx context.Context, a Actor, id string) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, a, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u, false), nil
}

func (uc *UserUseCase) find(ctx context.Context, a Actor, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.CompanyID != a.CompanyID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Create yönetici tarafından kullanıcı ekler. super_admin rolü yalnızca super_admin atayabilir.
func (uc *UserUseCase) Create(ctx context.Context, a Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, invalid("parola en az %d karakter olmalıdır", MinPasswordLength)
	}
	name := sanitize.Text(in.Name)
	if name == "" || len(name) > 200 {
		return nil, invalid("ad zorunludur (en fazla 200 karakter)")
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleEmployee
	}
	if err := checkAssignableRole(a, role); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ts := now()
	u := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    a.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "user", EntityID: u.ID,
		Changes: map[string]any{"email": email, "role": role}, Description: "kullanıcı ekledi: " + name})
	return ToUserResponse(u, false), nil
}

// Update ad, rol ve durumu günceller. Kullanıcı kendi rolünü ve durumunu değiştiremez.
func (uc *UserUseCase) Update(ctx context.Context, a Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if u.Role == entity.RoleSuperAdmin && a.Role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	changes := diff{}
	if in.Name != nil {
		name := sanitize.Text(*in.Name)
		if name == "" || len(name) > 200 {
			return nil, invalid("ad zorunludur (en fazla 200 karakter)")
		}
		changes.add("name", u.Name, name)
		u.Name = name
	}
	if in.Role != nil && *in.Role != u.Role {
		if id == a.UserID {
			return nil, invalid("kendi rolünüzü değiştiremezsiniz")
		}
		if err := checkAssignableRole(a, *in.Role); err != nil {
			return nil, err
		}
		changes.add("role", u.Role, *in.Role)
		u.Role = *in.Role
	}
	if in.Status != nil && *in.Status != u.Status {
		if id == a.UserID {
			return nil, invalid("kendi durumunuzu değiştiremezsiniz")
		}
		switch *in.Status {
		case entity.UserActive, entity.UserInactive, entity.UserSuspended:
		default:
			return nil, invalid("durum active, inactive ya da suspended olmalıdır")
		}
		changes.add("status", u.Status, *in.Status)
		u.Status = *in.Status
	}
	u.UpdatedAt = now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "user", EntityID: u.ID, Changes: changes})
	return ToUserResponse(u, false), nil
}

// Delete kullanıcıyı siler; kişi kendini silemez.
func (uc *UserUseCase) Delete(ctx context.Context, a Actor, id string) error {
	if id == a.UserID {
		return invalid("kendi hesabınızı silemezsiniz")
	}
	u, err := uc.find(ctx, a, id)
	if err != nil {
		return err
	}
	if u.Role == entity.RoleSuperAdmin && a.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "user", EntityID: id,
		Description: "kullanıcıyı sildi: " + u.Name})
	return nil
}

func checkAssignableRole(a Actor, role string) error {
	if !entity.IsValidRole(role) {
		return invalid("geçersiz rol: %s", role)
	}
	if role == entity.RoleSuperAdmin && a.Role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// ToUserResponse kullanıcıyı parola özeti olmadan döner.
func ToUserResponse(u *entity.User, withPermissions bool) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if withPermissions {
		out.Permissions = entity.PermissionsOf(u.Role)
		sort.Strings(out.Permissions)
	}
	return out
}
