package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
	"github.com/jhoicas/ik-portal/pkg/tckn"
)

// CompanyUseCase şirket (kiracı) iş kuralları.
// super_admin tüm şirketleri yönetir; diğer roller yalnızca kendi şirketini görür.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	recorder *Recorder
}

// NewCompanyUseCase kurucu.
func NewCompanyUseCase(repo repository.CompanyRepository, recorder *Recorder) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, recorder: recorder}
}

// Create yeni şirket açar ve tüm modülleri etkinleştirir. VKN tekrarında ErrDuplicate.
func (uc *CompanyUseCase) Create(ctx context.Context, a Actor, in dto.CreateCompanyRequest) (*entity.Company, error) {
	if !a.Can(entity.PermCompaniesManage) {
		return nil, domain.ErrForbidden
	}
	name := sanitize.Text(in.Name)
	if name == "" || len(name) > 200 {
		return nil, invalid("şirket adı zorunludur (en fazla 200 karakter)")
	}
	taxNumber := strings.TrimSpace(in.TaxNumber)
	if err := tckn.ValidateVKN(taxNumber); err != nil {
		return nil, invalid("vergi numarası geçersiz: %v", err)
	}
	email := ""
	if strings.TrimSpace(in.Email) != "" {
		e, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		email = e
	}
	existing, err := uc.repo.GetByTaxNumber(ctx, taxNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	ts := now()
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		TaxNumber: taxNumber,
		TaxOffice: sanitize.Text(in.TaxOffice),
		Address:   sanitize.Text(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     email,
		Status:    entity.CompanyActive,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	for _, m := range entity.AllModules {
		if err := uc.repo.UpsertModule(ctx, &entity.CompanyModule{
			ID: uuid.New().String(), CompanyID: c.ID, ModuleName: m, IsActive: true,
			ActivatedAt: ts, CreatedAt: ts, UpdatedAt: ts,
		}); err != nil {
			return nil, err
		}
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "company", EntityID: c.ID,
		Description: "yeni şirket oluşturdu: " + c.Name})
	return c, nil
}

// GetByID şirketi döner; başka kiracının şirketi için ErrNotFound.
func (uc *CompanyUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Company, error) {
	if !a.Can(entity.PermCompaniesManage) && id != a.CompanyID {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List super_admin için tüm şirketler, diğerleri için yalnızca kendi şirketi.
func (uc *CompanyUseCase) List(ctx context.Context, a Actor, p dto.PageRequest) (*dto.ListResponse[*entity.Company], error) {
	p = normalized(p)
	if !a.Can(entity.PermCompaniesManage) {
		c, err := uc.GetByID(ctx, a, a.CompanyID)
		if err != nil {
			return nil, err
		}
		return dto.NewListResponse([]*entity.Company{c}, p, 1), nil
	}
	list, total, err := uc.repo.List(ctx, toPage(p))
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// Update şirket bilgilerini günceller. Durumu yalnızca super_admin değiştirir.
func (uc *CompanyUseCase) Update(ctx context.Context, a Actor, id string, in dto.UpdateCompanyRequest) (*entity.Company, error) {
	if !a.Can(entity.PermCompaniesManage) && !(a.Can(entity.PermCompanyWrite) && id == a.CompanyID) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	changes := diff{}
	if in.Name != nil {
		name := sanitize.Text(*in.Name)
		if name == "" || len(name) > 200 {
			return nil, invalid("şirket adı zorunludur (en fazla 200 karakter)")
		}
		changes.add("name", c.Name, name)
		c.Name = name
	}
	if in.TaxOffice != nil {
		c.TaxOffice = sanitize.Text(*in.TaxOffice)
	}
	if in.Address != nil {
		c.Address = sanitize.Text(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email := ""
		if strings.TrimSpace(*in.Email) != "" {
			if email, err = normalizeEmail(*in.Email); err != nil {
				return nil, err
			}
		}
		changes.add("email", c.Email, email)
		c.Email = email
	}
	if in.Status != nil {
		if !a.Can(entity.PermCompaniesManage) {
			return nil, domain.ErrForbidden
		}
		switch *in.Status {
		case entity.CompanyActive, entity.CompanySuspended, entity.CompanyInactive:
		default:
			return nil, invalid("durum active, suspended ya da inactive olmalıdır")
		}
		changes.add("status", c.Status, *in.Status)
		c.Status = *in.Status
	}
	c.UpdatedAt = now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "company", EntityID: c.ID, Changes: changes})
	return c, nil
}

// Delete şirketi ve bağlı tüm kayıtları siler. Yalnızca super_admin; kendi şirketi silinemez.
func (uc *CompanyUseCase) Delete(ctx context.Context, a Actor, id string) error {
	if !a.Can(entity.PermCompaniesManage) {
		return domain.ErrForbidden
	}
	if id == a.CompanyID {
		return invalid("kendi şirketinizi silemezsiniz")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "company", EntityID: id})
	return nil
}
