package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

// DepartmentUseCase departman hiyerarşisi.
type DepartmentUseCase struct {
	repo      repository.DepartmentRepository
	employees repository.EmployeeRepository
	recorder  *Recorder
}

// NewDepartmentUseCase kurucu.
func NewDepartmentUseCase(repo repository.DepartmentRepository, employees repository.EmployeeRepository, recorder *Recorder) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo, employees: employees, recorder: recorder}
}

// List şirket departmanları.
func (uc *DepartmentUseCase) List(ctx context.Context, a Actor, p dto.PageRequest) (*dto.ListResponse[*entity.Department], error) {
	p = normalized(p)
	list, total, err := uc.repo.List(ctx, a.CompanyID, toPage(p))
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID departman; yoksa ErrNotFound.
func (uc *DepartmentUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Department, error) {
	d, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Create departman ekler. Ad şirket içinde tekildir.
func (uc *DepartmentUseCase) Create(ctx context.Context, a Actor, in dto.DepartmentRequest) (*entity.Department, error) {
	ts := now()
	d := &entity.Department{ID: uuid.New().String(), CompanyID: a.CompanyID, CreatedAt: ts, UpdatedAt: ts}
	if err := uc.apply(ctx, a, d, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "department", EntityID: d.ID,
		Description: "departman oluşturdu: " + d.Name})
	return d, nil
}

// Update departmanı günceller.
func (uc *DepartmentUseCase) Update(ctx context.Context, a Actor, id string, in dto.DepartmentRequest) (*entity.Department, error) {
	d, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	before := d.Name
	if err := uc.apply(ctx, a, d, in); err != nil {
		return nil, err
	}
	d.UpdatedAt = now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("name", before, d.Name)
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "department", EntityID: d.ID, Changes: changes})
	return d, nil
}

// Delete personeli olan departman silinemez (ErrConflict).
func (uc *DepartmentUseCase) Delete(ctx context.Context, a Actor, id string) error {
	d, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	n, err := uc.employees.CountByDepartment(ctx, a.CompanyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: departmanda %d personel var", domain.ErrConflict, n)
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "department", EntityID: id,
		Description: "departmanı sildi: " + d.Name})
	return nil
}

func (uc *DepartmentUseCase) apply(ctx context.Context, a Actor, d *entity.Department, in dto.DepartmentRequest) error {
	name := sanitize.Text(in.Name)
	if name == "" || len(name) > 150 {
		return invalid("departman adı zorunludur (en fazla 150 karakter)")
	}
	d.Name = name
	d.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	d.Description = sanitize.Text(in.Description)

	parentID := emptyToNil(in.ParentID)
	if parentID != nil {
		if *parentID == d.ID {
			return invalid("departman kendi üst departmanı olamaz")
		}
		if err := uc.checkNoCycle(ctx, a.CompanyID, d.ID, *parentID); err != nil {
			return err
		}
	}
	d.ParentID = parentID

	managerID := emptyToNil(in.ManagerID)
	if managerID != nil {
		m, err := uc.employees.GetByID(ctx, a.CompanyID, *managerID)
		if err != nil {
			return err
		}
		if m == nil {
			return invalid("yönetici personel bulunamadı")
		}
	}
	d.ManagerID = managerID
	return nil
}

// checkNoCycle üst departman zincirinde departmanın kendisi bulunmamalıdır.
func (uc *DepartmentUseCase) checkNoCycle(ctx context.Context, companyID, selfID, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == selfID || seen[cur] {
			return invalid("departman hiyerarşisinde döngü oluşamaz")
		}
		seen[cur] = true
		p, err := uc.repo.GetByID(ctx, companyID, cur)
		if err != nil {
			return err
		}
		if p == nil {
			if cur == parentID {
				return invalid("üst departman bulunamadı")
			}
			return nil
		}
		if p.ParentID == nil {
			return nil
		}
		cur = *p.ParentID
	}
	return nil
}
