package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// ModuleService bir şirkette hangi SaaS modüllerinin etkin olduğunu bilir.
// Modül etkinleştirme mantığını bilen tek yer burasıdır.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	recorder    *Recorder
}

// NewModuleService kurucu.
func NewModuleService(companyRepo repository.CompanyRepository, recorder *Recorder) *ModuleService {
	return &ModuleService{companyRepo: companyRepo, recorder: recorder}
}

// HasActiveModule modül etkin ve süresi dolmamışsa true.
// Modül hiç tanımlı değilse hata olmadan false döner; hata yalnızca altyapı sorunlarında döner.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID ve moduleName zorunludur")
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// List şirketin tüm bilinen modüllerinin durumunu döner.
func (s *ModuleService) List(ctx context.Context, a Actor, companyID string) ([]dto.ModuleStatus, error) {
	if !a.Can(entity.PermCompaniesManage) && companyID != a.CompanyID {
		return nil, domain.ErrNotFound
	}
	mods, err := s.companyRepo.ListModules(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.CompanyModule, len(mods))
	for _, m := range mods {
		byName[m.ModuleName] = m
	}
	ts := now()
	out := make([]dto.ModuleStatus, 0, len(entity.AllModules))
	for _, name := range entity.AllModules {
		st := dto.ModuleStatus{ModuleName: name}
		if m, ok := byName[name]; ok {
			st.IsActive = m.ActiveAt(ts)
			st.ExpiresAt = m.ExpiresAt
		}
		out = append(out, st)
	}
	return out, nil
}

// Toggle modülü açar ya da kapatır. Yalnızca super_admin.
func (s *ModuleService) Toggle(ctx context.Context, a Actor, companyID string, in dto.ModuleToggleRequest) ([]dto.ModuleStatus, error) {
	if !a.Can(entity.PermCompaniesManage) {
		return nil, domain.ErrForbidden
	}
	if !entity.IsValidModule(in.ModuleName) {
		return nil, invalid("bilinmeyen modül: %s", in.ModuleName)
	}
	ts := now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(ts) {
		return nil, invalid("bitiş tarihi gelecekte olmalıdır")
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	m := &entity.CompanyModule{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ModuleName:  in.ModuleName,
		IsActive:    in.IsActive,
		ActivatedAt: ts,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.companyRepo.UpsertModule(ctx, m); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, a, Event{
		Action: entity.ActionUpdate, EntityType: "company_module", EntityID: companyID,
		Changes: map[string]any{"module": in.ModuleName, "is_active": in.IsActive},
	})
	return s.List(ctx, a, companyID)
}
