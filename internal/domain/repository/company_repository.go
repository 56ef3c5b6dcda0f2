package repository

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// CompanyRepository Company için kalıcılık portu (DIP).
// Uygulaması infrastructure katmanındadır.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxNumber(ctx context.Context, taxNumber string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, page Page) ([]*entity.Company, int, error)
	Delete(ctx context.Context, id string) error

	// ── SaaS modülleri ──────────────────────────────────────────────────────
	ListModules(ctx context.Context, companyID string) ([]*entity.CompanyModule, error)
	UpsertModule(ctx context.Context, module *entity.CompanyModule) error
	// HasActiveModule modül aktif ve süresi dolmamışsa true döner.
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
