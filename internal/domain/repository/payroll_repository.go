package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// PayrollRepository bordrolar için kalıcılık portu.
// (company, employee, year, month) tekildir; çakışmada domain.ErrDuplicate döner.
type PayrollRepository interface {
	Create(ctx context.Context, p *entity.Payroll) error
	// CreateIfAbsent dönemde bordro yoksa ekler ve true döner. Çakışma hata değildir;
	// işlem içinde çağrıldığında işlemi bozmaz.
	CreateIfAbsent(ctx context.Context, p *entity.Payroll) (bool, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.Payroll, error)
	GetByPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*entity.Payroll, error)
	Update(ctx context.Context, p *entity.Payroll) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, f PayrollFilter) ([]*entity.Payroll, int, error)
	ListByPeriod(ctx context.Context, companyID string, year, month int) ([]*entity.Payroll, error)
	// PriorTaxBase aynı yılın verilen aydan önceki GV matrahları toplamı.
	PriorTaxBase(ctx context.Context, companyID, employeeID string, year, month int) (decimal.Decimal, error)
}
