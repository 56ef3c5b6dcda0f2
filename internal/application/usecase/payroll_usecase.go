package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/payroll"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

// PayrollUseCase aylık bordro hesaplama ve durum akışı.
type PayrollUseCase struct {
	repo      repository.PayrollRepository
	employees repository.EmployeeRepository
	tx        repository.TxRunner
	settings  *SettingUseCase
	notifier  *Notifier
	recorder  *Recorder
}

// NewPayrollUseCase kurucu.
func NewPayrollUseCase(
	repo repository.PayrollRepository,
	employees repository.EmployeeRepository,
	tx repository.TxRunner,
	settings *SettingUseCase,
	notifier *Notifier,
	recorder *Recorder,
) *PayrollUseCase {
	return &PayrollUseCase{repo: repo, employees: employees, tx: tx, settings: settings, notifier: notifier, recorder: recorder}
}

// List bordro okuma yetkisi olan employee rolü yalnızca kendi bordrolarını görür.
func (uc *PayrollUseCase) List(ctx context.Context, a Actor, q dto.PayrollQuery) (*dto.ListResponse[*entity.Payroll], error) {
	if q.Month != 0 && (q.Month < 1 || q.Month > 12) {
		return nil, invalid("ay 1 ile 12 arasında olmalıdır")
	}
	f := repository.PayrollFilter{CompanyID: a.CompanyID, EmployeeID: q.EmployeeID, Year: q.Year, Month: q.Month, Status: q.Status}
	if !a.Can(entity.PermPayrollWrite) {
		me, err := uc.employees.GetByUserID(ctx, a.CompanyID, a.UserID)
		if err != nil {
			return nil, err
		}
		if me == nil {
			return nil, domain.ErrNotFound
		}
		f.EmployeeID = me.ID
	}
	p := normalized(q.PageRequest)
	f.Page = toPage(p)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID bordro; başkasının bordrosu yazma yetkisi olmadan görünmez.
func (uc *PayrollUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Payroll, error) {
	p, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !a.Can(entity.PermPayrollWrite) {
		emp, err := uc.employees.GetByID(ctx, a.CompanyID, p.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil || !isOwn(emp, a) {
			return nil, domain.ErrNotFound
		}
	}
	return p, nil
}

// Create tek bordro hesaplar. Aynı dönem için ikinci bordro ErrDuplicate döner.
func (uc *PayrollUseCase) Create(ctx context.Context, a Actor, in dto.CreatePayrollRequest) (*entity.Payroll, error) {
	if !a.Can(entity.PermPayrollWrite) {
		return nil, domain.ErrForbidden
	}
	if err := checkPeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, strings.TrimSpace(in.EmployeeID))
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, invalid("personel bulunamadı")
	}
	existing, err := uc.repo.GetByPeriod(ctx, a.CompanyID, emp.ID, in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s dönemi için bordro zaten var", domain.ErrDuplicate, trtext.PeriodLabel(in.Year, in.Month))
	}
	base := emp.Salary
	if in.BaseSalary != nil {
		base = *in.BaseSalary
	}
	ts := now()
	p := &entity.Payroll{
		ID:              uuid.New().String(),
		CompanyID:       a.CompanyID,
		EmployeeID:      emp.ID,
		Year:            in.Year,
		Month:           in.Month,
		BaseSalary:      base,
		Overtime:        in.Overtime,
		Bonus:           in.Bonus,
		Allowances:      in.Allowances,
		OtherDeductions: in.OtherDeductions,
		Status:          entity.PayrollDraft,
		Notes:           sanitize.Text(in.Notes),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := uc.calculate(ctx, uc.repo, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "payroll", EntityID: p.ID,
		Changes:     map[string]any{"gross": p.Gross.String(), "net": p.Net.String()},
		Description: fmt.Sprintf("%s için %s bordrosu oluşturdu", emp.FullName(), trtext.PeriodLabel(p.Year, p.Month))})
	return p, nil
}

// Generate dönemin tüm aktif personeli için taslak bordroları tek işlemde üretir.
// Bordrosu olan personel atlanır.
func (uc *PayrollUseCase) Generate(ctx context.Context, a Actor, in dto.GeneratePayrollRequest) (*dto.GeneratePayrollResult, error) {
	if !a.Can(entity.PermPayrollWrite) {
		return nil, domain.ErrForbidden
	}
	if err := checkPeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	res := &dto.GeneratePayrollResult{Year: in.Year, Month: in.Month}
	err := uc.tx.RunInTx(ctx, func(ctx context.Context, tx repository.Store) error {
		res.Created, res.Skipped, res.MissingSalary = 0, 0, nil
		emps, err := tx.Employees.ListActive(ctx, a.CompanyID)
		if err != nil {
			return err
		}
		ts := now()
		for _, emp := range emps {
			existing, err := tx.Payrolls.GetByPeriod(ctx, a.CompanyID, emp.ID, in.Year, in.Month)
			if err != nil {
				return err
			}
			if existing != nil || emp.HireDate.After(periodEnd(in.Year, in.Month)) {
				res.Skipped++
				continue
			}
			if !emp.Salary.IsPositive() {
				res.Skipped++
				res.MissingSalary = append(res.MissingSalary, emp.EmployeeNumber)
				continue
			}
			p := &entity.Payroll{
				ID:         uuid.New().String(),
				CompanyID:  a.CompanyID,
				EmployeeID: emp.ID,
				Year:       in.Year,
				Month:      in.Month,
				BaseSalary: emp.Salary,
				Status:     entity.PayrollDraft,
				CreatedAt:  ts,
				UpdatedAt:  ts,
			}
			if err := uc.calculate(ctx, tx.Payrolls, p); err != nil {
				return err
			}
			created, err := tx.Payrolls.CreateIfAbsent(ctx, p)
			if err != nil {
				return fmt.Errorf("%s: %w", emp.FullName(), err)
			}
			if !created {
				res.Skipped++
				continue
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "payroll",
		Changes:     map[string]any{"year": in.Year, "month": in.Month, "created": res.Created, "skipped": res.Skipped},
		Description: fmt.Sprintf("%s dönemi için %d bordro oluşturdu", trtext.PeriodLabel(in.Year, in.Month), res.Created)})
	return res, nil
}

// Update taslak bordroyu günceller ve yeniden hesaplar.
func (uc *PayrollUseCase) Update(ctx context.Context, a Actor, id string, in dto.UpdatePayrollRequest) (*entity.Payroll, error) {
	p, err := uc.draft(ctx, a, id)
	if err != nil {
		return nil, err
	}
	beforeNet := p.Net.String()
	if in.BaseSalary != nil {
		p.BaseSalary = *in.BaseSalary
	}
	if in.Overtime != nil {
		p.Overtime = *in.Overtime
	}
	if in.Bonus != nil {
		p.Bonus = *in.Bonus
	}
	if in.Allowances != nil {
		p.Allowances = *in.Allowances
	}
	if in.OtherDeductions != nil {
		p.OtherDeductions = *in.OtherDeductions
	}
	if in.Notes != nil {
		p.Notes = sanitize.Text(*in.Notes)
	}
	if err := uc.calculate(ctx, uc.repo, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("net", beforeNet, p.Net.String())
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "payroll", EntityID: p.ID, Changes: changes})
	return p, nil
}

// Approve taslağı onaylar.
func (uc *PayrollUseCase) Approve(ctx context.Context, a Actor, id string) (*entity.Payroll, error) {
	if !a.Can(entity.PermPayrollApprove) {
		return nil, domain.ErrForbidden
	}
	return uc.transition(ctx, a, id, entity.PayrollApproved)
}

// MarkPaid onaylı bordroyu ödendi olarak işaretler ve personele bildirir.
func (uc *PayrollUseCase) MarkPaid(ctx context.Context, a Actor, id string) (*entity.Payroll, error) {
	if !a.Can(entity.PermPayrollApprove) {
		return nil, domain.ErrForbidden
	}
	return uc.transition(ctx, a, id, entity.PayrollPaid)
}

func (uc *PayrollUseCase) transition(ctx context.Context, a Actor, id, target string) (*entity.Payroll, error) {
	p, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !p.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.Status, target)
	}
	ts := now()
	prev := p.Status
	p.Status = target
	switch target {
	case entity.PayrollApproved:
		p.ApprovedBy = &a.UserID
		p.ApprovedAt = &ts
	case entity.PayrollPaid:
		p.PaidAt = &ts
	}
	p.UpdatedAt = ts
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	label := trtext.PeriodLabel(p.Year, p.Month)
	verb := "onayladı"
	if target == entity.PayrollPaid {
		verb = "ödendi olarak işaretledi"
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionApprove, EntityType: "payroll", EntityID: p.ID,
		Changes:     map[string]any{"status": map[string]any{"old": prev, "new": target}},
		Description: label + " bordrosunu " + verb})
	if target == entity.PayrollPaid {
		emp, _ := uc.employees.GetByID(ctx, a.CompanyID, p.EmployeeID)
		if emp != nil && emp.UserID != nil {
			uc.notifier.Notify(ctx, entity.Notification{
				CompanyID: a.CompanyID, UserID: *emp.UserID, Type: entity.NotificationPayroll,
				Title:   "Maaşınız ödendi",
				Message: fmt.Sprintf("%s dönemi net ücretiniz %s TL olarak ödendi.", label, p.Net.StringFixed(2)),
				Link:    "/payroll/" + p.ID, EntityType: "payroll", EntityID: p.ID,
			})
		}
	}
	return p, nil
}

// Delete yalnızca taslak bordrolar silinir.
func (uc *PayrollUseCase) Delete(ctx context.Context, a Actor, id string) error {
	p, err := uc.draft(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, p.ID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "payroll", EntityID: id})
	return nil
}

func (uc *PayrollUseCase) draft(ctx context.Context, a Actor, id string) (*entity.Payroll, error) {
	if !a.Can(entity.PermPayrollWrite) {
		return nil, domain.ErrForbidden
	}
	p, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if p.Status != entity.PayrollDraft {
		return nil, fmt.Errorf("%w: yalnızca taslak bordrolar değiştirilebilir", domain.ErrInvalidTransition)
	}
	return p, nil
}

// calculate şirket oranları ve yılın önceki aylarındaki matrahla bordroyu hesaplar.
func (uc *PayrollUseCase) calculate(ctx context.Context, repo repository.PayrollRepository, p *entity.Payroll) error {
	for name, v := range map[string]decimal.Decimal{
		"base_salary": p.BaseSalary, "overtime": p.Overtime, "bonus": p.Bonus,
		"allowances": p.Allowances, "other_deductions": p.OtherDeductions,
	} {
		if v.IsNegative() {
			return invalid("%s negatif olamaz", name)
		}
	}
	if !p.BaseSalary.IsPositive() {
		return invalid("temel ücret sıfırdan büyük olmalıdır")
	}
	rates, err := uc.settings.PayrollRates(ctx, p.CompanyID)
	if err != nil {
		return err
	}
	prior, err := repo.PriorTaxBase(ctx, p.CompanyID, p.EmployeeID, p.Year, p.Month)
	if err != nil {
		return err
	}
	r := payroll.Calculate(payroll.Input{
		Month:           p.Month,
		BaseSalary:      p.BaseSalary.Round(2),
		Overtime:        p.Overtime.Round(2),
		Bonus:           p.Bonus.Round(2),
		Allowances:      p.Allowances.Round(2),
		OtherDeductions: p.OtherDeductions.Round(2),
		PriorTaxBase:    prior,
	}, rates)
	p.BaseSalary, p.Overtime, p.Bonus, p.Allowances = p.BaseSalary.Round(2), p.Overtime.Round(2), p.Bonus.Round(2), p.Allowances.Round(2)
	p.Gross = r.Gross
	p.SGKBase = r.SGKBase
	p.SGKEmployee = r.SGKEmployee
	p.UnemploymentEmployee = r.UnemploymentEmployee
	p.IncomeTaxBase = r.IncomeTaxBase
	p.CumulativeTaxBase = r.CumulativeTaxBase
	p.IncomeTax = r.IncomeTax
	p.StampTax = r.StampTax
	p.IncomeTaxExemption = r.IncomeTaxExemption
	p.StampTaxExemption = r.StampTaxExemption
	p.OtherDeductions = r.OtherDeductions
	p.TotalDeductions = r.TotalDeductions
	p.Net = r.Net
	p.SGKEmployer = r.SGKEmployer
	p.UnemploymentEmployer = r.UnemploymentEmployer
	p.EmployerCost = r.EmployerCost
	if p.Net.IsNegative() {
		return invalid("kesintiler brüt ücreti aşıyor")
	}
	return nil
}

func checkPeriod(year, month int) error {
	if year < 2000 || year > 2100 {
		return invalid("geçersiz yıl: %d", year)
	}
	if month < 1 || month > 12 {
		return invalid("ay 1 ile 12 arasında olmalıdır")
	}
	return nil
}
