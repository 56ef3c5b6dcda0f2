package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
	"github.com/jhoicas/ik-portal/pkg/tckn"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

// EmployeeUseCase personel kayıtları. employee rolü yalnızca kendi kaydını görür.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
	parser      ports.EmployeeImportParser
	recorder    *Recorder
}

// NewEmployeeUseCase kurucu. parser nil ise içe aktarma kapalıdır.
func NewEmployeeUseCase(
	repo repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	users repository.UserRepository,
	parser ports.EmployeeImportParser,
	recorder *Recorder,
) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, departments: departments, users: users, parser: parser, recorder: recorder}
}

// List filtreli personel listesi.
func (uc *EmployeeUseCase) List(ctx context.Context, a Actor, q dto.EmployeeQuery) (*dto.ListResponse[*entity.Employee], error) {
	if !a.Can(entity.PermEmployeesRead) {
		return nil, domain.ErrForbidden
	}
	if q.Status != "" && !entity.IsValidEmployeeStatus(q.Status) {
		return nil, invalid("geçersiz durum: %s", q.Status)
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.EmployeeFilter{
		Page:         toPage(p),
		CompanyID:    a.CompanyID,
		DepartmentID: q.DepartmentID,
		Status:       q.Status,
		Search:       trtext.FoldSearch(q.Search),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID personel. Okuma yetkisi olmayan yalnızca kendi kaydını alabilir.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Employee, error) {
	e, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil || (!a.Can(entity.PermEmployeesRead) && !isOwn(e, a)) {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Me oturumdaki kullanıcıya bağlı personel kaydı.
func (uc *EmployeeUseCase) Me(ctx context.Context, a Actor) (*entity.Employee, error) {
	e, err := uc.repo.GetByUserID(ctx, a.CompanyID, a.UserID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Create personel ekler. Sicil no ve TC Kimlik No şirket içinde tekildir.
func (uc *EmployeeUseCase) Create(ctx context.Context, a Actor, in dto.EmployeeRequest) (*entity.Employee, error) {
	ts := now()
	e := &entity.Employee{ID: uuid.New().String(), CompanyID: a.CompanyID, Status: entity.EmployeeActive, CreatedAt: ts, UpdatedAt: ts}
	if err := uc.apply(ctx, a, e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "employee", EntityID: e.ID,
		Changes: map[string]any{"employee_number": e.EmployeeNumber}, Description: "personel ekledi: " + e.FullName()})
	return e, nil
}

// Update personel kaydını tümüyle günceller.
func (uc *EmployeeUseCase) Update(ctx context.Context, a Actor, id string, in dto.EmployeeRequest) (*entity.Employee, error) {
	e, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	before := *e
	if err := uc.apply(ctx, a, e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("position", before.Position, e.Position)
	changes.add("status", before.Status, e.Status)
	changes.add("salary", before.Salary.String(), e.Salary.String())
	changes.add("department_id", deref(before.DepartmentID), deref(e.DepartmentID))
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "employee", EntityID: e.ID, Changes: changes,
		Description: "personel bilgilerini güncelledi: " + e.FullName()})
	return e, nil
}

// Terminate işten çıkışı kaydeder. Çıkış tarihi işe girişten önce olamaz.
func (uc *EmployeeUseCase) Terminate(ctx context.Context, a Actor, id string, in dto.TerminateEmployeeRequest) (*entity.Employee, error) {
	e, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if e.Status == entity.EmployeeTerminated {
		return nil, fmt.Errorf("%w: personelin çıkışı zaten yapılmış", domain.ErrInvalidTransition)
	}
	date := now()
	if strings.TrimSpace(in.TerminationDate) != "" {
		if date, err = parseDate("termination_date", in.TerminationDate); err != nil {
			return nil, err
		}
	}
	if date.Before(e.HireDate) {
		return nil, invalid("çıkış tarihi işe giriş tarihinden önce olamaz")
	}
	prev := e.Status
	e.Status = entity.EmployeeTerminated
	e.TerminationDate = &date
	e.UpdatedAt = now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "employee", EntityID: e.ID,
		Changes:     map[string]any{"status": map[string]any{"old": prev, "new": e.Status}, "reason": sanitize.Text(in.Reason)},
		Description: "personelin işten çıkışını yaptı: " + e.FullName()})
	return e, nil
}

// Delete personeli siler; bordrosu olan personel silinemez (ErrConflict).
func (uc *EmployeeUseCase) Delete(ctx context.Context, a Actor, id string) error {
	e, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "employee", EntityID: id,
		Description: "personel kaydını sildi: " + e.FullName()})
	return nil
}

// Import CSV dosyasındaki personelleri tek tek ekler; hatalı satırlar raporlanır.
func (uc *EmployeeUseCase) Import(ctx context.Context, a Actor, r io.Reader) (*dto.ImportResult, error) {
	if uc.parser == nil {
		return nil, fmt.Errorf("personel içe aktarma yapılandırılmamış")
	}
	rows, err := uc.parser.ParseEmployees(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	res := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	for _, row := range rows {
		if row.Err != nil {
			res.Failed++
			res.Errors = append(res.Errors, dto.ImportRowError{Line: row.Line, Message: row.Err.Error()})
			continue
		}
		ts := now()
		e := &entity.Employee{ID: uuid.New().String(), CompanyID: a.CompanyID, Status: entity.EmployeeActive, CreatedAt: ts, UpdatedAt: ts}
		err := uc.apply(ctx, a, e, row.Request)
		if err == nil {
			err = uc.repo.Create(ctx, e)
		}
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, dto.ImportRowError{Line: row.Line, Message: importMessage(err)})
			continue
		}
		res.Created++
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionImport, EntityType: "employee",
		Changes:     map[string]any{"created": res.Created, "failed": res.Failed},
		Description: fmt.Sprintf("CSV ile %d personel içe aktardı", res.Created)})
	return res, nil
}

func importMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "sicil no ya da TC Kimlik No zaten kayıtlı"
	default:
		return err.Error()
	}
}

func (uc *EmployeeUseCase) apply(ctx context.Context, a Actor, e *entity.Employee, in dto.EmployeeRequest) error {
	number := strings.TrimSpace(in.EmployeeNumber)
	if number == "" || len(number) > 50 {
		return invalid("sicil no zorunludur (en fazla 50 karakter)")
	}
	first, last := trtext.Name(in.FirstName), trtext.Name(in.LastName)
	if first == "" || last == "" {
		return invalid("ad ve soyad zorunludur")
	}
	nationalID := strings.TrimSpace(in.NationalID)
	if err := tckn.ValidateTCKN(nationalID); err != nil {
		return invalid("TC Kimlik No geçersiz")
	}
	email := ""
	if strings.TrimSpace(in.Email) != "" {
		var err error
		if email, err = normalizeEmail(in.Email); err != nil {
			return err
		}
	}
	hire, err := parseDate("hire_date", in.HireDate)
	if err != nil {
		return err
	}
	birth, err := parseOptionalDate("birth_date", in.BirthDate)
	if err != nil {
		return err
	}
	if birth != nil && !birth.Before(hire) {
		return invalid("doğum tarihi işe giriş tarihinden önce olmalıdır")
	}
	employmentType := strings.TrimSpace(in.EmploymentType)
	if employmentType == "" {
		employmentType = entity.EmploymentFullTime
	}
	if !entity.IsValidEmploymentType(employmentType) {
		return invalid("geçersiz çalışma tipi: %s", employmentType)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = e.Status
	}
	if !entity.IsValidEmployeeStatus(status) {
		return invalid("geçersiz durum: %s", status)
	}
	if status == entity.EmployeeTerminated && e.Status != entity.EmployeeTerminated {
		return invalid("işten çıkış için terminate işlemini kullanın")
	}
	if in.Salary.IsNegative() {
		return invalid("maaş negatif olamaz")
	}
	iban := ""
	if strings.TrimSpace(in.IBAN) != "" {
		if err := tckn.ValidateIBAN(in.IBAN); err != nil {
			return invalid("IBAN geçersiz")
		}
		iban = tckn.NormalizeIBAN(in.IBAN)
	}

	departmentID := emptyToNil(in.DepartmentID)
	if departmentID != nil {
		d, err := uc.departments.GetByID(ctx, a.CompanyID, *departmentID)
		if err != nil {
			return err
		}
		if d == nil {
			return invalid("departman bulunamadı")
		}
	}
	userID := emptyToNil(in.UserID)
	if userID != nil {
		u, err := uc.users.GetByID(ctx, *userID)
		if err != nil {
			return err
		}
		if u == nil || u.CompanyID != a.CompanyID {
			return invalid("kullanıcı bulunamadı")
		}
	}

	e.EmployeeNumber = number
	e.FirstName, e.LastName = first, last
	e.NationalID = nationalID
	e.Email = email
	e.Phone = strings.TrimSpace(in.Phone)
	e.Position = sanitize.Text(in.Position)
	e.DepartmentID = departmentID
	e.UserID = userID
	e.HireDate = hire
	e.BirthDate = birth
	e.EmploymentType = employmentType
	e.Status = status
	e.Salary = in.Salary.Round(2)
	e.IBAN = iban
	e.Address = sanitize.Text(in.Address)
	e.EmergencyContactName = trtext.Name(in.EmergencyContactName)
	e.EmergencyContactPhone = strings.TrimSpace(in.EmergencyContactPhone)
	return nil
}

func isOwn(e *entity.Employee, a Actor) bool {
	return e.UserID != nil && *e.UserID == a.UserID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
