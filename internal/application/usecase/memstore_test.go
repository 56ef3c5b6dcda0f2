package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/leave"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// Bellek içi depolar. Gömülü arayüzler testlerde kullanılmayan metotları karşılar;
// çağrılırlarsa panik olur.

type memUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) Delete(_ context.Context, companyID, id string) error {
	if u, ok := m.byID[id]; !ok || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) ListByRoles(_ context.Context, companyID string, roles []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		if u.CompanyID != companyID {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type memEmployees struct {
	repository.EmployeeRepository
	byID map[string]*entity.Employee
}

func (m *memEmployees) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	if e, ok := m.byID[id]; ok && e.CompanyID == companyID {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *memEmployees) GetByUserID(_ context.Context, companyID, userID string) (*entity.Employee, error) {
	for _, e := range m.byID {
		if e.CompanyID == companyID && e.UserID != nil && *e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	if _, ok := m.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	m.byID[e.ID] = &cp
	return nil
}

func (m *memEmployees) CountByDepartment(_ context.Context, companyID, departmentID string) (int, error) {
	n := 0
	for _, e := range m.byID {
		if e.CompanyID == companyID && e.DepartmentID != nil && *e.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

func (m *memEmployees) ListActive(_ context.Context, companyID string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range m.byID {
		if e.CompanyID == companyID && e.Status != entity.EmployeeTerminated {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memLeaves struct {
	repository.LeaveRepository
	byID map[string]*entity.Leave
}

func (m *memLeaves) Create(_ context.Context, l *entity.Leave) error {
	cp := *l
	m.byID[l.ID] = &cp
	return nil
}

func (m *memLeaves) Update(_ context.Context, l *entity.Leave) error {
	if _, ok := m.byID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	m.byID[l.ID] = &cp
	return nil
}

func (m *memLeaves) GetByID(_ context.Context, companyID, id string) (*entity.Leave, error) {
	if l, ok := m.byID[id]; ok && l.CompanyID == companyID {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (m *memLeaves) HasOverlap(_ context.Context, companyID, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	for _, l := range m.byID {
		if l.CompanyID != companyID || l.EmployeeID != employeeID || l.ID == excludeID {
			continue
		}
		if l.Status != entity.LeavePending && l.Status != entity.LeaveApproved {
			continue
		}
		if leave.Overlaps(l.StartDate, l.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLeaves) SumDays(_ context.Context, companyID, employeeID, leaveType string, year int, statuses []string) (int, error) {
	total := 0
	for _, l := range m.byID {
		if l.CompanyID != companyID || l.EmployeeID != employeeID || l.Type != leaveType || l.StartDate.Year() != year {
			continue
		}
		for _, s := range statuses {
			if l.Status == s {
				total += l.Days
			}
		}
	}
	return total, nil
}

type memPayrolls struct {
	repository.PayrollRepository
	byID map[string]*entity.Payroll
}

func (m *memPayrolls) Create(_ context.Context, p *entity.Payroll) error {
	for _, x := range m.byID {
		if x.CompanyID == p.CompanyID && x.EmployeeID == p.EmployeeID && x.Year == p.Year && x.Month == p.Month {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPayrolls) CreateIfAbsent(ctx context.Context, p *entity.Payroll) (bool, error) {
	if err := m.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *memPayrolls) GetByID(_ context.Context, companyID, id string) (*entity.Payroll, error) {
	if p, ok := m.byID[id]; ok && p.CompanyID == companyID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPayrolls) Update(_ context.Context, p *entity.Payroll) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPayrolls) GetByPeriod(_ context.Context, companyID, employeeID string, year, month int) (*entity.Payroll, error) {
	for _, p := range m.byID {
		if p.CompanyID == companyID && p.EmployeeID == employeeID && p.Year == year && p.Month == month {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPayrolls) PriorTaxBase(_ context.Context, companyID, employeeID string, year, month int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range m.byID {
		if p.CompanyID == companyID && p.EmployeeID == employeeID && p.Year == year && p.Month < month {
			total = total.Add(p.IncomeTaxBase)
		}
	}
	return total, nil
}

type memDepartments struct {
	repository.DepartmentRepository
	byID map[string]*entity.Department
}

func (m *memDepartments) Create(_ context.Context, d *entity.Department) error {
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDepartments) GetByID(_ context.Context, companyID, id string) (*entity.Department, error) {
	if d, ok := m.byID[id]; ok && d.CompanyID == companyID {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (m *memDepartments) Update(_ context.Context, d *entity.Department) error {
	cp := *d
	m.byID[d.ID] = &cp
	return nil
}

func (m *memDepartments) Delete(_ context.Context, _, id string) error {
	delete(m.byID, id)
	return nil
}

type memPerformance struct {
	repository.PerformanceRepository
	byID map[string]*entity.Performance
}

func (m *memPerformance) Create(_ context.Context, p *entity.Performance) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPerformance) GetByID(_ context.Context, companyID, id string) (*entity.Performance, error) {
	if p, ok := m.byID[id]; ok && p.CompanyID == companyID {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPerformance) Update(_ context.Context, p *entity.Performance) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPerformance) ListByEmployee(_ context.Context, companyID, employeeID string) ([]*entity.Performance, error) {
	var out []*entity.Performance
	for _, p := range m.byID {
		if p.CompanyID == companyID && p.EmployeeID == employeeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTrainings kilit çağrılarını sayar; participants training/employee anahtarlıdır.
// onLock kilitten hemen önce çalışır, eşzamanlı bir değişikliği taklit eder.
type memTrainings struct {
	repository.TrainingRepository
	byID         map[string]*entity.Training
	participants map[string]*entity.TrainingParticipant
	locks        int
	onLock       func(t *entity.Training)
}

func (m *memTrainings) Create(_ context.Context, t *entity.Training) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTrainings) GetByID(_ context.Context, companyID, id string) (*entity.Training, error) {
	if t, ok := m.byID[id]; ok && t.CompanyID == companyID {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *memTrainings) Update(_ context.Context, t *entity.Training) error {
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTrainings) LockForEnrolment(ctx context.Context, companyID, id string) (*entity.Training, error) {
	m.locks++
	if t, ok := m.byID[id]; ok && m.onLock != nil {
		m.onLock(t)
	}
	return m.GetByID(ctx, companyID, id)
}

func (m *memTrainings) AddParticipant(_ context.Context, p *entity.TrainingParticipant) error {
	cp := *p
	m.participants[p.TrainingID+"/"+p.EmployeeID] = &cp
	return nil
}

func (m *memTrainings) GetParticipant(_ context.Context, trainingID, employeeID string) (*entity.TrainingParticipant, error) {
	return m.participants[trainingID+"/"+employeeID], nil
}

func (m *memTrainings) CountParticipants(_ context.Context, trainingID string) (int, error) {
	n := 0
	for _, p := range m.participants {
		if p.TrainingID == trainingID {
			n++
		}
	}
	return n, nil
}

type memCompanies struct {
	repository.CompanyRepository
	byID    map[string]*entity.Company
	modules map[string]*entity.CompanyModule // companyID/module
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}

func (m *memCompanies) ListModules(_ context.Context, companyID string) ([]*entity.CompanyModule, error) {
	var out []*entity.CompanyModule
	for _, mod := range m.modules {
		if mod.CompanyID == companyID {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (m *memCompanies) UpsertModule(_ context.Context, mod *entity.CompanyModule) error {
	cp := *mod
	m.modules[mod.CompanyID+"/"+mod.ModuleName] = &cp
	return nil
}

func (m *memCompanies) HasActiveModule(_ context.Context, companyID, name string) (bool, error) {
	return m.modules[companyID+"/"+name].ActiveAt(time.Now()), nil
}

type memSettings struct {
	repository.SettingRepository
	byKey map[string]*entity.SystemSetting // companyID/key
}

func (m *memSettings) Get(_ context.Context, companyID, key string) (*entity.SystemSetting, error) {
	return m.byKey[companyID+"/"+key], nil
}

func (m *memSettings) List(_ context.Context, companyID, category string) ([]*entity.SystemSetting, error) {
	var out []*entity.SystemSetting
	for _, s := range m.byKey {
		if s.CompanyID == companyID && (category == "" || s.Category == category) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSettings) Upsert(_ context.Context, s *entity.SystemSetting) error {
	cp := *s
	m.byKey[s.CompanyID+"/"+s.Key] = &cp
	return nil
}

type memNotifications struct {
	repository.NotificationRepository
	mu   sync.Mutex
	list []*entity.Notification
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	m.list = append(m.list, &cp)
	return nil
}

func (m *memNotifications) forUser(userID string) []*entity.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notification
	for _, n := range m.list {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type memAudit struct {
	repository.AuditLogRepository
	list []*entity.AuditLog
}

func (m *memAudit) Create(_ context.Context, l *entity.AuditLog) error {
	m.list = append(m.list, l)
	return nil
}

type memActivities struct {
	repository.ActivityRepository
	list []*entity.Activity
}

func (m *memActivities) Create(_ context.Context, a *entity.Activity) error {
	m.list = append(m.list, a)
	return nil
}

type memPublisher struct {
	published []*entity.Notification
}

func (p *memPublisher) Publish(_ context.Context, n *entity.Notification) error {
	p.published = append(p.published, n)
	return nil
}

// memTx işlemi doğrudan aynı store üzerinde çalıştırır; fn hata dönerse
// store'un anlık görüntüsüne geri döner.
type memTx struct {
	store repository.Store
	pays  *memPayrolls
}

func (t *memTx) RunInTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	snapshot := make(map[string]*entity.Payroll, len(t.pays.byID))
	for k, v := range t.pays.byID {
		snapshot[k] = v
	}
	if err := fn(ctx, t.store); err != nil {
		t.pays.byID = snapshot
		return err
	}
	return nil
}

// world tek şirketli test ortamı.
type world struct {
	companyID     string
	users         *memUsers
	employees     *memEmployees
	leaves        *memLeaves
	payrolls      *memPayrolls
	departments   *memDepartments
	performance   *memPerformance
	trainings     *memTrainings
	companies     *memCompanies
	settings      *memSettings
	notifications *memNotifications
	audit         *memAudit
	activities    *memActivities
	publisher     *memPublisher
	recorder      *Recorder
	notifier      *Notifier
	settingUC     *SettingUseCase
	tx            *memTx
}

const testCompany = "c-1"

func newWorld() *world {
	w := &world{
		companyID:     testCompany,
		users:         &memUsers{byID: map[string]*entity.User{}},
		employees:     &memEmployees{byID: map[string]*entity.Employee{}},
		leaves:        &memLeaves{byID: map[string]*entity.Leave{}},
		payrolls:      &memPayrolls{byID: map[string]*entity.Payroll{}},
		departments:   &memDepartments{byID: map[string]*entity.Department{}},
		performance:   &memPerformance{byID: map[string]*entity.Performance{}},
		trainings:     &memTrainings{byID: map[string]*entity.Training{}, participants: map[string]*entity.TrainingParticipant{}},
		companies:     &memCompanies{byID: map[string]*entity.Company{}, modules: map[string]*entity.CompanyModule{}},
		settings:      &memSettings{byKey: map[string]*entity.SystemSetting{}},
		notifications: &memNotifications{},
		audit:         &memAudit{},
		activities:    &memActivities{},
		publisher:     &memPublisher{},
	}
	w.companies.byID[testCompany] = &entity.Company{ID: testCompany, Name: "Deneme A.Ş.", Status: entity.CompanyActive}
	w.recorder = NewRecorder(w.audit, w.activities, w.users, nil)
	w.notifier = NewNotifier(w.notifications, w.users, w.publisher, nil)
	w.settingUC = NewSettingUseCase(w.settings, w.recorder)
	w.tx = &memTx{pays: w.payrolls, store: repository.Store{
		Employees: w.employees,
		Payrolls:  w.payrolls,
		Trainings: w.trainings,
	}}
	return w
}

// addUser kullanıcı ve isteğe bağlı bağlı personel kaydı ekler.
func (w *world) addUser(id, name, role string) Actor {
	w.users.byID[id] = &entity.User{ID: id, CompanyID: w.companyID, Name: name, Role: role, Status: entity.UserActive}
	return Actor{UserID: id, CompanyID: w.companyID, Role: role}
}

func (w *world) addEmployee(id, userID string, hire time.Time, salary string) *entity.Employee {
	e := &entity.Employee{
		ID: id, CompanyID: w.companyID, FirstName: "Ad" + id, LastName: "Soyad",
		HireDate: hire, Status: entity.EmployeeActive, EmploymentType: entity.EmploymentFullTime,
		Salary: decimal.RequireFromString(salary),
	}
	if userID != "" {
		e.UserID = &userID
	}
	w.employees.byID[id] = e
	return e
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
