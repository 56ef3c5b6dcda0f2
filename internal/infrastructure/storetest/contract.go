//go:build integration

// Package storetest iki kalıcılık sürücüsünün (postgres, mongo) aynı
// repository sözleşmesini sağladığını doğrulayan ortak entegrasyon senaryolarını içerir.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// Run tüm senaryoları alt test olarak çalıştırır. Her senaryo kendi şirketini açar.
func Run(t *testing.T, s repository.Store, tx repository.TxRunner) {
	t.Run("Company", func(t *testing.T) { testCompany(t, s) })
	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("Employees", func(t *testing.T) { testEmployees(t, s) })
	t.Run("Leaves", func(t *testing.T) { testLeaves(t, s) })
	t.Run("Payrolls", func(t *testing.T) { testPayrolls(t, s) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, s, tx) })
	t.Run("TrainingEnrolment", func(t *testing.T) { testTrainingEnrolment(t, s, tx) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, s) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, s) })
	t.Run("Analytics", func(t *testing.T) { testAnalytics(t, s) })
}

var vknSeq int64 = time.Now().UnixNano() % 1_000_000

// now Mongo'nun milisaniye hassasiyetine yuvarlanmış UTC zaman döner.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCompany(t *testing.T, s repository.Store) *entity.Company {
	t.Helper()
	vknSeq++
	ts := now()
	c := &entity.Company{
		ID:        uuid.NewString(),
		Name:      "Deneme A.Ş.",
		TaxNumber: "9" + leftPad(vknSeq, 9),
		TaxOffice: "Kadıköy",
		Status:    entity.CompanyActive,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	require.NoError(t, s.Companies.Create(context.Background(), c))
	return c
}

func newUser(t *testing.T, s repository.Store, companyID, role string) *entity.User {
	t.Helper()
	ts := now()
	u := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Email:        uuid.NewString()[:8] + "@deneme.com.tr",
		PasswordHash: "$2a$10$hash",
		Name:         "Ayşe Yılmaz",
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func newEmployee(t *testing.T, s repository.Store, companyID, number, status string) *entity.Employee {
	t.Helper()
	ts := now()
	e := &entity.Employee{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		EmployeeNumber: number,
		FirstName:      "Zeynep",
		LastName:       "Şahin",
		NationalID:     "1234567" + number,
		HireDate:       day(2020, 1, 15),
		EmploymentType: entity.EmploymentFullTime,
		Status:         status,
		Salary:         decimal.RequireFromString("50000.00"),
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	require.NoError(t, s.Employees.Create(context.Background(), e))
	return e
}

func leftPad(n int64, width int) string {
	out := []byte{}
	for i := 0; i < width; i++ {
		out = append([]byte{byte('0' + n%10)}, out...)
		n /= 10
	}
	return string(out)
}

func testCompany(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)

	got, err := s.Companies.GetByTaxNumber(ctx, c.TaxNumber)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	missing, err := s.Companies.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing, "bulunamayan kayıt nil, nil döner")

	dup := *c
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, s.Companies.Create(ctx, &dup), domain.ErrDuplicate)

	ts := now()
	past := ts.Add(-time.Hour)
	require.NoError(t, s.Companies.UpsertModule(ctx, &entity.CompanyModule{
		ID: uuid.NewString(), CompanyID: c.ID, ModuleName: entity.ModulePayroll,
		IsActive: true, ActivatedAt: ts, CreatedAt: ts, UpdatedAt: ts,
	}))
	require.NoError(t, s.Companies.UpsertModule(ctx, &entity.CompanyModule{
		ID: uuid.NewString(), CompanyID: c.ID, ModuleName: entity.ModuleTraining,
		IsActive: true, ActivatedAt: ts, ExpiresAt: &past, CreatedAt: ts, UpdatedAt: ts,
	}))

	ok, err := s.Companies.HasActiveModule(ctx, c.ID, entity.ModulePayroll)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Companies.HasActiveModule(ctx, c.ID, entity.ModuleTraining)
	require.NoError(t, err)
	assert.False(t, ok, "süresi geçmiş modül etkin sayılmaz")
	ok, err = s.Companies.HasActiveModule(ctx, c.ID, entity.ModuleRecruitment)
	require.NoError(t, err)
	assert.False(t, ok)

	// Aynı modül ikinci kez yazılırsa güncellenir.
	require.NoError(t, s.Companies.UpsertModule(ctx, &entity.CompanyModule{
		ID: uuid.NewString(), CompanyID: c.ID, ModuleName: entity.ModulePayroll,
		IsActive: false, ActivatedAt: ts, CreatedAt: ts, UpdatedAt: ts,
	}))
	mods, err := s.Companies.ListModules(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, mods, 2)
	ok, err = s.Companies.HasActiveModule(ctx, c.ID, entity.ModulePayroll)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testUsers(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	hr := newUser(t, s, c.ID, entity.RoleHRManager)
	newUser(t, s, c.ID, entity.RoleEmployee)

	got, err := s.Users.GetByEmail(ctx, hr.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, hr.ID, got.ID)
	assert.Equal(t, hr.PasswordHash, got.PasswordHash)

	dup := *hr
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, s.Users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	reviewers, err := s.Users.ListByRoles(ctx, c.ID, []string{entity.RoleAdmin, entity.RoleHRManager})
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, hr.ID, reviewers[0].ID)
}

func testEmployees(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	u := newUser(t, s, c.ID, entity.RoleEmployee)
	e := newEmployee(t, s, c.ID, "0001", entity.EmployeeActive)
	newEmployee(t, s, c.ID, "0002", entity.EmployeeTerminated)

	e.UserID = &u.ID
	require.NoError(t, s.Employees.Update(ctx, e))

	got, err := s.Employees.GetByUserID(ctx, c.ID, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.ID, got.ID)
	assert.True(t, got.Salary.Equal(e.Salary))
	assert.True(t, got.HireDate.Equal(e.HireDate))

	other := newCompany(t, s)
	foreign, err := s.Employees.GetByID(ctx, other.ID, e.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign, "başka şirketin personeli görünmez")

	active, err := s.Employees.ListActive(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, e.ID, active[0].ID)

	list, total, err := s.Employees.List(ctx, repository.EmployeeFilter{
		CompanyID: c.ID, Search: "0002", Page: repository.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, entity.EmployeeTerminated, list[0].Status)
}

func testLeaves(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	u := newUser(t, s, c.ID, entity.RoleEmployee)
	e := newEmployee(t, s, c.ID, "0001", entity.EmployeeActive)

	mk := func(start, end time.Time, days int, status string) *entity.Leave {
		ts := now()
		l := &entity.Leave{
			ID: uuid.NewString(), CompanyID: c.ID, EmployeeID: e.ID, Type: entity.LeaveAnnual,
			StartDate: start, EndDate: end, Days: days, Status: status,
			CreatedBy: u.ID, CreatedAt: ts, UpdatedAt: ts,
		}
		require.NoError(t, s.Leaves.Create(ctx, l))
		return l
	}
	approved := mk(day(2026, 3, 2), day(2026, 3, 6), 5, entity.LeaveApproved)
	mk(day(2026, 4, 6), day(2026, 4, 7), 2, entity.LeavePending)
	mk(day(2026, 5, 4), day(2026, 5, 8), 5, entity.LeaveRejected)

	overlap, err := s.Leaves.HasOverlap(ctx, c.ID, e.ID, day(2026, 3, 6), day(2026, 3, 9), "")
	require.NoError(t, err)
	assert.True(t, overlap, "uç günler kesişir")

	overlap, err = s.Leaves.HasOverlap(ctx, c.ID, e.ID, day(2026, 3, 6), day(2026, 3, 9), approved.ID)
	require.NoError(t, err)
	assert.False(t, overlap, "kendi kaydı hariç tutulur")

	overlap, err = s.Leaves.HasOverlap(ctx, c.ID, e.ID, day(2026, 5, 5), day(2026, 5, 6), "")
	require.NoError(t, err)
	assert.False(t, overlap, "reddedilen izin çakışma sayılmaz")

	used, err := s.Leaves.SumDays(ctx, c.ID, e.ID, entity.LeaveAnnual, 2026, []string{entity.LeaveApproved})
	require.NoError(t, err)
	assert.Equal(t, 5, used)
	all, err := s.Leaves.SumDays(ctx, c.ID, e.ID, entity.LeaveAnnual, 2026, []string{entity.LeaveApproved, entity.LeavePending})
	require.NoError(t, err)
	assert.Equal(t, 7, all)
	none, err := s.Leaves.SumDays(ctx, c.ID, e.ID, entity.LeaveAnnual, 2025, []string{entity.LeaveApproved})
	require.NoError(t, err)
	assert.Zero(t, none)
}

func newPayroll(companyID, employeeID string, year, month int, taxBase string) *entity.Payroll {
	ts := now()
	gross := decimal.RequireFromString("50000.00")
	return &entity.Payroll{
		ID: uuid.NewString(), CompanyID: companyID, EmployeeID: employeeID, Year: year, Month: month,
		BaseSalary: gross, Gross: gross, SGKBase: gross,
		IncomeTaxBase: decimal.RequireFromString(taxBase), CumulativeTaxBase: decimal.RequireFromString(taxBase),
		Net: decimal.RequireFromString("38000.00"), EmployerCost: decimal.RequireFromString("58875.00"),
		Status: entity.PayrollDraft, CreatedAt: ts, UpdatedAt: ts,
	}
}

func testPayrolls(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	e := newEmployee(t, s, c.ID, "0001", entity.EmployeeActive)

	require.NoError(t, s.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 1, "42500.00")))
	require.NoError(t, s.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 2, "42500.00")))
	require.NoError(t, s.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2025, 12, "40000.00")))

	err := s.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 2, "1.00"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "aynı dönem ikinci bordro")

	created, err := s.Payrolls.CreateIfAbsent(ctx, newPayroll(c.ID, e.ID, 2026, 2, "1.00"))
	require.NoError(t, err)
	assert.False(t, created, "var olan dönem atlanır")

	prior, err := s.Payrolls.PriorTaxBase(ctx, c.ID, e.ID, 2026, 3)
	require.NoError(t, err)
	assert.True(t, prior.Equal(decimal.RequireFromString("85000")), prior.String())

	prior, err = s.Payrolls.PriorTaxBase(ctx, c.ID, e.ID, 2026, 1)
	require.NoError(t, err)
	assert.True(t, prior.IsZero(), "yıl başında kümülatif matrah sıfırdır")

	p, err := s.Payrolls.GetByPeriod(ctx, c.ID, e.ID, 2026, 2)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Net.Equal(decimal.RequireFromString("38000")))

	period, err := s.Payrolls.ListByPeriod(ctx, c.ID, 2026, 1)
	require.NoError(t, err)
	assert.Len(t, period, 1)
}

var errBoom = errors.New("boom")

func testTxRollback(t *testing.T, s repository.Store, tx repository.TxRunner) {
	ctx := context.Background()
	c := newCompany(t, s)
	e := newEmployee(t, s, c.ID, "0001", entity.EmployeeActive)

	err := tx.RunInTx(ctx, func(ctx context.Context, ts repository.Store) error {
		if err := ts.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 6, "42500.00")); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	p, err := s.Payrolls.GetByPeriod(ctx, c.ID, e.ID, 2026, 6)
	require.NoError(t, err)
	assert.Nil(t, p, "hata dönen işlem geri alınır")

	err = tx.RunInTx(ctx, func(ctx context.Context, ts repository.Store) error {
		return ts.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 6, "42500.00"))
	})
	require.NoError(t, err)
	p, err = s.Payrolls.GetByPeriod(ctx, c.ID, e.ID, 2026, 6)
	require.NoError(t, err)
	assert.NotNil(t, p)

	// Çakışan kayıt atlandıktan sonra aynı işlem yazmaya devam edebilir.
	err = tx.RunInTx(ctx, func(ctx context.Context, ts repository.Store) error {
		created, err := ts.Payrolls.CreateIfAbsent(ctx, newPayroll(c.ID, e.ID, 2026, 6, "1.00"))
		if err != nil {
			return err
		}
		assert.False(t, created)
		return ts.Payrolls.Create(ctx, newPayroll(c.ID, e.ID, 2026, 7, "42500.00"))
	})
	require.NoError(t, err)
	p, err = s.Payrolls.GetByPeriod(ctx, c.ID, e.ID, 2026, 7)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

var errFull = errors.New("kontenjan dolu")

// testTrainingEnrolment eşzamanlı kayıtlarda kontenjanın aşılmadığını doğrular.
func testTrainingEnrolment(t *testing.T, s repository.Store, tx repository.TxRunner) {
	ctx := context.Background()
	c := newCompany(t, s)
	tr := &entity.Training{
		ID: uuid.NewString(), CompanyID: c.ID, Title: "Yangın Tatbikatı",
		StartDate: day(2026, 11, 2), EndDate: day(2026, 11, 2), Capacity: 2,
		Status: entity.TrainingPlanned, CreatedAt: now(), UpdatedAt: now(),
	}
	require.NoError(t, s.Trainings.Create(ctx, tr))

	locked, err := s.Trainings.LockForEnrolment(ctx, c.ID, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, locked)
	other := newCompany(t, s)
	locked, err = s.Trainings.LockForEnrolment(ctx, other.ID, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, locked, "başka şirketin eğitimi kilitlenemez")

	const workers = 6
	employees := make([]*entity.Employee, workers)
	for i := range employees {
		employees[i] = newEmployee(t, s, c.ID, leftPad(int64(i+1), 4), entity.EmployeeActive)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i, e := range employees {
		wg.Add(1)
		go func(i int, e *entity.Employee) {
			defer wg.Done()
			errs[i] = tx.RunInTx(ctx, func(ctx context.Context, ts repository.Store) error {
				l, err := ts.Trainings.LockForEnrolment(ctx, c.ID, tr.ID)
				if err != nil {
					return err
				}
				n, err := ts.Trainings.CountParticipants(ctx, tr.ID)
				if err != nil {
					return err
				}
				if n >= l.Capacity {
					return errFull
				}
				return ts.Trainings.AddParticipant(ctx, &entity.TrainingParticipant{
					ID: uuid.NewString(), CompanyID: c.ID, TrainingID: tr.ID, EmployeeID: e.ID, EnrolledAt: now(),
				})
			})
		}(i, e)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, errFull)
	}
	assert.Equal(t, 2, ok)
	n, err := s.Trainings.CountParticipants(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func testNotifications(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	u := newUser(t, s, c.ID, entity.RoleEmployee)

	var first string
	for i := 0; i < 3; i++ {
		n := &entity.Notification{
			ID: uuid.NewString(), CompanyID: c.ID, UserID: u.ID, Type: entity.NotificationLeave,
			Title: "İzin talebiniz onaylandı", CreatedAt: now(),
		}
		require.NoError(t, s.Notifications.Create(ctx, n))
		if i == 0 {
			first = n.ID
		}
	}

	unread, err := s.Notifications.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	ok, err := s.Notifications.MarkRead(ctx, u.ID, first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Notifications.MarkRead(ctx, uuid.NewString(), first)
	require.NoError(t, err)
	assert.False(t, ok, "başkasının bildirimi işaretlenemez")

	n, err := s.Notifications.MarkAllRead(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	unread, err = s.Notifications.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	deleted, err := s.Notifications.Delete(ctx, u.ID, first)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, total, err := s.Notifications.List(ctx, repository.NotificationFilter{UserID: u.ID, Page: repository.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func testSettings(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)

	set := func(value string) {
		require.NoError(t, s.Settings.Upsert(ctx, &entity.SystemSetting{
			ID: uuid.NewString(), CompanyID: c.ID, Key: entity.SettingMinimumWage, Value: value,
			Category: entity.SettingCategoryPayroll, UpdatedBy: "u-1", UpdatedAt: now(),
		}))
	}
	set("26005.50")
	set("28000.00")

	got, err := s.Settings.Get(ctx, c.ID, entity.SettingMinimumWage)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "28000.00", got.Value)

	list, err := s.Settings.List(ctx, c.ID, entity.SettingCategoryLeave)
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err := s.Settings.Delete(ctx, c.ID, entity.SettingMinimumWage)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = s.Settings.Get(ctx, c.ID, entity.SettingMinimumWage)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testAnalytics(t *testing.T, s repository.Store) {
	ctx := context.Background()
	c := newCompany(t, s)
	newEmployee(t, s, c.ID, "0001", entity.EmployeeActive)
	newEmployee(t, s, c.ID, "0002", entity.EmployeeActive)
	newEmployee(t, s, c.ID, "0003", entity.EmployeeOnLeave)
	newEmployee(t, s, c.ID, "0004", entity.EmployeeTerminated)

	h, err := s.Analytics.GetHeadcount(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.Headcount{Total: 3, Active: 2, OnLeave: 1}, h)

	byDept, err := s.Analytics.GetHeadcountByDepartment(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, byDept, 1)
	assert.Equal(t, 3, byDept[0].Count)
	assert.Empty(t, byDept[0].DepartmentID)
}
