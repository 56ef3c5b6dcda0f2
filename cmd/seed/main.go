// seed yapılandırılmış depoya (postgres ya da mongo) örnek bir şirket yükler.
// Aynı vergi numaralı şirket zaten varsa hiçbir şey yapmaz.
//
// Kullanım: go run ./cmd/seed
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/internal/infrastructure/mongodb"
	"github.com/jhoicas/ik-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/ik-portal/pkg/config"
	"github.com/jhoicas/ik-portal/pkg/logger"
	"github.com/jhoicas/ik-portal/pkg/tckn"
)

//go:embed demo.json
var demoJSON []byte

type demoData struct {
	Company struct {
		Name      string `json:"name"`
		TaxNumber string `json:"tax_number"`
		TaxOffice string `json:"tax_office"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	} `json:"company"`
	Modules []string `json:"modules"`
	Admin   struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	} `json:"admin"`
	Departments []struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"departments"`
	Employees []demoEmployee `json:"employees"`
}

type demoEmployee struct {
	Number         string `json:"number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	NationalID     string `json:"national_id"`
	Email          string `json:"email"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	HireDate       string `json:"hire_date"`
	Salary         string `json:"salary"`
	IBAN           string `json:"iban"`
	EmploymentType string `json:"employment_type"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("yapılandırma yüklenemedi: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name}).Component("seed")

	var data demoData
	if err := json.Unmarshal(demoJSON, &data); err != nil {
		log.Fatal().Err(err).Msg("demo verisi okunamadı")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, tx, closeFn, err := open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("veritabanı bağlantısı")
	}
	defer closeFn()

	existing, err := store.Companies.GetByTaxNumber(ctx, data.Company.TaxNumber)
	if err != nil {
		log.Fatal().Err(err).Msg("şirket sorgusu")
	}
	if existing != nil {
		log.Info().Str("company_id", existing.ID).Msg("demo şirket zaten mevcut, atlanıyor")
		return
	}

	var companyID string
	err = tx.RunInTx(ctx, func(ctx context.Context, s repository.Store) error {
		var err error
		companyID, err = seed(ctx, s, data, time.Now().UTC())
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("demo verisi yüklenemedi")
	}
	log.Info().
		Str("company_id", companyID).
		Str("admin", data.Admin.Email).
		Int("employees", len(data.Employees)).
		Msg("demo şirket oluşturuldu")
}

func open(ctx context.Context, cfg *config.Config) (repository.Store, repository.TxRunner, func(), error) {
	if cfg.Storage.Driver == config.StorageMongo {
		client, db, err := mongodb.Open(ctx, cfg.Mongo)
		if err != nil {
			return repository.Store{}, nil, nil, err
		}
		return mongodb.NewStore(db), mongodb.NewTxRunner(client, db), func() { _ = client.Disconnect(context.Background()) }, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return repository.Store{}, nil, nil, err
	}
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return repository.Store{}, nil, nil, err
	}
	return postgres.NewStore(pool), postgres.NewTxRunner(pool), pool.Close, nil
}

func seed(ctx context.Context, s repository.Store, data demoData, now time.Time) (string, error) {
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      data.Company.Name,
		TaxNumber: data.Company.TaxNumber,
		TaxOffice: data.Company.TaxOffice,
		Address:   data.Company.Address,
		Phone:     data.Company.Phone,
		Email:     data.Company.Email,
		Status:    entity.CompanyActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tckn.ValidateVKN(company.TaxNumber); err != nil {
		return "", err
	}
	if err := s.Companies.Create(ctx, company); err != nil {
		return "", fmt.Errorf("şirket: %w", err)
	}

	for _, name := range data.Modules {
		if !entity.IsValidModule(name) {
			return "", fmt.Errorf("bilinmeyen modül %q", name)
		}
		m := &entity.CompanyModule{
			ID: uuid.New().String(), CompanyID: company.ID, ModuleName: name,
			IsActive: true, ActivatedAt: now, CreatedAt: now, UpdatedAt: now,
		}
		if err := s.Companies.UpsertModule(ctx, m); err != nil {
			return "", fmt.Errorf("modül %s: %w", name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	admin := &entity.User{
		ID: uuid.New().String(), CompanyID: company.ID, Email: data.Admin.Email,
		PasswordHash: string(hash), Name: data.Admin.Name, Role: entity.RoleAdmin,
		Status: entity.UserActive, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.Users.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("yönetici: %w", err)
	}

	deptIDs := make(map[string]string, len(data.Departments))
	for _, d := range data.Departments {
		dept := &entity.Department{
			ID: uuid.New().String(), CompanyID: company.ID, Code: d.Code, Name: d.Name,
			Description: d.Description, CreatedAt: now, UpdatedAt: now,
		}
		if err := s.Departments.Create(ctx, dept); err != nil {
			return "", fmt.Errorf("departman %s: %w", d.Code, err)
		}
		deptIDs[d.Code] = dept.ID
	}

	for _, d := range data.Employees {
		e, err := toEmployee(d, company.ID, deptIDs, now)
		if err != nil {
			return "", fmt.Errorf("personel %s: %w", d.Number, err)
		}
		if err := s.Employees.Create(ctx, e); err != nil {
			return "", fmt.Errorf("personel %s: %w", d.Number, err)
		}
	}

	for _, def := range entity.DefaultSettings {
		st := def
		st.ID = uuid.New().String()
		st.CompanyID = company.ID
		st.UpdatedBy = admin.ID
		st.UpdatedAt = now
		if err := s.Settings.Upsert(ctx, &st); err != nil {
			return "", fmt.Errorf("ayar %s: %w", st.Key, err)
		}
	}
	return company.ID, nil
}

func toEmployee(d demoEmployee, companyID string, deptIDs map[string]string, now time.Time) (*entity.Employee, error) {
	if err := tckn.ValidateTCKN(d.NationalID); err != nil {
		return nil, err
	}
	hire, err := time.Parse(time.DateOnly, d.HireDate)
	if err != nil {
		return nil, err
	}
	salary, err := decimal.NewFromString(d.Salary)
	if err != nil {
		return nil, err
	}
	e := &entity.Employee{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		EmployeeNumber: d.Number,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		NationalID:     d.NationalID,
		Email:          d.Email,
		Position:       d.Position,
		HireDate:       hire,
		EmploymentType: entity.EmploymentFullTime,
		Status:         entity.EmployeeActive,
		Salary:         salary,
		IBAN:           tckn.NormalizeIBAN(d.IBAN),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.EmploymentType != "" {
		e.EmploymentType = d.EmploymentType
	}
	if id, ok := deptIDs[d.Department]; ok {
		e.DepartmentID = &id
	}
	return e, nil
}
