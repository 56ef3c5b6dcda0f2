package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

// JobUseCase iş ilanları.
type JobUseCase struct {
	repo        repository.JobRepository
	departments repository.DepartmentRepository
	modules     moduleChecker
	recorder    *Recorder
}

type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// NewJobUseCase kurucu. modules herkese açık uçlarda işe alım modülünü denetler.
func NewJobUseCase(repo repository.JobRepository, departments repository.DepartmentRepository, modules moduleChecker, recorder *Recorder) *JobUseCase {
	return &JobUseCase{repo: repo, departments: departments, modules: modules, recorder: recorder}
}

// List şirket ilanları.
func (uc *JobUseCase) List(ctx context.Context, a Actor, q dto.JobQuery) (*dto.ListResponse[*entity.Job], error) {
	if q.Status != "" && !entity.IsValidJobStatus(q.Status) {
		return nil, invalid("geçersiz ilan durumu: %s", q.Status)
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.JobFilter{Page: toPage(p), CompanyID: a.CompanyID, Status: q.Status, DepartmentID: q.DepartmentID})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID ilan; yoksa ErrNotFound.
func (uc *JobUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Job, error) {
	j, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return j, nil
}

// Create ilan açar. Durum verilmezse taslaktır.
func (uc *JobUseCase) Create(ctx context.Context, a Actor, in dto.JobRequest) (*entity.Job, error) {
	ts := now()
	j := &entity.Job{ID: uuid.New().String(), CompanyID: a.CompanyID, CreatedBy: a.UserID, CreatedAt: ts, UpdatedAt: ts}
	if err := uc.apply(ctx, a, j, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, j); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "job", EntityID: j.ID,
		Changes:     map[string]any{"title": j.Title, "status": j.Status},
		Description: fmt.Sprintf("%q ilanını oluşturdu", j.Title)})
	return j, nil
}

// Update ilanı günceller.
func (uc *JobUseCase) Update(ctx context.Context, a Actor, id string, in dto.JobRequest) (*entity.Job, error) {
	j, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	prev := *j
	if err := uc.apply(ctx, a, j, in); err != nil {
		return nil, err
	}
	j.UpdatedAt = now()
	if err := uc.repo.Update(ctx, j); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("title", prev.Title, j.Title)
	changes.add("status", prev.Status, j.Status)
	changes.add("location", prev.Location, j.Location)
	ev := Event{Action: entity.ActionUpdate, EntityType: "job", EntityID: j.ID, Changes: changes}
	if prev.Status != j.Status && j.Status == entity.JobOpen {
		ev.Description = fmt.Sprintf("%q ilanını yayına aldı", j.Title)
	}
	uc.recorder.Record(ctx, a, ev)
	return j, nil
}

// Delete ilanı siler; başvurular depoda ilanla birlikte silinir.
func (uc *JobUseCase) Delete(ctx context.Context, a Actor, id string) error {
	j, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, j.ID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "job", EntityID: j.ID,
		Changes: map[string]any{"title": j.Title}})
	return nil
}

// ListPublic şirketin başvuru kabul eden ilanları. İşe alım modülü kapalıysa ErrNotFound.
func (uc *JobUseCase) ListPublic(ctx context.Context, companyID string, p dto.PageRequest) (*dto.ListResponse[dto.PublicJobResponse], error) {
	if err := uc.recruitmentActive(ctx, companyID); err != nil {
		return nil, err
	}
	p = normalized(p)
	list, total, err := uc.repo.List(ctx, repository.JobFilter{Page: toPage(p), CompanyID: companyID, Status: entity.JobOpen})
	if err != nil {
		return nil, err
	}
	ts := now()
	out := make([]dto.PublicJobResponse, 0, len(list))
	for _, j := range list {
		if !j.AcceptsApplications(ts) {
			total--
			continue
		}
		out = append(out, toPublicJob(j))
	}
	return dto.NewListResponse(out, p, total), nil
}

// GetPublic başvuru kabul eden tek ilan.
func (uc *JobUseCase) GetPublic(ctx context.Context, id string) (*dto.PublicJobResponse, error) {
	j, err := uc.openJob(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toPublicJob(j)
	return &out, nil
}

// openJob ilan yoksa, kapalıysa ya da modül pasifse ErrNotFound döner.
func (uc *JobUseCase) openJob(ctx context.Context, id string) (*entity.Job, error) {
	j, err := uc.repo.GetPublic(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if j == nil || !j.AcceptsApplications(now()) {
		return nil, domain.ErrNotFound
	}
	if err := uc.recruitmentActive(ctx, j.CompanyID); err != nil {
		return nil, err
	}
	return j, nil
}

func (uc *JobUseCase) recruitmentActive(ctx context.Context, companyID string) error {
	if uc.modules == nil {
		return nil
	}
	ok, err := uc.modules.HasActiveModule(ctx, companyID, entity.ModuleRecruitment)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *JobUseCase) apply(ctx context.Context, a Actor, j *entity.Job, in dto.JobRequest) error {
	title := sanitize.Text(in.Title)
	if title == "" {
		return invalid("ilan başlığı zorunludur")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.JobDraft
	}
	if !entity.IsValidJobStatus(status) {
		return invalid("geçersiz ilan durumu: %s", status)
	}
	typ := strings.TrimSpace(in.EmploymentType)
	if typ == "" {
		typ = entity.EmploymentFullTime
	}
	if !entity.IsValidEmploymentType(typ) {
		return invalid("geçersiz çalışma tipi: %s", typ)
	}
	if (in.SalaryMin != nil && in.SalaryMin.IsNegative()) || (in.SalaryMax != nil && in.SalaryMax.IsNegative()) {
		return invalid("maaş aralığı negatif olamaz")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && in.SalaryMin.GreaterThan(*in.SalaryMax) {
		return invalid("en düşük maaş en yüksek maaştan büyük olamaz")
	}
	deptID := emptyToNil(in.DepartmentID)
	if deptID != nil {
		d, err := uc.departments.GetByID(ctx, a.CompanyID, *deptID)
		if err != nil {
			return err
		}
		if d == nil {
			return invalid("departman bulunamadı")
		}
	}
	var closes *time.Time
	if in.ClosesAt != nil {
		t := in.ClosesAt.UTC()
		closes = &t
	}
	j.Title = title
	j.Description = sanitize.Text(in.Description)
	j.Requirements = sanitize.Text(in.Requirements)
	j.DepartmentID = deptID
	j.Location = sanitize.Text(in.Location)
	j.EmploymentType = typ
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.Status = status
	j.ClosesAt = closes
	return nil
}

func toPublicJob(j *entity.Job) dto.PublicJobResponse {
	return dto.PublicJobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Requirements:   j.Requirements,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		ClosesAt:       j.ClosesAt,
	}
}
