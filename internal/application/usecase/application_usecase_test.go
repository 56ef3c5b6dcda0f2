package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

type memJobs struct {
	repository.JobRepository
	byID map[string]*entity.Job
}

func (m *memJobs) GetByID(_ context.Context, companyID, id string) (*entity.Job, error) {
	if j, ok := m.byID[id]; ok && j.CompanyID == companyID {
		return j, nil
	}
	return nil, nil
}

func (m *memJobs) GetPublic(_ context.Context, id string) (*entity.Job, error) {
	return m.byID[id], nil
}

type memApplications struct {
	repository.ApplicationRepository
	byID map[string]*entity.JobApplication
}

func (m *memApplications) Create(_ context.Context, a *entity.JobApplication) error {
	for _, x := range m.byID {
		if x.JobID == a.JobID && x.Email == a.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memApplications) GetByID(_ context.Context, companyID, id string) (*entity.JobApplication, error) {
	if a, ok := m.byID[id]; ok && a.CompanyID == companyID {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *memApplications) Update(_ context.Context, a *entity.JobApplication) error {
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

type stubStorage struct{ keys []string }

func (s *stubStorage) PresignUpload(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	s.keys = append(s.keys, key)
	return "https://s3.test/" + key + "?sig=x", nil
}

func (s *stubStorage) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.test/" + key + "?dl=1", nil
}

type stubEvaluator struct {
	res *dto.CandidateEvaluation
	err error
	in  ports.CandidateInput
}

func (s *stubEvaluator) EvaluateCandidate(_ context.Context, in ports.CandidateInput) (*dto.CandidateEvaluation, error) {
	s.in = in
	return s.res, s.err
}

type recruitmentFixture struct {
	*world
	jobs  *memJobs
	apps  *memApplications
	store *stubStorage
	eval  *stubEvaluator
	uc    *ApplicationUseCase
	hr    Actor
	job   *entity.Job
}

func newRecruitmentFixture(withStorage, withEvaluator bool) *recruitmentFixture {
	w := newWorld()
	f := &recruitmentFixture{
		world: w,
		jobs:  &memJobs{byID: map[string]*entity.Job{}},
		apps:  &memApplications{byID: map[string]*entity.JobApplication{}},
		store: &stubStorage{},
		eval:  &stubEvaluator{},
	}
	f.hr = w.addUser("u-hr", "Mehmet Kaya", entity.RoleHRManager)
	f.job = &entity.Job{
		ID: "j-1", CompanyID: w.companyID, Title: "Backend Geliştirici",
		Description: "Go ile servis geliştirme", Requirements: "3+ yıl Go", Status: entity.JobOpen,
	}
	f.jobs.byID[f.job.ID] = f.job
	_ = w.companies.UpsertModule(context.Background(), &entity.CompanyModule{
		CompanyID: w.companyID, ModuleName: entity.ModuleRecruitment, IsActive: true,
	})

	modules := NewModuleService(w.companies, w.recorder)
	jobUC := NewJobUseCase(f.jobs, nil, modules, w.recorder)
	var storage ports.FileStorage
	if withStorage {
		storage = f.store
	}
	var evaluator ports.CandidateEvaluator
	if withEvaluator {
		evaluator = f.eval
	}
	f.uc = NewApplicationUseCase(f.apps, jobUC, storage, evaluator, w.notifier, w.recorder, nil)
	return f
}

func applyRequest(email string) dto.ApplyRequest {
	return dto.ApplyRequest{
		FirstName: "elif", LastName: "ÇELİK", Email: email,
		CoverLetter: "Merhaba", ResumeText: "5 yıl Go deneyimi",
	}
}

func TestApplication_Apply(t *testing.T) {
	f := newRecruitmentFixture(false, false)
	ctx := context.Background()

	res, err := f.uc.Apply(ctx, f.job.ID, applyRequest("Elif@Example.com"))
	require.NoError(t, err)

	app := f.apps.byID[res.ID]
	require.NotNil(t, app)
	assert.Equal(t, "Elif", app.FirstName)
	assert.Equal(t, "Çelik", app.LastName)
	assert.Equal(t, "elif@example.com", app.Email)
	assert.Equal(t, entity.StageNew, app.Stage)
	assert.Len(t, f.notifications.forUser("u-hr"), 1)

	_, err = f.uc.Apply(ctx, f.job.ID, applyRequest("elif@example.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestApplication_Apply_Reddedilir(t *testing.T) {
	f := newRecruitmentFixture(false, false)
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, "yok", applyRequest("a@b.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	foreign := applyRequest("a@b.com")
	foreign.CVKey = "cv/baska-sirket/j-9/x.pdf"
	_, err = f.uc.Apply(ctx, f.job.ID, foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := applyRequest("a@b.com")
	empty.ResumeText = ""
	_, err = f.uc.Apply(ctx, f.job.ID, empty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.job.Status = entity.JobClosed
	_, err = f.uc.Apply(ctx, f.job.ID, applyRequest("a@b.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplication_Apply_ModulKapaliysaIlanGorunmez(t *testing.T) {
	f := newRecruitmentFixture(false, false)
	_ = f.companies.UpsertModule(context.Background(), &entity.CompanyModule{
		CompanyID: f.companyID, ModuleName: entity.ModuleRecruitment, IsActive: false,
	})

	_, err := f.uc.Apply(context.Background(), f.job.ID, applyRequest("a@b.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplication_CVUploadURL(t *testing.T) {
	ctx := context.Background()

	_, err := newRecruitmentFixture(false, false).uc.CVUploadURL(ctx, "j-1",
		dto.CVUploadRequest{FileName: "cv.pdf", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrConflict, "depo yoksa")

	f := newRecruitmentFixture(true, false)
	out, err := f.uc.CVUploadURL(ctx, f.job.ID, dto.CVUploadRequest{FileName: "cv.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Key, "cv/"+f.companyID+"/"+f.job.ID+"/"))
	assert.True(t, strings.HasSuffix(out.Key, ".pdf"))
	assert.Contains(t, out.UploadURL, out.Key)

	_, err = f.uc.CVUploadURL(ctx, f.job.ID, dto.CVUploadRequest{FileName: "cv.exe", ContentType: "application/x-msdownload"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CVUploadURL(ctx, f.job.ID, dto.CVUploadRequest{FileName: "cv.docx", ContentType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "uzantı uyuşmazlığı")

	// Üretilen anahtar başvuruda kabul edilir.
	req := applyRequest("cv@aday.com")
	req.ResumeText = ""
	req.CVKey = out.Key
	_, err = f.uc.Apply(ctx, f.job.ID, req)
	assert.NoError(t, err)
}

func TestApplication_Evaluate(t *testing.T) {
	f := newRecruitmentFixture(false, true)
	ctx := context.Background()
	res, err := f.uc.Apply(ctx, f.job.ID, applyRequest("elif@example.com"))
	require.NoError(t, err)

	f.eval.res = &dto.CandidateEvaluation{
		Score: 130, Summary: "Güçlü aday", Strengths: []string{"Go"}, Concerns: []string{"Kubernetes"}, Provider: "anthropic",
	}
	app, err := f.uc.Evaluate(ctx, f.hr, res.ID)
	require.NoError(t, err)
	require.NotNil(t, app.AIScore)
	assert.Equal(t, 100, *app.AIScore)
	assert.Equal(t, "Güçlü aday", app.AISummary)
	assert.NotNil(t, app.EvaluatedAt)
	assert.Equal(t, "Backend Geliştirici", f.eval.in.JobTitle)
	assert.Equal(t, "Elif Çelik", f.eval.in.CandidateName)

	f.eval.err = errors.New("AI: zaman aşımı")
	_, err = f.uc.Evaluate(ctx, f.hr, res.ID)
	assert.Error(t, err)
}

func TestApplication_Evaluate_SaglayiciYok(t *testing.T) {
	f := newRecruitmentFixture(false, false)
	_, err := f.uc.Evaluate(context.Background(), f.hr, "a-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApplication_Update_AsamaKurali(t *testing.T) {
	f := newRecruitmentFixture(false, false)
	ctx := context.Background()
	res, err := f.uc.Apply(ctx, f.job.ID, applyRequest("elif@example.com"))
	require.NoError(t, err)

	hired := entity.StageHired
	_, err = f.uc.Update(ctx, f.hr, res.ID, dto.UpdateApplicationRequest{Stage: &hired})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	screening := entity.StageScreening
	app, err := f.uc.Update(ctx, f.hr, res.ID, dto.UpdateApplicationRequest{Stage: &screening})
	require.NoError(t, err)
	assert.Equal(t, entity.StageScreening, app.Stage)
	require.NotEmpty(t, f.activities.list)
	assert.Contains(t, f.activities.list[len(f.activities.list)-1].Description, "screening")
}
