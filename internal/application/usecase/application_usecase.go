package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/logger"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

const (
	cvUploadTTL   = 15 * time.Minute
	cvDownloadTTL = 10 * time.Minute
	evaluateLimit = 30 * time.Second
)

var cvContentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// ApplicationUseCase aday başvuruları ve LLM değerlendirmesi.
type ApplicationUseCase struct {
	repo      repository.ApplicationRepository
	jobs      *JobUseCase
	storage   ports.FileStorage
	evaluator ports.CandidateEvaluator
	notifier  *Notifier
	recorder  *Recorder
	log       *logger.Logger
}

// NewApplicationUseCase kurucu. storage ve evaluator nil olabilir; ilgili uçlar hata döner.
func NewApplicationUseCase(
	repo repository.ApplicationRepository,
	jobs *JobUseCase,
	storage ports.FileStorage,
	evaluator ports.CandidateEvaluator,
	notifier *Notifier,
	recorder *Recorder,
	log *logger.Logger,
) *ApplicationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ApplicationUseCase{repo: repo, jobs: jobs, storage: storage, evaluator: evaluator,
		notifier: notifier, recorder: recorder, log: log.Component("applications")}
}

// Apply herkese açık başvuru. Aynı e-posta ile ikinci başvuru ErrDuplicate döner.
func (uc *ApplicationUseCase) Apply(ctx context.Context, jobID string, in dto.ApplyRequest) (*dto.ApplyResponse, error) {
	job, err := uc.jobs.openJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	first, last := trtext.Name(sanitize.Text(in.FirstName)), trtext.Name(sanitize.Text(in.LastName))
	if first == "" || last == "" {
		return nil, invalid("ad ve soyad zorunludur")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	cvKey := strings.TrimSpace(in.CVKey)
	if cvKey != "" && !strings.HasPrefix(cvKey, cvPrefix(job)) {
		return nil, invalid("geçersiz CV anahtarı")
	}
	resume := sanitize.Text(in.ResumeText)
	if resume == "" && cvKey == "" {
		return nil, invalid("özgeçmiş metni ya da CV dosyası gereklidir")
	}
	ts := now()
	app := &entity.JobApplication{
		ID:          uuid.New().String(),
		CompanyID:   job.CompanyID,
		JobID:       job.ID,
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		CoverLetter: sanitize.Text(in.CoverLetter),
		ResumeText:  resume,
		CVKey:       cvKey,
		Stage:       entity.StageNew,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := uc.repo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: bu ilana bu e-posta ile daha önce başvuruldu", domain.ErrDuplicate)
		}
		return nil, err
	}
	uc.notifier.NotifyRoles(ctx, job.CompanyID, []string{entity.RoleAdmin, entity.RoleHRManager}, "", entity.Notification{
		Type:    entity.NotificationRecruitment,
		Title:   "Yeni başvuru",
		Message: fmt.Sprintf("%s %s, %q ilanına başvurdu.", first, last, job.Title),
		Link:    "/applications/" + app.ID, EntityType: "application", EntityID: app.ID,
	})
	return &dto.ApplyResponse{ID: app.ID, Message: "Başvurunuz alındı"}, nil
}

// CVUploadURL aday için imzalı S3 PUT adresi üretir.
func (uc *ApplicationUseCase) CVUploadURL(ctx context.Context, jobID string, in dto.CVUploadRequest) (*dto.CVUploadResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: dosya deposu yapılandırılmamış", domain.ErrConflict)
	}
	job, err := uc.jobs.openJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := cvContentTypes[ct]
	if !ok {
		return nil, invalid("CV yalnızca PDF ya da Word belgesi olabilir")
	}
	if e := strings.ToLower(path.Ext(in.FileName)); e != "" && e != ext && !(ext == ".docx" && e == ".doc") {
		return nil, invalid("dosya uzantısı içerik türüyle uyuşmuyor")
	}
	key := cvPrefix(job) + uuid.New().String() + ext
	url, err := uc.storage.PresignUpload(ctx, key, ct, cvUploadTTL)
	if err != nil {
		return nil, fmt.Errorf("cv upload url: %w", err)
	}
	return &dto.CVUploadResponse{UploadURL: url, Key: key, ExpiresAt: now().Add(cvUploadTTL)}, nil
}

// CVDownloadURL İK için CV dosyasının kısa ömürlü indirme adresi.
func (uc *ApplicationUseCase) CVDownloadURL(ctx context.Context, a Actor, id string) (string, error) {
	app, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return "", err
	}
	if app.CVKey == "" {
		return "", fmt.Errorf("%w: başvuruda CV dosyası yok", domain.ErrNotFound)
	}
	if uc.storage == nil {
		return "", fmt.Errorf("%w: dosya deposu yapılandırılmamış", domain.ErrConflict)
	}
	return uc.storage.PresignDownload(ctx, app.CVKey, cvDownloadTTL)
}

// List başvurular.
func (uc *ApplicationUseCase) List(ctx context.Context, a Actor, q dto.ApplicationQuery) (*dto.ListResponse[*entity.JobApplication], error) {
	if q.Stage != "" && !entity.IsValidStage(q.Stage) {
		return nil, invalid("geçersiz aşama: %s", q.Stage)
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.ApplicationFilter{Page: toPage(p), CompanyID: a.CompanyID, JobID: q.JobID, Stage: q.Stage})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID başvuru; yoksa ErrNotFound.
func (uc *ApplicationUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.JobApplication, error) {
	app, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// Update aşama ve notları günceller. Aşama geçişi CanMoveTo kuralına uyar.
func (uc *ApplicationUseCase) Update(ctx context.Context, a Actor, id string, in dto.UpdateApplicationRequest) (*entity.JobApplication, error) {
	app, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	changes := diff{}
	if in.Stage != nil && *in.Stage != app.Stage {
		target := strings.TrimSpace(*in.Stage)
		if !entity.IsValidStage(target) {
			return nil, invalid("geçersiz aşama: %s", target)
		}
		if !app.CanMoveTo(target) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, app.Stage, target)
		}
		changes.add("stage", app.Stage, target)
		app.Stage = target
	}
	if in.Notes != nil {
		notes := sanitize.Text(*in.Notes)
		changes.add("notes", app.Notes, notes)
		app.Notes = notes
	}
	app.UpdatedAt = now()
	if err := uc.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	ev := Event{Action: entity.ActionUpdate, EntityType: "application", EntityID: app.ID, Changes: changes}
	if _, ok := changes["stage"]; ok {
		ev.Description = fmt.Sprintf("%s %s başvurusunu %q aşamasına taşıdı", app.FirstName, app.LastName, app.Stage)
	}
	uc.recorder.Record(ctx, a, ev)
	return app, nil
}

// Delete başvuruyu siler.
func (uc *ApplicationUseCase) Delete(ctx context.Context, a Actor, id string) error {
	app, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, app.ID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "application", EntityID: app.ID})
	return nil
}

// Evaluate adayı LLM ile ilana göre puanlar ve sonucu başvuruya yazar.
func (uc *ApplicationUseCase) Evaluate(ctx context.Context, a Actor, id string) (*entity.JobApplication, error) {
	if uc.evaluator == nil {
		return nil, fmt.Errorf("%w: yapay zekâ sağlayıcısı yapılandırılmamış", domain.ErrConflict)
	}
	app, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	job, err := uc.jobs.GetByID(ctx, a, app.JobID)
	if err != nil {
		return nil, err
	}
	if app.ResumeText == "" && app.CoverLetter == "" {
		return nil, invalid("değerlendirme için özgeçmiş metni ya da ön yazı gerekli")
	}
	evalCtx, cancel := context.WithTimeout(ctx, evaluateLimit)
	defer cancel()
	res, err := uc.evaluator.EvaluateCandidate(evalCtx, ports.CandidateInput{
		JobTitle:        job.Title,
		JobDescription:  job.Description,
		JobRequirements: job.Requirements,
		CandidateName:   app.FirstName + " " + app.LastName,
		CoverLetter:     app.CoverLetter,
		ResumeText:      app.ResumeText,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("application_id", app.ID).Msg("aday değerlendirmesi başarısız")
		return nil, fmt.Errorf("aday değerlendirmesi: %w", err)
	}
	score := min(max(res.Score, 0), 100)
	ts := now()
	app.AIScore = &score
	app.AISummary = sanitize.Text(res.Summary)
	app.AIStrengths = res.Strengths
	app.AIConcerns = res.Concerns
	app.EvaluatedAt = &ts
	app.UpdatedAt = ts
	if err := uc.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "application", EntityID: app.ID,
		Changes: map[string]any{"ai_score": score, "provider": res.Provider}})
	return app, nil
}

func cvPrefix(j *entity.Job) string {
	return "cv/" + j.CompanyID + "/" + j.ID + "/"
}
