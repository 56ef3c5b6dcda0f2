package usecase

import (
	"context"
	"errors"
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

// TrainingUseCase eğitimler ve katılımcılar.
type TrainingUseCase struct {
	repo      repository.TrainingRepository
	employees repository.EmployeeRepository
	tx        repository.TxRunner
	notifier  *Notifier
	recorder  *Recorder
}

// NewTrainingUseCase kurucu.
func NewTrainingUseCase(repo repository.TrainingRepository, employees repository.EmployeeRepository, tx repository.TxRunner, notifier *Notifier, recorder *Recorder) *TrainingUseCase {
	return &TrainingUseCase{repo: repo, employees: employees, tx: tx, notifier: notifier, recorder: recorder}
}

// List eğitimler.
func (uc *TrainingUseCase) List(ctx context.Context, a Actor, q dto.TrainingQuery) (*dto.ListResponse[*entity.Training], error) {
	if q.Status != "" && !entity.IsValidTrainingStatus(q.Status) {
		return nil, invalid("geçersiz eğitim durumu: %s", q.Status)
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.TrainingFilter{Page: toPage(p), CompanyID: a.CompanyID, Status: q.Status})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID eğitim; yoksa ErrNotFound.
func (uc *TrainingUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Training, error) {
	t, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// Create eğitim ekler.
func (uc *TrainingUseCase) Create(ctx context.Context, a Actor, in dto.TrainingRequest) (*entity.Training, error) {
	ts := now()
	t := &entity.Training{ID: uuid.New().String(), CompanyID: a.CompanyID, CreatedAt: ts, UpdatedAt: ts}
	if err := applyTraining(t, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "training", EntityID: t.ID,
		Changes:     map[string]any{"title": t.Title, "start_date": t.StartDate.Format(dateLayout)},
		Description: fmt.Sprintf("%q eğitimini planladı", t.Title)})
	return t, nil
}

// Update eğitimi günceller. Kontenjan mevcut katılımcı sayısının altına indirilemez.
func (uc *TrainingUseCase) Update(ctx context.Context, a Actor, id string, in dto.TrainingRequest) (*entity.Training, error) {
	t, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	prev := *t
	if err := applyTraining(t, in); err != nil {
		return nil, err
	}
	if t.Capacity > 0 && t.Capacity != prev.Capacity {
		n, err := uc.repo.CountParticipants(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if n > t.Capacity {
			return nil, fmt.Errorf("%w: kontenjan mevcut %d katılımcının altına indirilemez", domain.ErrConflict, n)
		}
	}
	t.UpdatedAt = now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("title", prev.Title, t.Title)
	changes.add("status", prev.Status, t.Status)
	changes.add("capacity", prev.Capacity, t.Capacity)
	changes.add("start_date", prev.StartDate.Format(dateLayout), t.StartDate.Format(dateLayout))
	changes.add("end_date", prev.EndDate.Format(dateLayout), t.EndDate.Format(dateLayout))
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "training", EntityID: t.ID, Changes: changes})
	return t, nil
}

// Delete eğitimi katılımcılarıyla birlikte siler.
func (uc *TrainingUseCase) Delete(ctx context.Context, a Actor, id string) error {
	t, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, t.ID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "training", EntityID: t.ID,
		Changes: map[string]any{"title": t.Title}})
	return nil
}

// Participants eğitimin katılımcılarını personel adlarıyla döner.
func (uc *TrainingUseCase) Participants(ctx context.Context, a Actor, trainingID string) ([]dto.ParticipantResponse, error) {
	t, err := uc.GetByID(ctx, a, trainingID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListParticipants(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ParticipantResponse, 0, len(list))
	for _, p := range list {
		r := dto.ParticipantResponse{EmployeeID: p.EmployeeID, Completed: p.Completed, EnrolledAt: p.EnrolledAt.Format(time.RFC3339)}
		if p.CompletedAt != nil {
			r.CompletedAt = p.CompletedAt.Format(time.RFC3339)
		}
		if emp, err := uc.employees.GetByID(ctx, a.CompanyID, p.EmployeeID); err == nil && emp != nil {
			r.EmployeeName = emp.FullName()
		}
		out = append(out, r)
	}
	return out, nil
}

// AddParticipant personeli eğitime kaydeder. Kontenjan kontrolü ve kayıt tek işlemde yapılır.
func (uc *TrainingUseCase) AddParticipant(ctx context.Context, a Actor, trainingID string, in dto.AddParticipantRequest) (*entity.TrainingParticipant, error) {
	t, err := uc.GetByID(ctx, a, trainingID)
	if err != nil {
		return nil, err
	}
	if t.Status == entity.TrainingCompleted || t.Status == entity.TrainingCancelled {
		return nil, fmt.Errorf("%w: %s durumundaki eğitime katılımcı eklenemez", domain.ErrConflict, t.Status)
	}
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, strings.TrimSpace(in.EmployeeID))
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, invalid("personel bulunamadı")
	}
	if emp.Status == entity.EmployeeTerminated {
		return nil, invalid("işten ayrılmış personel eğitime eklenemez")
	}
	p := &entity.TrainingParticipant{
		ID:         uuid.New().String(),
		CompanyID:  a.CompanyID,
		TrainingID: t.ID,
		EmployeeID: emp.ID,
		EnrolledAt: now(),
	}
	err = uc.tx.RunInTx(ctx, func(ctx context.Context, tx repository.Store) error {
		locked, err := tx.Trainings.LockForEnrolment(ctx, a.CompanyID, t.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status == entity.TrainingCompleted || locked.Status == entity.TrainingCancelled {
			return fmt.Errorf("%w: %s durumundaki eğitime katılımcı eklenemez", domain.ErrConflict, locked.Status)
		}
		existing, err := tx.Trainings.GetParticipant(ctx, t.ID, emp.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: personel bu eğitime zaten kayıtlı", domain.ErrDuplicate)
		}
		if locked.Capacity > 0 {
			n, err := tx.Trainings.CountParticipants(ctx, t.ID)
			if err != nil {
				return err
			}
			if n >= locked.Capacity {
				return fmt.Errorf("%w: eğitim kontenjanı dolu (%d)", domain.ErrConflict, locked.Capacity)
			}
		}
		return tx.Trainings.AddParticipant(ctx, p)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add participant: %w", err)
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "training_participant", EntityID: p.ID,
		Changes:     map[string]any{"training_id": t.ID, "employee_id": emp.ID},
		Description: fmt.Sprintf("%s personelini %q eğitimine kaydetti", emp.FullName(), t.Title)})
	if emp.UserID != nil {
		uc.notifier.Notify(ctx, entity.Notification{
			CompanyID: a.CompanyID, UserID: *emp.UserID, Type: entity.NotificationTraining,
			Title:   "Eğitime kaydedildiniz",
			Message: fmt.Sprintf("%q eğitimi %s tarihinde başlıyor.", t.Title, t.StartDate.Format("02.01.2006")),
			Link:    "/trainings/" + t.ID, EntityType: "training", EntityID: t.ID,
		})
	}
	return p, nil
}

// UpdateParticipant tamamlama bilgisini günceller.
func (uc *TrainingUseCase) UpdateParticipant(ctx context.Context, a Actor, trainingID, employeeID string, in dto.UpdateParticipantRequest) (*entity.TrainingParticipant, error) {
	t, err := uc.GetByID(ctx, a, trainingID)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetParticipant(ctx, t.ID, employeeID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Completed == in.Completed {
		return p, nil
	}
	p.Completed = in.Completed
	p.CompletedAt = nil
	if in.Completed {
		ts := now()
		p.CompletedAt = &ts
	}
	if err := uc.repo.UpdateParticipant(ctx, p); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "training_participant", EntityID: p.ID,
		Changes: map[string]any{"completed": map[string]any{"old": !in.Completed, "new": in.Completed}}})
	return p, nil
}

// RemoveParticipant kaydı siler.
func (uc *TrainingUseCase) RemoveParticipant(ctx context.Context, a Actor, trainingID, employeeID string) error {
	t, err := uc.GetByID(ctx, a, trainingID)
	if err != nil {
		return err
	}
	p, err := uc.repo.GetParticipant(ctx, t.ID, employeeID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.RemoveParticipant(ctx, t.ID, employeeID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "training_participant", EntityID: p.ID,
		Changes: map[string]any{"training_id": t.ID, "employee_id": employeeID}})
	return nil
}

func applyTraining(t *entity.Training, in dto.TrainingRequest) error {
	title := sanitize.Text(in.Title)
	if title == "" {
		return invalid("eğitim adı zorunludur")
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return invalid("bitiş tarihi başlangıçtan önce olamaz")
	}
	if in.Capacity < 0 {
		return invalid("kontenjan negatif olamaz")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.TrainingPlanned
	}
	if !entity.IsValidTrainingStatus(status) {
		return invalid("geçersiz eğitim durumu: %s", status)
	}
	t.Title = title
	t.Description = sanitize.Text(in.Description)
	t.Trainer = sanitize.Text(in.Trainer)
	t.Location = sanitize.Text(in.Location)
	t.StartDate = start
	t.EndDate = end
	t.Capacity = in.Capacity
	t.Status = status
	return nil
}
