package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

var periodRe = regexp.MustCompile(`^\d{4}(-(Q[1-4]|H[12]))?$`)

// PerformanceUseCase performans değerlendirmeleri.
// Yazma yetkisi olmayanlar yalnızca kendilerine ait, taslak olmayan değerlendirmeleri görür.
type PerformanceUseCase struct {
	repo      repository.PerformanceRepository
	employees repository.EmployeeRepository
	notifier  *Notifier
	recorder  *Recorder
}

// NewPerformanceUseCase kurucu.
func NewPerformanceUseCase(repo repository.PerformanceRepository, employees repository.EmployeeRepository, notifier *Notifier, recorder *Recorder) *PerformanceUseCase {
	return &PerformanceUseCase{repo: repo, employees: employees, notifier: notifier, recorder: recorder}
}

// List filtreli liste.
func (uc *PerformanceUseCase) List(ctx context.Context, a Actor, q dto.PerformanceQuery) (*dto.ListResponse[*entity.Performance], error) {
	f := repository.PerformanceFilter{
		CompanyID: a.CompanyID, EmployeeID: q.EmployeeID, ReviewerID: q.ReviewerID,
		Period: strings.ToUpper(strings.TrimSpace(q.Period)), Status: q.Status,
	}
	if !a.Can(entity.PermPerformanceWrite) {
		me, err := uc.employees.GetByUserID(ctx, a.CompanyID, a.UserID)
		if err != nil {
			return nil, err
		}
		if me == nil {
			return nil, domain.ErrNotFound
		}
		f.EmployeeID = me.ID
		f.ExcludeDrafts = true
		if f.Status == entity.ReviewDraft {
			return dto.NewListResponse[*entity.Performance](nil, normalized(q.PageRequest), 0), nil
		}
	}
	p := normalized(q.PageRequest)
	f.Page = toPage(p)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID değerlendirme.
func (uc *PerformanceUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Performance, error) {
	r, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if !a.Can(entity.PermPerformanceWrite) {
		own, err := uc.ownsEmployee(ctx, a, r.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !own || r.Status == entity.ReviewDraft {
			return nil, domain.ErrNotFound
		}
	}
	return r, nil
}

// Create taslak değerlendirme açar; değerlendiren oturumdaki kullanıcıdır.
func (uc *PerformanceUseCase) Create(ctx context.Context, a Actor, in dto.PerformanceRequest) (*entity.Performance, error) {
	if !a.Can(entity.PermPerformanceWrite) {
		return nil, domain.ErrForbidden
	}
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, strings.TrimSpace(in.EmployeeID))
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, invalid("personel bulunamadı")
	}
	if isOwn(emp, a) {
		return nil, invalid("kendinizi değerlendiremezsiniz")
	}
	ts := now()
	r := &entity.Performance{
		ID:         uuid.New().String(),
		CompanyID:  a.CompanyID,
		EmployeeID: emp.ID,
		ReviewerID: a.UserID,
		Status:     entity.ReviewDraft,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := applyReview(r, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "performance", EntityID: r.ID,
		Changes:     map[string]any{"period": r.Period, "overall_score": r.OverallScore.String()},
		Description: fmt.Sprintf("%s için %s performans değerlendirmesi başlattı", emp.FullName(), r.Period)})
	return r, nil
}

// Update yalnızca taslakları günceller.
func (uc *PerformanceUseCase) Update(ctx context.Context, a Actor, id string, in dto.PerformanceRequest) (*entity.Performance, error) {
	r, err := uc.editable(ctx, a, id)
	if err != nil {
		return nil, err
	}
	before := r.OverallScore.String()
	in.EmployeeID = r.EmployeeID
	if err := applyReview(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	changes := diff{}
	changes.add("overall_score", before, r.OverallScore.String())
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "performance", EntityID: r.ID, Changes: changes})
	return r, nil
}

// Submit taslağı personele gönderir.
func (uc *PerformanceUseCase) Submit(ctx context.Context, a Actor, id string) (*entity.Performance, error) {
	r, err := uc.editable(ctx, a, id)
	if err != nil {
		return nil, err
	}
	ts := now()
	r.Status = entity.ReviewSubmitted
	r.SubmittedAt = &ts
	r.UpdatedAt = ts
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "performance", EntityID: r.ID,
		Changes: map[string]any{"status": r.Status}, Description: r.Period + " performans değerlendirmesini gönderdi"})
	emp, _ := uc.employees.GetByID(ctx, a.CompanyID, r.EmployeeID)
	if emp != nil && emp.UserID != nil {
		uc.notifier.Notify(ctx, entity.Notification{
			CompanyID: a.CompanyID, UserID: *emp.UserID, Type: entity.NotificationPerformance,
			Title:   "Performans değerlendirmeniz hazır",
			Message: fmt.Sprintf("%s dönemi değerlendirmeniz paylaşıldı. Genel puan: %s", r.Period, r.OverallScore.StringFixed(2)),
			Link:    "/performance/" + r.ID, EntityType: "performance", EntityID: r.ID,
		})
	}
	return r, nil
}

// Acknowledge değerlendirilen personelin onayı.
func (uc *PerformanceUseCase) Acknowledge(ctx context.Context, a Actor, id string) (*entity.Performance, error) {
	r, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	own, err := uc.ownsEmployee(ctx, a, r.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !own {
		return nil, fmt.Errorf("%w: değerlendirmeyi yalnızca ilgili personel onaylayabilir", domain.ErrForbidden)
	}
	if !r.CanTransitionTo(entity.ReviewAcknowledged) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, r.Status, entity.ReviewAcknowledged)
	}
	ts := now()
	r.Status = entity.ReviewAcknowledged
	r.AcknowledgedAt = &ts
	r.UpdatedAt = ts
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionApprove, EntityType: "performance", EntityID: r.ID,
		Description: r.Period + " performans değerlendirmesini onayladı"})
	uc.notifier.Notify(ctx, entity.Notification{
		CompanyID: a.CompanyID, UserID: r.ReviewerID, Type: entity.NotificationPerformance,
		Title: "Değerlendirme onaylandı", Message: r.Period + " dönemi değerlendirmesi personel tarafından onaylandı.",
		Link: "/performance/" + r.ID, EntityType: "performance", EntityID: r.ID,
	})
	return r, nil
}

// Delete yalnızca taslaklar silinir.
func (uc *PerformanceUseCase) Delete(ctx context.Context, a Actor, id string) error {
	r, err := uc.editable(ctx, a, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, r.ID); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "performance", EntityID: id})
	return nil
}

// Summary personelin taslak olmayan değerlendirmelerinin dönem ortalamaları.
func (uc *PerformanceUseCase) Summary(ctx context.Context, a Actor, employeeID string) (*dto.PerformanceSummary, error) {
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || (!a.Can(entity.PermPerformanceWrite) && !isOwn(emp, a)) {
		return nil, domain.ErrNotFound
	}
	reviews, err := uc.repo.ListByEmployee(ctx, a.CompanyID, emp.ID)
	if err != nil {
		return nil, err
	}
	return summarize(emp.ID, reviews), nil
}

func summarize(employeeID string, reviews []*entity.Performance) *dto.PerformanceSummary {
	type acc struct {
		sum   decimal.Decimal
		count int
	}
	byPeriod := map[string]*acc{}
	total := decimal.Zero
	n := 0
	for _, r := range reviews {
		if r.Status == entity.ReviewDraft {
			continue
		}
		a, ok := byPeriod[r.Period]
		if !ok {
			a = &acc{}
			byPeriod[r.Period] = a
		}
		a.sum = a.sum.Add(r.OverallScore)
		a.count++
		total = total.Add(r.OverallScore)
		n++
	}
	out := &dto.PerformanceSummary{EmployeeID: employeeID, Overall: decimal.Zero, Reviews: n, Periods: []dto.PeriodScore{}}
	for period, a := range byPeriod {
		out.Periods = append(out.Periods, dto.PeriodScore{
			Period:  period,
			Average: a.sum.Div(decimal.NewFromInt(int64(a.count))).Round(2),
			Count:   a.count,
		})
	}
	sort.Slice(out.Periods, func(i, j int) bool { return out.Periods[i].Period < out.Periods[j].Period })
	if n > 0 {
		out.Overall = total.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	return out
}

func (uc *PerformanceUseCase) editable(ctx context.Context, a Actor, id string) (*entity.Performance, error) {
	if !a.Can(entity.PermPerformanceWrite) {
		return nil, domain.ErrForbidden
	}
	r, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.ReviewDraft {
		return nil, fmt.Errorf("%w: yalnızca taslak değerlendirmeler değiştirilebilir", domain.ErrInvalidTransition)
	}
	if r.ReviewerID != a.UserID && !a.IsHR() {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (uc *PerformanceUseCase) ownsEmployee(ctx context.Context, a Actor, employeeID string) (bool, error) {
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, employeeID)
	if err != nil {
		return false, err
	}
	return emp != nil && isOwn(emp, a), nil
}

func applyReview(r *entity.Performance, in dto.PerformanceRequest) error {
	period := strings.ToUpper(strings.TrimSpace(in.Period))
	if !periodRe.MatchString(period) {
		return invalid("dönem 2025, 2025-H1 ya da 2025-Q1 biçiminde olmalıdır")
	}
	scores := map[string]int{
		"quality": in.Quality, "productivity": in.Productivity, "teamwork": in.Teamwork,
		"communication": in.Communication, "leadership": in.Leadership,
	}
	for name, v := range scores {
		if v < 1 || v > 5 {
			return invalid("%s puanı 1 ile 5 arasında olmalıdır", name)
		}
	}
	reviewDate := now()
	if strings.TrimSpace(in.ReviewDate) != "" {
		d, err := parseDate("review_date", in.ReviewDate)
		if err != nil {
			return err
		}
		reviewDate = d
	}
	r.Period = period
	r.ReviewDate = reviewDate
	r.Quality, r.Productivity, r.Teamwork = in.Quality, in.Productivity, in.Teamwork
	r.Communication, r.Leadership = in.Communication, in.Leadership
	r.Strengths = sanitize.Text(in.Strengths)
	r.Improvements = sanitize.Text(in.Improvements)
	r.Comments = sanitize.Text(in.Comments)
	r.ComputeOverall()
	return nil
}
