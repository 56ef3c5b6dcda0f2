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
	"github.com/jhoicas/ik-portal/internal/domain/leave"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

var leaveReviewerRoles = []string{entity.RoleAdmin, entity.RoleHRManager, entity.RoleManager}

// LeaveUseCase izin talepleri ve yıllık izin bakiyesi.
type LeaveUseCase struct {
	repo      repository.LeaveRepository
	employees repository.EmployeeRepository
	settings  *SettingUseCase
	notifier  *Notifier
	recorder  *Recorder
}

// NewLeaveUseCase kurucu.
func NewLeaveUseCase(
	repo repository.LeaveRepository,
	employees repository.EmployeeRepository,
	settings *SettingUseCase,
	notifier *Notifier,
	recorder *Recorder,
) *LeaveUseCase {
	return &LeaveUseCase{repo: repo, employees: employees, settings: settings, notifier: notifier, recorder: recorder}
}

// List onay yetkisi olmayan kullanıcı yalnızca kendi izinlerini görür.
func (uc *LeaveUseCase) List(ctx context.Context, a Actor, q dto.LeaveQuery) (*dto.ListResponse[*entity.Leave], error) {
	if q.Status != "" && !entity.IsValidLeaveStatus(q.Status) {
		return nil, invalid("geçersiz izin durumu: %s", q.Status)
	}
	if q.Type != "" && !entity.IsValidLeaveType(q.Type) {
		return nil, invalid("geçersiz izin türü: %s", q.Type)
	}
	from, err := parseOptionalDate("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", q.To)
	if err != nil {
		return nil, err
	}
	employeeID := q.EmployeeID
	if !a.Can(entity.PermLeavesApprove) {
		me, err := uc.employees.GetByUserID(ctx, a.CompanyID, a.UserID)
		if err != nil {
			return nil, err
		}
		if me == nil {
			return nil, domain.ErrNotFound
		}
		employeeID = me.ID
	}
	p := normalized(q.PageRequest)
	list, total, err := uc.repo.List(ctx, repository.LeaveFilter{
		Page: toPage(p), CompanyID: a.CompanyID, EmployeeID: employeeID,
		Status: q.Status, Type: q.Type, From: from, To: to,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(list, p, total), nil
}

// GetByID izin kaydı; başkasının izni onay yetkisi olmadan görünmez.
func (uc *LeaveUseCase) GetByID(ctx context.Context, a Actor, id string) (*entity.Leave, error) {
	l, err := uc.repo.GetByID(ctx, a.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if !a.Can(entity.PermLeavesApprove) {
		own, err := uc.ownsEmployee(ctx, a, l.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !own {
			return nil, domain.ErrNotFound
		}
	}
	return l, nil
}

// Create izin talebi açar. İK rolleri herkes adına, diğerleri yalnızca kendi adına.
func (uc *LeaveUseCase) Create(ctx context.Context, a Actor, in dto.CreateLeaveRequest) (*entity.Leave, error) {
	emp, err := uc.resolveEmployee(ctx, a, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.Status == entity.EmployeeTerminated {
		return nil, invalid("işten ayrılmış personel için izin talebi açılamaz")
	}
	ts := now()
	l := &entity.Leave{
		ID:         uuid.New().String(),
		CompanyID:  a.CompanyID,
		EmployeeID: emp.ID,
		Status:     entity.LeavePending,
		CreatedBy:  a.UserID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := uc.apply(ctx, a, emp, l, nil, in.Type, in.StartDate, in.EndDate, in.Reason); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCreate, EntityType: "leave", EntityID: l.ID,
		Changes:     map[string]any{"type": l.Type, "days": l.Days},
		Description: fmt.Sprintf("izin talebi oluşturdu (%s, %d gün)", emp.FullName(), l.Days)})
	uc.notifier.NotifyRoles(ctx, a.CompanyID, leaveReviewerRoles, a.UserID, entity.Notification{
		Type:       entity.NotificationLeave,
		Title:      "Yeni izin talebi",
		Message:    fmt.Sprintf("%s %s - %s tarihleri için %d günlük izin talep etti.", emp.FullName(), l.StartDate.Format("02.01.2006"), l.EndDate.Format("02.01.2006"), l.Days),
		Link:       "/leaves/" + l.ID,
		EntityType: "leave",
		EntityID:   l.ID,
	})
	return l, nil
}

// Update yalnızca bekleyen talepleri günceller.
func (uc *LeaveUseCase) Update(ctx context.Context, a Actor, id string, in dto.UpdateLeaveRequest) (*entity.Leave, error) {
	l, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if l.Status != entity.LeavePending {
		return nil, fmt.Errorf("%w: yalnızca bekleyen talepler güncellenebilir", domain.ErrInvalidTransition)
	}
	emp, err := uc.employee(ctx, a.CompanyID, l.EmployeeID)
	if err != nil {
		return nil, err
	}
	typ, start, end, reason := l.Type, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.Reason
	if in.Type != nil {
		typ = *in.Type
	}
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if in.Reason != nil {
		reason = *in.Reason
	}
	prev := *l
	if err := uc.apply(ctx, a, emp, l, &prev, typ, start, end, reason); err != nil {
		return nil, err
	}
	l.UpdatedAt = now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "leave", EntityID: l.ID,
		Changes: map[string]any{"type": l.Type, "start_date": start, "end_date": end, "days": l.Days}})
	return l, nil
}

// Approve bekleyen talebi onaylar. Kişi kendi iznini onaylayamaz.
func (uc *LeaveUseCase) Approve(ctx context.Context, a Actor, id string) (*entity.Leave, error) {
	return uc.review(ctx, a, id, entity.LeaveApproved, "")
}

// Reject talebi gerekçeyle reddeder.
func (uc *LeaveUseCase) Reject(ctx context.Context, a Actor, id string, in dto.RejectLeaveRequest) (*entity.Leave, error) {
	reason := sanitize.Text(in.Reason)
	if reason == "" {
		return nil, invalid("ret gerekçesi zorunludur")
	}
	return uc.review(ctx, a, id, entity.LeaveRejected, reason)
}

func (uc *LeaveUseCase) review(ctx context.Context, a Actor, id, target, reason string) (*entity.Leave, error) {
	if !a.Can(entity.PermLeavesApprove) {
		return nil, domain.ErrForbidden
	}
	l, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	own, err := uc.ownsEmployee(ctx, a, l.EmployeeID)
	if err != nil {
		return nil, err
	}
	if own {
		return nil, fmt.Errorf("%w: kendi izin talebinizi değerlendiremezsiniz", domain.ErrForbidden)
	}
	if !l.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, l.Status, target)
	}
	if target == entity.LeaveApproved {
		emp, err := uc.employee(ctx, a.CompanyID, l.EmployeeID)
		if err != nil {
			return nil, err
		}
		if err := uc.checkBalance(ctx, a.CompanyID, emp, l, false, nil); err != nil {
			return nil, err
		}
	}
	ts := now()
	prev := l.Status
	l.Status = target
	l.ReviewedBy = &a.UserID
	l.ReviewedAt = &ts
	l.RejectionReason = reason
	l.UpdatedAt = ts
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	action, verb, passive, title := entity.ActionApprove, "onayladı", "onaylandı", "İzin talebiniz onaylandı"
	if target == entity.LeaveRejected {
		action, verb, passive, title = entity.ActionReject, "reddetti", "reddedildi", "İzin talebiniz reddedildi"
	}
	uc.recorder.Record(ctx, a, Event{Action: action, EntityType: "leave", EntityID: l.ID,
		Changes:     map[string]any{"status": map[string]any{"old": prev, "new": target}, "reason": reason},
		Description: "izin talebini " + verb})
	msg := fmt.Sprintf("%s - %s tarihli izin talebiniz %s.", l.StartDate.Format("02.01.2006"), l.EndDate.Format("02.01.2006"), passive)
	if reason != "" {
		msg += " Gerekçe: " + reason
	}
	uc.notifyOwner(ctx, l, title, msg)
	return l, nil
}

// Cancel talebi iptal eder. Sahibi ya da onay yetkilisi iptal edebilir.
func (uc *LeaveUseCase) Cancel(ctx context.Context, a Actor, id string) (*entity.Leave, error) {
	l, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !l.CanTransitionTo(entity.LeaveCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, l.Status, entity.LeaveCancelled)
	}
	prev := l.Status
	l.Status = entity.LeaveCancelled
	l.UpdatedAt = now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionCancel, EntityType: "leave", EntityID: l.ID,
		Changes: map[string]any{"status": map[string]any{"old": prev, "new": l.Status}}, Description: "izin talebini iptal etti"})
	own, _ := uc.ownsEmployee(ctx, a, l.EmployeeID)
	if !own {
		uc.notifyOwner(ctx, l, "İzin talebiniz iptal edildi",
			fmt.Sprintf("%s - %s tarihli izin talebiniz iptal edildi.", l.StartDate.Format("02.01.2006"), l.EndDate.Format("02.01.2006")))
	}
	return l, nil
}

// Delete onaylanmış izin silinemez; önce iptal edilmelidir.
func (uc *LeaveUseCase) Delete(ctx context.Context, a Actor, id string) error {
	l, err := uc.GetByID(ctx, a, id)
	if err != nil {
		return err
	}
	if l.Status == entity.LeaveApproved {
		return fmt.Errorf("%w: onaylanmış izin silinemez, önce iptal edin", domain.ErrConflict)
	}
	if !a.Can(entity.PermLeavesApprove) && l.Status != entity.LeavePending {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, a.CompanyID, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "leave", EntityID: id})
	return nil
}

// Balance yılın yıllık izin hakkı, kullanılan ve bekleyen günler.
func (uc *LeaveUseCase) Balance(ctx context.Context, a Actor, employeeID string, year int) (*dto.LeaveBalanceResponse, error) {
	if year == 0 {
		year = now().Year()
	}
	if year < 1900 || year > 2200 {
		return nil, invalid("geçersiz yıl")
	}
	emp, err := uc.employee(ctx, a.CompanyID, employeeID)
	if err != nil {
		return nil, err
	}
	if !a.Can(entity.PermLeavesApprove) && !isOwn(emp, a) {
		return nil, domain.ErrNotFound
	}
	used, err := uc.repo.SumDays(ctx, a.CompanyID, emp.ID, entity.LeaveAnnual, year, []string{entity.LeaveApproved})
	if err != nil {
		return nil, err
	}
	pending, err := uc.repo.SumDays(ctx, a.CompanyID, emp.ID, entity.LeaveAnnual, year, []string{entity.LeavePending})
	if err != nil {
		return nil, err
	}
	entitlement := leave.EntitlementForYear(emp.HireDate, emp.BirthDate, year)
	return &dto.LeaveBalanceResponse{
		EmployeeID:   emp.ID,
		Year:         year,
		ServiceYears: leave.ServiceYears(emp.HireDate, time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)),
		Entitlement:  entitlement,
		Used:         used,
		Pending:      pending,
		Remaining:    entitlement - used,
	}, nil
}

// apply alanları doğrular ve yazar. prev güncellenen kaydın önceki hali, yeni kayıtta nil.
func (uc *LeaveUseCase) apply(ctx context.Context, a Actor, emp *entity.Employee, l, prev *entity.Leave, typ, startS, endS, reason string) error {
	typ = strings.TrimSpace(typ)
	if !entity.IsValidLeaveType(typ) {
		return invalid("geçersiz izin türü: %s", typ)
	}
	start, err := parseDate("start_date", startS)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", endS)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return invalid("bitiş tarihi başlangıç tarihinden önce olamaz")
	}
	days := leave.WorkingDays(start, end)
	if days == 0 {
		return invalid("seçilen aralıkta iş günü yok")
	}
	overlap, err := uc.repo.HasOverlap(ctx, a.CompanyID, emp.ID, start, end, l.ID)
	if err != nil {
		return err
	}
	if overlap {
		return domain.ErrLeaveOverlap
	}
	l.Type = typ
	l.StartDate, l.EndDate = start, end
	l.Days = days
	l.Reason = sanitize.Text(reason)
	return uc.checkBalance(ctx, a.CompanyID, emp, l, true, prev)
}

// checkBalance yıllık izinde kalan hakkı kontrol eder. includePending true ise
// bekleyen diğer talepler de düşülür; prev toplama zaten dahil olan eski hali.
func (uc *LeaveUseCase) checkBalance(ctx context.Context, companyID string, emp *entity.Employee, l *entity.Leave, includePending bool, prev *entity.Leave) error {
	if l.Type != entity.LeaveAnnual || uc.settings.Bool(ctx, companyID, entity.SettingLeaveAllowNegative) {
		return nil
	}
	year := l.StartDate.Year()
	statuses := []string{entity.LeaveApproved}
	if includePending {
		statuses = append(statuses, entity.LeavePending)
	}
	taken, err := uc.repo.SumDays(ctx, companyID, emp.ID, entity.LeaveAnnual, year, statuses)
	if err != nil {
		return err
	}
	if includePending && prev != nil && prev.Status == entity.LeavePending &&
		prev.Type == entity.LeaveAnnual && prev.StartDate.Year() == year {
		taken -= prev.Days
	}
	remaining := leave.EntitlementForYear(emp.HireDate, emp.BirthDate, year) - taken
	if l.Days > remaining {
		return fmt.Errorf("%w: kalan %d gün, talep %d gün", domain.ErrInsufficientLeaveBalance, max(remaining, 0), l.Days)
	}
	return nil
}

func (uc *LeaveUseCase) resolveEmployee(ctx context.Context, a Actor, employeeID string) (*entity.Employee, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		me, err := uc.employees.GetByUserID(ctx, a.CompanyID, a.UserID)
		if err != nil {
			return nil, err
		}
		if me == nil {
			return nil, invalid("kullanıcınıza bağlı personel kaydı yok, employee_id belirtin")
		}
		return me, nil
	}
	emp, err := uc.employee(ctx, a.CompanyID, employeeID)
	if err != nil {
		return nil, err
	}
	if !a.IsHR() && !isOwn(emp, a) {
		return nil, domain.ErrForbidden
	}
	return emp, nil
}

func (uc *LeaveUseCase) employee(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	emp, err := uc.employees.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("%w: personel", domain.ErrNotFound)
	}
	return emp, nil
}

func (uc *LeaveUseCase) ownsEmployee(ctx context.Context, a Actor, employeeID string) (bool, error) {
	emp, err := uc.employees.GetByID(ctx, a.CompanyID, employeeID)
	if err != nil {
		return false, err
	}
	return emp != nil && isOwn(emp, a), nil
}

func (uc *LeaveUseCase) notifyOwner(ctx context.Context, l *entity.Leave, title, message string) {
	emp, err := uc.employees.GetByID(ctx, l.CompanyID, l.EmployeeID)
	if err != nil || emp == nil || emp.UserID == nil {
		return
	}
	uc.notifier.Notify(ctx, entity.Notification{
		CompanyID:  l.CompanyID,
		UserID:     *emp.UserID,
		Type:       entity.NotificationLeave,
		Title:      title,
		Message:    message,
		Link:       "/leaves/" + l.ID,
		EntityType: "leave",
		EntityID:   l.ID,
	})
}
