package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/payroll"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
	"github.com/jhoicas/ik-portal/pkg/sanitize"
)

// SettingUseCase şirket ayarları. Kayıt yoksa varsayılan değer döner.
type SettingUseCase struct {
	repo     repository.SettingRepository
	recorder *Recorder
}

// NewSettingUseCase kurucu.
func NewSettingUseCase(repo repository.SettingRepository, recorder *Recorder) *SettingUseCase {
	return &SettingUseCase{repo: repo, recorder: recorder}
}

// List kayıtlı ayarları varsayılanlarla birleştirir. category boşsa tümü.
func (uc *SettingUseCase) List(ctx context.Context, a Actor, category string) ([]*entity.SystemSetting, error) {
	stored, err := uc.repo.List(ctx, a.CompanyID, category)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*entity.SystemSetting, len(stored))
	for _, s := range stored {
		byKey[s.Key] = s
	}
	for _, def := range entity.DefaultSettings {
		if category != "" && def.Category != category {
			continue
		}
		if _, ok := byKey[def.Key]; !ok {
			d := def
			d.CompanyID = a.CompanyID
			byKey[d.Key] = &d
		}
	}
	out := make([]*entity.SystemSetting, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get tek ayar; bilinmeyen ve kayıtsız anahtar için ErrNotFound.
func (uc *SettingUseCase) Get(ctx context.Context, a Actor, key string) (*entity.SystemSetting, error) {
	return uc.get(ctx, a.CompanyID, key)
}

func (uc *SettingUseCase) get(ctx context.Context, companyID, key string) (*entity.SystemSetting, error) {
	s, err := uc.repo.Get(ctx, companyID, key)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	def, ok := entity.DefaultSetting(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	def.CompanyID = companyID
	return &def, nil
}

// Upsert ayarı yazar. Bilinen anahtarlarda değer tipi doğrulanır.
func (uc *SettingUseCase) Upsert(ctx context.Context, a Actor, key string, in dto.UpsertSettingRequest) (*entity.SystemSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 {
		return nil, invalid("anahtar zorunludur (en fazla 100 karakter)")
	}
	value := strings.TrimSpace(in.Value)
	if err := validateSettingValue(key, value); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	description := sanitize.Text(in.Description)
	if def, ok := entity.DefaultSetting(key); ok {
		if category == "" {
			category = def.Category
		}
		if description == "" {
			description = def.Description
		}
	}
	if category == "" {
		category = entity.SettingCategoryGeneral
	}

	prev, _ := uc.repo.Get(ctx, a.CompanyID, key)
	s := &entity.SystemSetting{
		ID:          uuid.New().String(),
		CompanyID:   a.CompanyID,
		Key:         key,
		Value:       value,
		Category:    category,
		Description: description,
		UpdatedBy:   a.UserID,
		UpdatedAt:   now(),
	}
	if prev != nil {
		s.ID = prev.ID
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	changes := diff{}
	old := ""
	if prev != nil {
		old = prev.Value
	}
	changes.add("value", old, value)
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionUpdate, EntityType: "setting", EntityID: key, Changes: changes})
	return s, nil
}

// Delete kaydı siler; anahtar varsayılana döner.
func (uc *SettingUseCase) Delete(ctx context.Context, a Actor, key string) error {
	ok, err := uc.repo.Delete(ctx, a.CompanyID, key)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionDelete, EntityType: "setting", EntityID: key})
	return nil
}

// PayrollRates şirketin bordro oranlarını varsayılanların üzerine uygular.
func (uc *SettingUseCase) PayrollRates(ctx context.Context, companyID string) (payroll.Rates, error) {
	stored, err := uc.repo.List(ctx, companyID, entity.SettingCategoryPayroll)
	if err != nil {
		return payroll.Rates{}, err
	}
	values := make(map[string]string, len(stored))
	for _, s := range stored {
		values[s.Key] = s.Value
	}
	return payroll.DefaultRates().WithOverrides(values), nil
}

// Bool mantıksal ayar; okunamazsa varsayılan.
func (uc *SettingUseCase) Bool(ctx context.Context, companyID, key string) bool {
	s, err := uc.get(ctx, companyID, key)
	if err != nil || s == nil {
		return false
	}
	b, _ := strconv.ParseBool(s.Value)
	return b
}

func validateSettingValue(key, value string) error {
	switch key {
	case entity.SettingLeaveAllowNegative:
		if _, err := strconv.ParseBool(value); err != nil {
			return invalid("%s true ya da false olmalıdır", key)
		}
	case entity.SettingGeneralTimezone:
		if value == "" {
			return invalid("saat dilimi boş olamaz")
		}
	default:
		if strings.HasPrefix(key, entity.SettingCategoryPayroll+".") {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 {
				return invalid("%s negatif olmayan bir sayı olmalıdır", key)
			}
		}
	}
	return nil
}
