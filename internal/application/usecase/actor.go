package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// Actor isteği yapan kullanıcı; token'dan ve istek başlıklarından doldurulur.
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
	IP        string
	UserAgent string
}

// Can rolün yetkiyi taşıyıp taşımadığını söyler.
func (a Actor) Can(perm string) bool {
	return entity.HasPermission(a.Role, perm)
}

// IsHR tüm personel kayıtlarını görebilen roller.
func (a Actor) IsHR() bool {
	return entity.IsHRRole(a.Role)
}

const dateLayout = "2006-01-02"

// parseDate YYYY-MM-DD ya da RFC3339 kabul eder.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s geçerli bir tarih değil (YYYY-AA-GG)", domain.ErrInvalidInput, field)
}

// parseOptionalDate boş değer için nil döner.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func toPage(p dto.PageRequest) repository.Page {
	p.DefaultPage()
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

func normalized(p dto.PageRequest) dto.PageRequest {
	p.DefaultPage()
	return p
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func now() time.Time {
	return time.Now().UTC()
}

// normalizeEmail küçük harfe çevirir ve biçimi doğrular.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("geçerli bir e-posta adresi girin")
	}
	return email, nil
}

// periodEnd ayın son günü.
func periodEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}
