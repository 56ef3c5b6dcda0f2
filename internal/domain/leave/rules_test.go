package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestWorkingDays(t *testing.T) {
	// 2025-03-03 Pazartesi
	assert.Equal(t, 5, WorkingDays(day(2025, 3, 3), day(2025, 3, 7)))
	assert.Equal(t, 5, WorkingDays(day(2025, 3, 3), day(2025, 3, 9)), "hafta sonu sayılmaz")
	assert.Equal(t, 6, WorkingDays(day(2025, 3, 7), day(2025, 3, 14)))
	assert.Equal(t, 0, WorkingDays(day(2025, 3, 8), day(2025, 3, 9)), "sadece hafta sonu")
	assert.Equal(t, 1, WorkingDays(day(2025, 3, 5), day(2025, 3, 5)))
	assert.Equal(t, 0, WorkingDays(day(2025, 3, 7), day(2025, 3, 3)), "ters aralık")
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(day(2025, 1, 1), day(2025, 1, 5), day(2025, 1, 5), day(2025, 1, 9)), "uç gün ortak")
	assert.True(t, Overlaps(day(2025, 1, 1), day(2025, 1, 31), day(2025, 1, 10), day(2025, 1, 12)), "içeride")
	assert.False(t, Overlaps(day(2025, 1, 1), day(2025, 1, 5), day(2025, 1, 6), day(2025, 1, 9)))
}

func TestAnnualEntitlement(t *testing.T) {
	at := day(2025, 6, 1)
	cases := []struct {
		name  string
		hire  time.Time
		birth *time.Time
		want  int
	}{
		{"1 yıldan az", day(2024, 6, 2), nil, 0},
		{"tam 1 yıl", day(2024, 6, 1), nil, 14},
		{"4 yıl", day(2021, 1, 1), nil, 14},
		{"5 yıl", day(2020, 6, 1), nil, 20},
		{"14 yıl", day(2011, 1, 1), nil, 20},
		{"15 yıl", day(2010, 6, 1), nil, 26},
		{"18 yaş altı", day(2023, 1, 1), ptr(day(2008, 1, 1)), 20},
		{"50 yaş", day(2023, 1, 1), ptr(day(1975, 5, 1)), 20},
		{"50 yaş ama 1 yıldan az", day(2025, 1, 1), ptr(day(1970, 1, 1)), 0},
		{"50 yaş ve 15 yıl", day(2000, 1, 1), ptr(day(1970, 1, 1)), 26},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AnnualEntitlement(tc.hire, tc.birth, at))
		})
	}
}

func TestEntitlementForYear(t *testing.T) {
	// 2024-11-15'te işe giren, 2025 yıldönümünde 1 yılı doldurur.
	assert.Equal(t, 14, EntitlementForYear(day(2024, 11, 15), nil, 2025))
	assert.Equal(t, 0, EntitlementForYear(day(2024, 11, 15), nil, 2024))
}

func ptr(t time.Time) *time.Time { return &t }
