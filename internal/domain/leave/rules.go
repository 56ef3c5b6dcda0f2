// Package leave izin günlerinin sayımı ve 4857 sayılı İş Kanunu'na göre yıllık
// izin hakkı kuralları.
package leave

import (
	"time"
)

// WorkingDays başlangıç ve bitiş dahil, Pazartesi-Cuma arası gün sayısı.
// end < start ise 0 döner.
func WorkingDays(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 0
	}
	days := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// Overlaps iki kapalı tarih aralığının kesişip kesişmediğini söyler.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !dateOnly(aStart).After(dateOnly(bEnd)) && !dateOnly(bStart).After(dateOnly(aEnd))
}

// ServiceYears hireDate'ten at tarihine kadar tamamlanan tam yıl sayısı.
func ServiceYears(hireDate, at time.Time) int {
	return fullYears(hireDate, at)
}

// AnnualEntitlement 4857/53 uyarınca yıllık ücretli izin gün sayısı:
//
//	1 yıldan az     0
//	1-5 yıl (5 hariç)  14
//	5-15 yıl (15 hariç) 20
//	15 yıl ve üzeri   26
//
// 18 yaşından küçük ve 50 yaş ve üzeri çalışanlara 20 günden az izin verilemez.
func AnnualEntitlement(hireDate time.Time, birthDate *time.Time, at time.Time) int {
	years := fullYears(hireDate, at)
	var days int
	switch {
	case years < 1:
		return 0
	case years < 5:
		days = 14
	case years < 15:
		days = 20
	default:
		days = 26
	}
	if birthDate != nil {
		age := fullYears(*birthDate, at)
		if (age < 18 || age >= 50) && days < 20 {
			days = 20
		}
	}
	return days
}

// EntitlementForYear yılın son gününe göre izin hakkı; hizmet yılı o yılki
// işe giriş yıldönümünde tamamlanır.
func EntitlementForYear(hireDate time.Time, birthDate *time.Time, year int) int {
	return AnnualEntitlement(hireDate, birthDate, time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC))
}

func fullYears(from, to time.Time) int {
	f := dateOnly(from)
	t := dateOnly(to)
	years := t.Year() - f.Year()
	if t.Month() < f.Month() || (t.Month() == f.Month() && t.Day() < f.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
