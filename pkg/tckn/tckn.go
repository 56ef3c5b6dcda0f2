// Package tckn Türkiye'de kullanılan kimlik ve vergi numaralarının
// (TC Kimlik No, Vergi Kimlik No, TR IBAN) kontrol hanesi doğrulamalarını içerir.
package tckn

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateTCKN 11 haneli TC Kimlik Numarasını doğrular.
//
//   - ilk hane 0 olamaz
//   - 10. hane = ((tek hanelerin toplamı * 7) - çift hanelerin toplamı) mod 10
//   - 11. hane = ilk 10 hanenin toplamı mod 10
func ValidateTCKN(id string) error {
	digits := extractDigits(id)
	if len(digits) != 11 || len(digits) != len(id) {
		return fmt.Errorf("tckn: 11 haneli olmalı, %d karakter alındı", len(id))
	}
	if digits[0] == 0 {
		return fmt.Errorf("tckn: ilk hane 0 olamaz")
	}
	odd := digits[0] + digits[2] + digits[4] + digits[6] + digits[8]
	even := digits[1] + digits[3] + digits[5] + digits[7]
	d10 := ((odd*7-even)%10 + 10) % 10
	if digits[9] != d10 {
		return fmt.Errorf("tckn: 10. hane hatalı: beklenen %d, alınan %d", d10, digits[9])
	}
	var sum int
	for _, d := range digits[:10] {
		sum += d
	}
	if digits[10] != sum%10 {
		return fmt.Errorf("tckn: 11. hane hatalı: beklenen %d, alınan %d", sum%10, digits[10])
	}
	return nil
}

// ValidateVKN 10 haneli Vergi Kimlik Numarasını Gelir İdaresi algoritmasıyla doğrular.
func ValidateVKN(vkn string) error {
	digits := extractDigits(vkn)
	if len(digits) != 10 || len(digits) != len(vkn) {
		return fmt.Errorf("vkn: 10 haneli olmalı, %d karakter alındı", len(vkn))
	}
	expected, err := ComputeVKNCheckDigit(vkn[:9])
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("vkn: kontrol hanesi hatalı: beklenen %d, alınan %d", expected, digits[9])
	}
	return nil
}

// ComputeVKNCheckDigit ilk 9 haneden VKN kontrol hanesini hesaplar.
func ComputeVKNCheckDigit(first9 string) (int, error) {
	digits := extractDigits(first9)
	if len(digits) != 9 {
		return 0, fmt.Errorf("vkn: kontrol hanesi için 9 hane gerekir, %d bulundu", len(digits))
	}
	var sum int
	for i, d := range digits {
		tmp := (d + 9 - i) % 10
		if tmp == 0 {
			continue
		}
		v := (tmp * pow2(9-i)) % 9
		if v == 0 {
			v = 9
		}
		sum += v
	}
	return (10 - sum%10) % 10, nil
}

// NormalizeIBAN boşlukları atar ve büyük harfe çevirir.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

// ValidateIBAN TR IBAN'ı doğrular: 26 karakter, "TR" ile başlar, mod 97 = 1.
func ValidateIBAN(iban string) error {
	s := NormalizeIBAN(iban)
	if len(s) != 26 || !strings.HasPrefix(s, "TR") {
		return fmt.Errorf("iban: TR ile başlayan 26 karakter olmalı")
	}
	rearranged := s[4:] + s[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			rem = (rem*100 + int(r-'A'+10)) % 97
		default:
			return fmt.Errorf("iban: geçersiz karakter %q", r)
		}
	}
	if rem != 1 {
		return fmt.Errorf("iban: kontrol haneleri hatalı")
	}
	return nil
}

func pow2(n int) int {
	r := 1
	for i := 0; i < n; i++ {
		r *= 2
	}
	return r
}

func extractDigits(s string) []int {
	var out []int
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, int(r-'0'))
		}
	}
	return out
}
