// Package trtext Türkçe'ye özgü metin işlemleri (İ/ı dönüşümleri, ad biçimlendirme, ay adları).
package trtext

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.Turkish)
	lowerCaser = cases.Lower(language.Turkish)
	upperCaser = cases.Upper(language.Turkish)
)

// Name kişi adlarını Türkçe kurallarla baş harfi büyük yazar ve fazla boşlukları sıkıştırır.
// "  ayşe   IŞIK " -> "Ayşe Işık"
func Name(s string) string {
	return titleCaser.String(strings.Join(strings.Fields(s), " "))
}

// Lower Türkçe küçük harfe çevirir ("İSTANBUL" -> "istanbul", "IŞIK" -> "ışık").
func Lower(s string) string {
	return lowerCaser.String(s)
}

// Upper Türkçe büyük harfe çevirir ("istanbul" -> "İSTANBUL").
func Upper(s string) string {
	return upperCaser.String(s)
}

// FoldSearch arama karşılaştırmaları için metni kırpıp Türkçe küçük harfe çevirir.
func FoldSearch(s string) string {
	return Lower(strings.TrimSpace(s))
}

var months = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthName 1-12 arası ay numarasının Türkçe adını döner.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return months[m-1]
}

// PeriodLabel "Mart 2025" biçiminde dönem etiketi üretir.
func PeriodLabel(year, month int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

// MonthLabel verilen zamanın dönem etiketini döner.
func MonthLabel(t time.Time) string {
	return PeriodLabel(t.Year(), int(t.Month()))
}
