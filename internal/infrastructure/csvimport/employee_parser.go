// Package csvimport personel CSV dosyalarını ayrıştırır.
// Excel'in Türkçe yerel ayarda ürettiği Windows-1254 ve noktalı virgüllü dosyalar da desteklenir.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

var _ ports.EmployeeImportParser = (*EmployeeParser)(nil)

// MaxRows tek dosyada kabul edilen en fazla veri satırı.
const MaxRows = 5000

const maxFileBytes = 5 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// columns başlık adı (katlanmış) → alan.
var columns = map[string]string{
	"sicil_no":           "employee_number",
	"sicil":              "employee_number",
	"employee_number":    "employee_number",
	"ad":                 "first_name",
	"adi":                "first_name",
	"first_name":         "first_name",
	"soyad":              "last_name",
	"soyadi":             "last_name",
	"last_name":          "last_name",
	"tc_kimlik_no":       "national_id",
	"tckn":               "national_id",
	"national_id":        "national_id",
	"e_posta":            "email",
	"eposta":             "email",
	"email":              "email",
	"telefon":            "phone",
	"phone":              "phone",
	"pozisyon":           "position",
	"unvan":              "position",
	"position":           "position",
	"departman_id":       "department_id",
	"department_id":      "department_id",
	"ise_giris_tarihi":   "hire_date",
	"hire_date":          "hire_date",
	"dogum_tarihi":       "birth_date",
	"birth_date":         "birth_date",
	"calisma_tipi":       "employment_type",
	"employment_type":    "employment_type",
	"maas":               "salary",
	"brut_maas":          "salary",
	"salary":             "salary",
	"iban":               "iban",
	"adres":              "address",
	"address":            "address",
	"acil_durum_kisi":    "emergency_contact_name",
	"acil_durum_telefon": "emergency_contact_phone",
}

var required = []string{"first_name", "last_name", "hire_date"}

// EmployeeParser CSV ayrıştırıcısı. Durumsuzdur.
type EmployeeParser struct{}

// NewEmployeeParser kurucu.
func NewEmployeeParser() *EmployeeParser { return &EmployeeParser{} }

// ParseEmployees dosyayı okur. Başlık hataları tüm dosyayı reddeder; satır hataları EmployeeRow.Err içinde döner.
func (p *EmployeeParser) ParseEmployees(r io.Reader) ([]ports.EmployeeRow, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("dosya okunamadı: %w", err)
	}
	if len(raw) > maxFileBytes {
		return nil, fmt.Errorf("dosya boyutu %d MB sınırını aşıyor", maxFileBytes>>20)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("dosya boş")
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("başlık satırı okunamadı: %w", err)
	}
	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []ports.EmployeeRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rows = append(rows, ports.EmployeeRow{Line: pe.Line, Err: fmt.Errorf("CSV biçim hatası: %v", pe.Err)})
				continue
			}
			return nil, err
		}
		if blank(rec) {
			continue
		}
		if len(rows) == MaxRows {
			return nil, fmt.Errorf("dosya en fazla %d satır içerebilir", MaxRows)
		}
		line, _ := cr.FieldPos(0)
		req, err := toRequest(rec, index)
		rows = append(rows, ports.EmployeeRow{Line: line, Request: req, Err: err})
	}
	return rows, nil
}

// decode BOM'u atar; geçerli UTF-8 değilse Windows-1254 kabul eder.
func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1254.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("karakter kodlaması çözülemedi: %w", err)
	}
	return string(out), nil
}

// detectDelimiter ilk satırda noktalı virgül virgülden fazlaysa ';' döner.
func detectDelimiter(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		field, ok := columns[headerKey(h)]
		if !ok {
			continue
		}
		if _, dup := index[field]; dup {
			return nil, fmt.Errorf("sütun birden fazla kez tanımlı: %s", strings.TrimSpace(h))
		}
		index[field] = i
	}
	var missing []string
	for _, f := range required {
		if _, ok := index[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("zorunlu sütunlar eksik: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// headerKey "İşe Giriş Tarihi" → "ise_giris_tarihi".
func headerKey(h string) string {
	return headerFold.Replace(trtext.Lower(strings.TrimSpace(h)))
}

var headerFold = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	" ", "_", "-", "_", ".", "",
)

func toRequest(rec []string, index map[string]int) (dto.EmployeeRequest, error) {
	get := func(field string) string {
		i, ok := index[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	req := dto.EmployeeRequest{
		EmployeeNumber:        get("employee_number"),
		FirstName:             get("first_name"),
		LastName:              get("last_name"),
		NationalID:            get("national_id"),
		Email:                 get("email"),
		Phone:                 get("phone"),
		Position:              get("position"),
		HireDate:              get("hire_date"),
		BirthDate:             get("birth_date"),
		EmploymentType:        get("employment_type"),
		IBAN:                  strings.ReplaceAll(get("iban"), " ", ""),
		Address:               get("address"),
		EmergencyContactName:  get("emergency_contact_name"),
		EmergencyContactPhone: get("emergency_contact_phone"),
	}
	if d := get("department_id"); d != "" {
		req.DepartmentID = &d
	}
	if s := get("salary"); s != "" {
		v, err := parseAmount(s)
		if err != nil {
			return req, fmt.Errorf("geçersiz maaş: %s", s)
		}
		req.Salary = v
	}
	if req.FirstName == "" || req.LastName == "" {
		return req, errors.New("ad ve soyad zorunludur")
	}
	return req, nil
}

// parseAmount "12.500,75", "12500,75", "12500.75" ve "45.000" biçimlerini kabul eder.
// Virgül yoksa ve noktadan sonra tam üç hane varsa nokta binlik ayırıcı sayılır.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "TL"))
	s = strings.TrimSpace(strings.TrimPrefix(s, "₺"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Contains(s, "."):
		if i := strings.LastIndex(s, "."); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return decimal.NewFromString(s)
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
