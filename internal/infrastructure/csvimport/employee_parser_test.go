package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseEmployees_UTF8Virgullu(t *testing.T) {
	in := "\xEF\xBB\xBFSicil No,Ad,Soyad,E-posta,İşe Giriş Tarihi,Maaş\n" +
		"P001,Ayşe,Yılmaz,ayse@firma.com.tr,2024-01-15,35000.50\n" +
		"\n" +
		"P002,,Kaya,,2024-02-01,\n"

	rows, err := NewEmployeeParser().ParseEmployees(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.NoError(t, rows[0].Err)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "P001", rows[0].Request.EmployeeNumber)
	assert.Equal(t, "Ayşe", rows[0].Request.FirstName)
	assert.Equal(t, "ayse@firma.com.tr", rows[0].Request.Email)
	assert.Equal(t, "2024-01-15", rows[0].Request.HireDate)
	assert.True(t, decimal.RequireFromString("35000.50").Equal(rows[0].Request.Salary))

	assert.Error(t, rows[1].Err, "ad boş")
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseEmployees_Windows1254NoktaliVirgul(t *testing.T) {
	src := "Ad;Soyad;İşe Giriş Tarihi;Maaş;IBAN\nŞükrü;Işık;2023-05-02;12.500,75;TR12 0006 1005 1978 6457 8413 26\n"
	enc, err := charmap.Windows1254.NewEncoder().Bytes([]byte(src))
	require.NoError(t, err)

	rows, err := NewEmployeeParser().ParseEmployees(bytes.NewReader(enc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, rows[0].Err)

	r := rows[0].Request
	assert.Equal(t, "Şükrü", r.FirstName)
	assert.Equal(t, "Işık", r.LastName)
	assert.True(t, decimal.RequireFromString("12500.75").Equal(r.Salary))
	assert.Equal(t, "TR120006100519786457841326", r.IBAN)
}

func TestParseEmployees_ZorunluSutunEksik(t *testing.T) {
	_, err := NewEmployeeParser().ParseEmployees(strings.NewReader("Ad,Soyad\nA,B\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hire_date")
}

func TestParseEmployees_TekrarlananSutun(t *testing.T) {
	_, err := NewEmployeeParser().ParseEmployees(strings.NewReader("Ad,first_name,Soyad,hire_date\n"))
	assert.Error(t, err)
}

func TestParseEmployees_BosDosya(t *testing.T) {
	_, err := NewEmployeeParser().ParseEmployees(strings.NewReader("  \n"))
	assert.Error(t, err)
}

func TestParseEmployees_GecersizMaas(t *testing.T) {
	rows, err := NewEmployeeParser().ParseEmployees(strings.NewReader("ad,soyad,hire_date,salary\nA,B,2024-01-01,çok\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.ErrorContains(t, rows[0].Err, "maaş")
}

func TestHeaderKey(t *testing.T) {
	assert.Equal(t, "ise_giris_tarihi", headerKey(" İşe Giriş Tarihi "))
	assert.Equal(t, "email", headerKey("EMAIL"))
	assert.Equal(t, "tc_kimlik_no", headerKey("TC Kimlik No"))
}

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{
		"12.500,75": "12500.75",
		"12500,75":  "12500.75",
		"12500.75":  "12500.75",
		"1.250.000": "1250000",
		"₺1.000 ":   "1000",
		"45.000 TL": "45000",
	} {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), in)
	}
}
