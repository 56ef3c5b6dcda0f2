package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"12.5":       "12,50",
		"1234":       "1.234,00",
		"1234567.89": "1.234.567,89",
		"-2500":      "-2.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestMaskNationalID(t *testing.T) {
	assert.Equal(t, "100******46", maskNationalID("10000000146"))
	assert.Equal(t, "-", maskNationalID("123"))
}

func TestTr_TurkceHarflerKatlanir(t *testing.T) {
	assert.Equal(t, "Isci SGK payi - Ucret", tr("İşçi SGK payı - Ucret"))
	assert.Equal(t, "Çalisan Ödemesi", tr("Çalışan Ödemesi"), "ç ve ö cp1252 içinde kalır")
}

func TestRenderPayslip(t *testing.T) {
	g := NewMarotoPDFGenerator()
	out, err := g.RenderPayslip(ports.PayslipData{
		Company:        &entity.Company{ID: "c1", Name: "Örnek Yazılım A.Ş.", TaxNumber: "1234567890", TaxOffice: "Kadıköy"},
		Employee:       &entity.Employee{ID: "e1", FirstName: "Ayşe", LastName: "Yılmaz", EmployeeNumber: "P-001", NationalID: "10000000146", Position: "Geliştirici"},
		DepartmentName: "Yazılım",
		Payroll: &entity.Payroll{
			ID: "p1", Year: 2025, Month: 3, Status: entity.PayrollApproved,
			BaseSalary: decimal.NewFromInt(50000), Gross: decimal.NewFromInt(50000),
			Net: decimal.RequireFromString("39250.12"), CreatedAt: time.Now(),
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPayslip_EksikVeri(t *testing.T) {
	_, err := NewMarotoPDFGenerator().RenderPayslip(ports.PayslipData{})
	assert.Error(t, err)
}
