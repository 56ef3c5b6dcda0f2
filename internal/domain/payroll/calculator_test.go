package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: beklenen %s, alınan %s", field, want, got.String())
}

// ── Asgari ücret: vergi istisnası tam uygulanır, net = GV matrahı ───────────

func TestCalculate_AsgariUcret(t *testing.T) {
	r := Calculate(Input{Month: 1, BaseSalary: d("26005.50")}, DefaultRates())

	assertMoney(t, "26005.50", r.Gross, "gross")
	assertMoney(t, "3640.77", r.SGKEmployee, "sgk")
	assertMoney(t, "260.06", r.UnemploymentEmployee, "işsizlik")
	assertMoney(t, "22104.67", r.IncomeTaxBase, "gv matrahı")
	assertMoney(t, "0", r.IncomeTax, "gelir vergisi")
	assertMoney(t, "0", r.StampTax, "damga vergisi")
	assertMoney(t, "22104.67", r.Net, "net")
	assertMoney(t, "4095.87", r.SGKEmployer, "sgk işveren")
	assertMoney(t, "520.11", r.UnemploymentEmployer, "işsizlik işveren")
	assertMoney(t, "30621.48", r.EmployerCost, "işveren maliyeti")
}

func TestCalculate_AsgariUcretUstu(t *testing.T) {
	r := Calculate(Input{Month: 1, BaseSalary: d("50000")}, DefaultRates())

	assertMoney(t, "7000", r.SGKEmployee, "sgk")
	assertMoney(t, "500", r.UnemploymentEmployee, "işsizlik")
	assertMoney(t, "42500", r.IncomeTaxBase, "gv matrahı")
	assertMoney(t, "3315.70", r.IncomeTaxExemption, "gv istisnası")
	assertMoney(t, "3059.30", r.IncomeTax, "gelir vergisi")
	assertMoney(t, "182.12", r.StampTax, "damga vergisi")
	assertMoney(t, "39258.58", r.Net, "net")
}

// ── Kümülatif matrah dilim atladığında ikinci dilim oranı uygulanır ────────

func TestCalculate_DilimGecisi(t *testing.T) {
	r := Calculate(Input{Month: 4, BaseSalary: d("50000"), PriorTaxBase: d("150000")}, DefaultRates())

	// 8.000 * %15 + 34.500 * %20 = 8.100; istisna 3.315,70
	assertMoney(t, "4784.30", r.IncomeTax, "gelir vergisi")
	assertMoney(t, "192500", r.CumulativeTaxBase, "kümülatif matrah")
}

func TestCalculate_SGKTavani(t *testing.T) {
	r := Calculate(Input{Month: 1, BaseSalary: d("300000")}, DefaultRates())

	// tavan = 26.005,50 * 7,5 = 195.041,25
	assertMoney(t, "195041.25", r.SGKBase, "sgk matrahı")
	assertMoney(t, "27305.78", r.SGKEmployee, "sgk")
}

func TestCalculate_DigerKesintilerVeEkOdemeler(t *testing.T) {
	base := Calculate(Input{Month: 1, BaseSalary: d("40000")}, DefaultRates())
	withExtras := Calculate(Input{
		Month: 1, BaseSalary: d("30000"), Overtime: d("5000"), Bonus: d("3000"), Allowances: d("2000"),
		OtherDeductions: d("1000"),
	}, DefaultRates())

	assertMoney(t, "40000", withExtras.Gross, "gross")
	assertMoney(t, base.Net.Sub(d("1000")).String(), withExtras.Net, "net")
}

func TestCumulativeTax(t *testing.T) {
	b := DefaultRates().Brackets
	assertMoney(t, "0", cumulativeTax(decimal.Zero, b), "sıfır")
	assertMoney(t, "23700", cumulativeTax(d("158000"), b), "ilk dilim")
	assertMoney(t, "58100", cumulativeTax(d("330000"), b), "ikinci dilim")
	assertMoney(t, "58100.27", cumulativeTax(d("330001"), b), "fazla")
	// 4.300.000 üzeri %40
	assertMoney(t, cumulativeTax(d("4300000"), b).Add(d("400")).String(), cumulativeTax(d("4301000"), b), "son dilim")
}

func TestRates_WithOverrides(t *testing.T) {
	r := DefaultRates().WithOverrides(map[string]string{
		"payroll.minimum_wage":      "30000",
		"payroll.sgk_employer_rate": "0.2075",
		"payroll.stamp_tax_rate":    "bozuk",
	})
	assertMoney(t, "30000", r.MinimumWage, "asgari ücret")
	assertMoney(t, "0.2075", r.SGKEmployer, "sgk işveren")
	assertMoney(t, "0.00759", r.StampTax, "damga (değişmemeli)")
}
