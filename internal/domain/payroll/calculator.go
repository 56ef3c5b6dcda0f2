// Package payroll Türkiye bordro hesaplamasını içerir (domain servisi, saf fonksiyonlar).
//
// Hesap sırası:
//
//	brüt = temel + fazla mesai + prim + yan ödemeler
//	SGK matrahı = min(brüt, asgari ücret * tavan katsayısı)
//	SGK işçi (%14) + işsizlik işçi (%1) matrahtan
//	GV matrahı = brüt - SGK işçi - işsizlik işçi
//	gelir vergisi = kümülatif dilimlerden (önceki ayların matrahı dikkate alınır)
//	damga vergisi = brüt * %0,759
//	asgari ücret istisnası: asgari ücrete isabet eden GV ve DV kadar indirim
//	net = brüt - kesintiler
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// Bracket kümülatif gelir vergisi dilimi. UpTo sıfırsa üst sınır yoktur.
type Bracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Rates hesaplamada kullanılan oranlar. Ayarlardan ezilebilir.
type Rates struct {
	MinimumWage          decimal.Decimal
	SGKEmployee          decimal.Decimal
	UnemploymentEmployee decimal.Decimal
	SGKEmployer          decimal.Decimal
	UnemploymentEmployer decimal.Decimal
	StampTax             decimal.Decimal
	SGKCeilingMultiplier decimal.Decimal
	Brackets             []Bracket
}

// DefaultRates 2025 yılı ücret gelirleri için geçerli oranlar.
func DefaultRates() Rates {
	return Rates{
		MinimumWage:          decimal.RequireFromString("26005.50"),
		SGKEmployee:          decimal.RequireFromString("0.14"),
		UnemploymentEmployee: decimal.RequireFromString("0.01"),
		SGKEmployer:          decimal.RequireFromString("0.1575"),
		UnemploymentEmployer: decimal.RequireFromString("0.02"),
		StampTax:             decimal.RequireFromString("0.00759"),
		SGKCeilingMultiplier: decimal.RequireFromString("7.5"),
		Brackets: []Bracket{
			{UpTo: decimal.NewFromInt(158000), Rate: decimal.RequireFromString("0.15")},
			{UpTo: decimal.NewFromInt(330000), Rate: decimal.RequireFromString("0.20")},
			{UpTo: decimal.NewFromInt(1200000), Rate: decimal.RequireFromString("0.27")},
			{UpTo: decimal.NewFromInt(4300000), Rate: decimal.RequireFromString("0.35")},
			{UpTo: decimal.Zero, Rate: decimal.RequireFromString("0.40")},
		},
	}
}

// Input bir aylık bordro girdisi.
type Input struct {
	Month           int // 1-12
	BaseSalary      decimal.Decimal
	Overtime        decimal.Decimal
	Bonus           decimal.Decimal
	Allowances      decimal.Decimal
	OtherDeductions decimal.Decimal
	// PriorTaxBase aynı yılın önceki aylarındaki GV matrahları toplamı.
	PriorTaxBase decimal.Decimal
}

// Result hesaplanan bordro kalemleri (2 ondalığa yuvarlanmış).
type Result struct {
	Gross                decimal.Decimal
	SGKBase              decimal.Decimal
	SGKEmployee          decimal.Decimal
	UnemploymentEmployee decimal.Decimal
	IncomeTaxBase        decimal.Decimal
	CumulativeTaxBase    decimal.Decimal
	IncomeTax            decimal.Decimal // istisna sonrası
	StampTax             decimal.Decimal // istisna sonrası
	IncomeTaxExemption   decimal.Decimal
	StampTaxExemption    decimal.Decimal
	OtherDeductions      decimal.Decimal
	TotalDeductions      decimal.Decimal
	Net                  decimal.Decimal
	SGKEmployer          decimal.Decimal
	UnemploymentEmployer decimal.Decimal
	EmployerCost         decimal.Decimal
}

// Calculate bordroyu hesaplar.
func Calculate(in Input, r Rates) Result {
	month := in.Month
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}

	gross := in.BaseSalary.Add(in.Overtime).Add(in.Bonus).Add(in.Allowances).Round(2)

	sgkBase := gross
	if ceiling := r.MinimumWage.Mul(r.SGKCeilingMultiplier); ceiling.IsPositive() && sgkBase.GreaterThan(ceiling) {
		sgkBase = ceiling.Round(2)
	}
	sgkEmp := sgkBase.Mul(r.SGKEmployee).Round(2)
	unempEmp := sgkBase.Mul(r.UnemploymentEmployee).Round(2)

	taxBase := gross.Sub(sgkEmp).Sub(unempEmp)
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}
	grossTax := cumulativeTax(in.PriorTaxBase.Add(taxBase), r.Brackets).
		Sub(cumulativeTax(in.PriorTaxBase, r.Brackets)).Round(2)
	grossStamp := gross.Mul(r.StampTax).Round(2)

	// Asgari ücret istisnası: aynı ay için asgari ücretin vergisi kadar.
	mwSGK := r.MinimumWage.Mul(r.SGKEmployee).Round(2)
	mwUnemp := r.MinimumWage.Mul(r.UnemploymentEmployee).Round(2)
	mwTaxBase := r.MinimumWage.Sub(mwSGK).Sub(mwUnemp)
	mwPrior := mwTaxBase.Mul(decimal.NewFromInt(int64(month - 1)))
	taxExemption := decimal.Min(grossTax,
		cumulativeTax(mwPrior.Add(mwTaxBase), r.Brackets).Sub(cumulativeTax(mwPrior, r.Brackets)).Round(2))
	stampExemption := decimal.Min(grossStamp, r.MinimumWage.Mul(r.StampTax).Round(2))

	incomeTax := grossTax.Sub(taxExemption)
	stampTax := grossStamp.Sub(stampExemption)

	total := sgkEmp.Add(unempEmp).Add(incomeTax).Add(stampTax).Add(in.OtherDeductions).Round(2)
	net := gross.Sub(total)

	sgkEmployer := sgkBase.Mul(r.SGKEmployer).Round(2)
	unempEmployer := sgkBase.Mul(r.UnemploymentEmployer).Round(2)

	return Result{
		Gross:                gross,
		SGKBase:              sgkBase,
		SGKEmployee:          sgkEmp,
		UnemploymentEmployee: unempEmp,
		IncomeTaxBase:        taxBase.Round(2),
		CumulativeTaxBase:    in.PriorTaxBase.Add(taxBase).Round(2),
		IncomeTax:            incomeTax,
		StampTax:             stampTax,
		IncomeTaxExemption:   taxExemption,
		StampTaxExemption:    stampExemption,
		OtherDeductions:      in.OtherDeductions.Round(2),
		TotalDeductions:      total,
		Net:                  net,
		SGKEmployer:          sgkEmployer,
		UnemploymentEmployer: unempEmployer,
		EmployerCost:         gross.Add(sgkEmployer).Add(unempEmployer),
	}
}

// cumulativeTax yıl başından itibaren "amount" matrah için toplam vergiyi hesaplar.
func cumulativeTax(amount decimal.Decimal, brackets []Bracket) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if b.UpTo.IsZero() || amount.LessThanOrEqual(b.UpTo) {
			return tax.Add(amount.Sub(lower).Mul(b.Rate))
		}
		tax = tax.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = b.UpTo
	}
	return tax
}

// WithOverrides ayarlardan gelen değerleri (anahtar -> ondalık metin) oranlara uygular.
// Ayrıştırılamayan değerler yok sayılır.
func (r Rates) WithOverrides(values map[string]string) Rates {
	set := func(key string, dst *decimal.Decimal) {
		if v, ok := values[key]; ok {
			if parsed, err := decimal.NewFromString(v); err == nil {
				*dst = parsed
			}
		}
	}
	set(entity.SettingMinimumWage, &r.MinimumWage)
	set(entity.SettingSGKEmployeeRate, &r.SGKEmployee)
	set(entity.SettingUnemploymentEmpRate, &r.UnemploymentEmployee)
	set(entity.SettingSGKEmployerRate, &r.SGKEmployer)
	set(entity.SettingUnemploymentEmployer, &r.UnemploymentEmployer)
	set(entity.SettingStampTaxRate, &r.StampTax)
	set(entity.SettingSGKCeilingMultiplier, &r.SGKCeilingMultiplier)
	return r
}
