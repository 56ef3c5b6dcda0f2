// Package pdf bordro (ücret pusulası) PDF'ini üretir.
//
// A4 sayfa düzeni:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BAŞLIK: Şirket adı + VKN    │  ÜCRET BORDROSU + Dönem       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERSONEL: Ad Soyad / Sicil / TCKN / Departman / Görev       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KAZANÇLAR            │  KESİNTİLER                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NET ÖDENEN + İşveren maliyeti                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR (doğrulama) + yasal not                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/pkg/trtext"
)

// ── Renk paleti ───────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Yerleşik helvetica yazı tipi cp1252 kapsar; ş, ğ ve ı bu kümede yok.
var latinFold = strings.NewReplacer("ş", "s", "Ş", "S", "ğ", "g", "Ğ", "G", "ı", "i", "İ", "I")

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator ports.PayslipRenderer'ı Maroto v2 ile uygular.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator kurucu.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderPayslip bordro PDF'ini üretir ve baytlarını döner.
func (g *MarotoPDFGenerator) RenderPayslip(d ports.PayslipData) ([]byte, error) {
	if d.Company == nil || d.Employee == nil || d.Payroll == nil {
		return nil, fmt.Errorf("pdf: eksik bordro verisi")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tr("Ücret Bordrosu"), true).
		WithAuthor(tr(d.Company.Name), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d.Company, d.Payroll))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionHeaderRow())
	for _, r := range itemRows(d.Payroll) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d.Payroll))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(d.Payroll))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: belge üretilemedi: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Bölümler ──────────────────────────────────────────────────────────────────

func headerRow(c *entity.Company, p *entity.Payroll) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tr(c.Name), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(tr(fmt.Sprintf("VKN: %s   |   Vergi Dairesi: %s", c.TaxNumber, nonEmpty(c.TaxOffice, "-"))),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(tr("ÜCRET BORDROSU"), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(tr(trtext.PeriodLabel(p.Year, p.Month)), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(tr("Durum: "+statusLabel(p.Status)), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func employeeRow(d ports.PayslipData) core.Row {
	e := d.Employee
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PERSONEL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(tr(e.FullName()), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(tr(fmt.Sprintf("Sicil: %s   |   TCKN: %s   |   Departman: %s   |   Görev: %s",
				nonEmpty(e.EmployeeNumber, "-"), maskNationalID(e.NationalID),
				nonEmpty(d.DepartmentName, "-"), nonEmpty(e.Position, "-"),
			)), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(tr(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Kazançlar", 4, align.Left),
		h("Tutar", 2, align.Right),
		h("Kesintiler", 4, align.Left),
		h("Tutar", 2, align.Right),
	)
}

type item struct {
	label  string
	amount decimal.Decimal
}

// itemRows kazanç ve kesinti kalemlerini yan yana dizer.
func itemRows(p *entity.Payroll) []core.Row {
	earnings := []item{
		{"Temel ücret", p.BaseSalary},
		{"Fazla mesai", p.Overtime},
		{"Prim / ikramiye", p.Bonus},
		{"Yan ödemeler", p.Allowances},
		{"Brüt ücret", p.Gross},
		{"SGK matrahı", p.SGKBase},
		{"Kümülatif GV matrahı", p.CumulativeTaxBase},
	}
	deductions := []item{
		{"SGK işçi payı (%14)", p.SGKEmployee},
		{"İşsizlik işçi payı (%1)", p.UnemploymentEmployee},
		{"Gelir vergisi", p.IncomeTax},
		{"Damga vergisi", p.StampTax},
		{"Diğer kesintiler", p.OtherDeductions},
		{"GV istisnası", p.IncomeTaxExemption},
		{"DV istisnası", p.StampTaxExemption},
	}
	n := max(len(earnings), len(deductions))
	out := make([]core.Row, 0, n)
	cell := func(it *item, size int) []core.Col {
		if it == nil {
			return []core.Col{col.New(size), col.New(2)}
		}
		return []core.Col{
			col.New(size).Add(text.New(tr(it.label), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		}
	}
	for i := 0; i < n; i++ {
		var e, d *item
		if i < len(earnings) {
			e = &earnings[i]
		}
		if i < len(deductions) {
			d = &deductions[i]
		}
		cols := append(cell(e, 4), cell(d, 4)...)
		out = append(out, row.New(6).Add(cols...))
	}
	return out
}

func totalsRow(p *entity.Payroll) core.Row {
	label := func(s string) core.Component {
		return text.New(tr(s), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(tr(s), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: right, Top: 12})
	}
	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Toplam kesinti:"),
			grand("NET ÖDENEN:", 2),
		),
		col.New(4).Add(
			value(formatMoney(p.TotalDeductions)+" TL"),
			grand(formatMoney(p.Net)+" TL", 1),
		),
	)
}

func footerRow(p *entity.Payroll) core.Row {
	return row.New(34).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("bordro:%s:%s", p.ID, p.Net.StringFixed(2)), props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New(tr(fmt.Sprintf("İşveren SGK payı: %s TL   |   İşveren işsizlik payı: %s TL   |   İşveren maliyeti: %s TL",
				formatMoney(p.SGKEmployer), formatMoney(p.UnemploymentEmployer), formatMoney(p.EmployerCost))),
				props.Text{Size: 7.5, Top: 3, Left: 3, Color: colorGray}),
			text.New(tr("Bu belge 5510 ve 193 sayılı kanunlar uyarınca hesaplanan aylık ücret bordrosudur."),
				props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
			text.New(tr("Bordro No: "+p.ID), props.Text{Size: 6.5, Top: 20, Left: 3, Color: colorGray}),
		),
	)
}

// ── yardımcılar ───────────────────────────────────────────────────────────────

func tr(s string) string { return latinFold.Replace(s) }

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func statusLabel(s string) string {
	switch s {
	case entity.PayrollDraft:
		return "Taslak"
	case entity.PayrollApproved:
		return "Onaylandı"
	case entity.PayrollPaid:
		return "Ödendi"
	}
	return s
}

// maskNationalID ilk 3 ve son 2 hane dışını gizler: 123******90.
func maskNationalID(id string) string {
	if len(id) != 11 {
		return "-"
	}
	return id[:3] + strings.Repeat("*", 6) + id[9:]
}

// formatMoney Türk biçimi: binlik ayırıcı nokta, ondalık virgül.
// Ör: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

var _ ports.PayslipRenderer = (*MarotoPDFGenerator)(nil)
