package xmlexport

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

func period() ports.PayrollPeriod {
	company := &entity.Company{ID: "c1", Name: "Örnek A.Ş.", TaxNumber: "1234567890"}
	item := func(id, first string, net int64) ports.PayslipData {
		return ports.PayslipData{
			Company:  company,
			Employee: &entity.Employee{ID: "e-" + id, FirstName: first, LastName: "Kaya", EmployeeNumber: "P-" + id},
			Payroll: &entity.Payroll{ID: id, Year: 2025, Month: 4, Status: entity.PayrollApproved,
				Gross: decimal.NewFromInt(net + 10000), Net: decimal.NewFromInt(net), EmployerCost: decimal.NewFromInt(net + 20000)},
		}
	}
	return ports.PayrollPeriod{Company: company, Year: 2025, Month: 4, Items: []ports.PayslipData{
		item("1", "Ali", 30000), item("2", "Zeynep", 45000),
	}}
}

func TestExportPeriod_Yapi(t *testing.T) {
	content, digest, err := NewPayrollExporter().ExportPeriod(period())
	require.NoError(t, err)
	assert.NotEmpty(t, digest)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(content))
	root := doc.SelectElement("PayrollExport")
	require.NotNil(t, root)
	assert.Equal(t, "2025", root.SelectAttrValue("year", ""))
	assert.Len(t, root.FindElements("./Payrolls/Payroll"), 2)
	assert.Equal(t, "75000.00", root.FindElement("./Totals/Net").Text())
	assert.Equal(t, "Örnek A.Ş.", root.FindElement("./Company/Name").Text())
}

func TestExportPeriod_OzetUretimZamanindanBagimsiz(t *testing.T) {
	e1 := &PayrollExporter{now: func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }}
	e2 := &PayrollExporter{now: func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }}

	c1, d1, err := e1.ExportPeriod(period())
	require.NoError(t, err)
	c2, d2, err := e2.ExportPeriod(period())
	require.NoError(t, err)

	assert.NotEqual(t, string(c1), string(c2))
	assert.Equal(t, d1, d2)
}

func TestExportPeriod_VeriDegisinceOzetDegisir(t *testing.T) {
	p := period()
	_, d1, err := NewPayrollExporter().ExportPeriod(p)
	require.NoError(t, err)

	p.Items[0].Payroll.Net = decimal.NewFromInt(30001)
	_, d2, err := NewPayrollExporter().ExportPeriod(p)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestDigest_KanonikBicim(t *testing.T) {
	a, err := Digest([]byte(`<a  y="2" x="1"><b/></a>`))
	require.NoError(t, err)
	b, err := Digest([]byte(`<a x="1" y="2"><b></b></a>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
