// Package xmlexport dönem bordrolarını XML'e döker ve kanonik (C14N) SHA-256 özetini hesaplar.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/ik-portal/internal/application/ports"
)

// Namespace dışa aktarım belgesinin ad alanı.
const Namespace = "urn:ik-portal:bordro:1"

// PayrollExporter ports.PayrollExporter'ı uygular.
type PayrollExporter struct {
	now func() time.Time
}

// NewPayrollExporter kurucu.
func NewPayrollExporter() *PayrollExporter {
	return &PayrollExporter{now: time.Now}
}

// ExportPeriod belgeyi üretir. Özet, üretim zamanı (GeneratedAt) hariç
// <Payrolls> düğümünün kanonik biçiminden hesaplanır; aynı veri aynı özeti verir.
func (e *PayrollExporter) ExportPeriod(p ports.PayrollPeriod) ([]byte, string, error) {
	if p.Company == nil {
		return nil, "", fmt.Errorf("xmlexport: şirket bilgisi eksik")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("PayrollExport")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("year", strconv.Itoa(p.Year))
	root.CreateAttr("month", strconv.Itoa(p.Month))

	company := root.CreateElement("Company")
	company.CreateAttr("taxNumber", p.Company.TaxNumber)
	company.CreateElement("Name").SetText(p.Company.Name)
	if p.Company.TaxOffice != "" {
		company.CreateElement("TaxOffice").SetText(p.Company.TaxOffice)
	}
	root.CreateElement("GeneratedAt").SetText(e.now().UTC().Format(time.RFC3339))

	list := root.CreateElement("Payrolls")
	list.CreateAttr("xmlns", Namespace)
	list.CreateAttr("count", strconv.Itoa(len(p.Items)))
	totals := map[string]decimal.Decimal{}
	for _, it := range p.Items {
		if it.Employee == nil || it.Payroll == nil {
			return nil, "", fmt.Errorf("xmlexport: eksik bordro kalemi")
		}
		pr := it.Payroll
		el := list.CreateElement("Payroll")
		el.CreateAttr("id", pr.ID)
		el.CreateAttr("status", pr.Status)

		emp := el.CreateElement("Employee")
		emp.CreateAttr("number", it.Employee.EmployeeNumber)
		emp.CreateAttr("nationalId", it.Employee.NationalID)
		emp.CreateElement("FirstName").SetText(it.Employee.FirstName)
		emp.CreateElement("LastName").SetText(it.Employee.LastName)
		if it.DepartmentName != "" {
			emp.CreateElement("Department").SetText(it.DepartmentName)
		}
		if it.Employee.IBAN != "" {
			emp.CreateElement("IBAN").SetText(it.Employee.IBAN)
		}

		earn := el.CreateElement("Earnings")
		amount(earn, "BaseSalary", pr.BaseSalary)
		amount(earn, "Overtime", pr.Overtime)
		amount(earn, "Bonus", pr.Bonus)
		amount(earn, "Allowances", pr.Allowances)
		amount(earn, "Gross", pr.Gross)

		ded := el.CreateElement("Deductions")
		amount(ded, "SGKBase", pr.SGKBase)
		amount(ded, "SGKEmployee", pr.SGKEmployee)
		amount(ded, "UnemploymentEmployee", pr.UnemploymentEmployee)
		amount(ded, "IncomeTaxBase", pr.IncomeTaxBase)
		amount(ded, "IncomeTax", pr.IncomeTax)
		amount(ded, "StampTax", pr.StampTax)
		amount(ded, "IncomeTaxExemption", pr.IncomeTaxExemption)
		amount(ded, "StampTaxExemption", pr.StampTaxExemption)
		amount(ded, "OtherDeductions", pr.OtherDeductions)
		amount(ded, "Total", pr.TotalDeductions)

		amount(el, "Net", pr.Net)
		emplr := el.CreateElement("Employer")
		amount(emplr, "SGKEmployer", pr.SGKEmployer)
		amount(emplr, "UnemploymentEmployer", pr.UnemploymentEmployer)
		amount(emplr, "Cost", pr.EmployerCost)

		totals["Gross"] = totals["Gross"].Add(pr.Gross)
		totals["Net"] = totals["Net"].Add(pr.Net)
		totals["EmployerCost"] = totals["EmployerCost"].Add(pr.EmployerCost)
	}
	tot := root.CreateElement("Totals")
	for _, k := range []string{"Gross", "Net", "EmployerCost"} {
		amount(tot, k, totals[k])
	}

	doc.Indent(2)
	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: yazılamadı: %w", err)
	}

	sub := etree.NewDocument()
	sub.SetRoot(list.Copy())
	raw, err := sub.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: özet düğümü: %w", err)
	}
	digest, err := Digest(raw)
	if err != nil {
		return nil, "", err
	}
	return content, digest, nil
}

// Digest XML'in kanonik (C14N) biçiminin SHA-256 özetini base64 döner.
func Digest(xmlBytes []byte) (string, error) {
	canonical, err := c14n.Canonicalize(xml.NewDecoder(bytes.NewReader(xmlBytes)))
	if err != nil {
		return "", fmt.Errorf("xmlexport: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func amount(parent *etree.Element, name string, v decimal.Decimal) {
	parent.CreateElement(name).SetText(v.StringFixed(2))
}

var _ ports.PayrollExporter = (*PayrollExporter)(nil)
