package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/domain"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// PayrollDocumentUseCase bordro PDF'i ve dönem dışa aktarımları.
type PayrollDocumentUseCase struct {
	payrolls    *PayrollUseCase
	repo        repository.PayrollRepository
	companies   repository.CompanyRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	renderer    ports.PayslipRenderer
	exporter    ports.PayrollExporter
	archiver    ports.Archiver
	recorder    *Recorder
}

// NewPayrollDocumentUseCase kurucu.
func NewPayrollDocumentUseCase(
	payrolls *PayrollUseCase,
	repo repository.PayrollRepository,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	renderer ports.PayslipRenderer,
	exporter ports.PayrollExporter,
	archiver ports.Archiver,
	recorder *Recorder,
) *PayrollDocumentUseCase {
	return &PayrollDocumentUseCase{
		payrolls: payrolls, repo: repo, companies: companies, employees: employees,
		departments: departments, renderer: renderer, exporter: exporter, archiver: archiver, recorder: recorder,
	}
}

// Payslip tek bordronun PDF'ini üretir. Personel yalnızca kendi bordrosunu indirebilir.
func (uc *PayrollDocumentUseCase) Payslip(ctx context.Context, a Actor, id string) (*dto.PayrollExport, error) {
	p, err := uc.payrolls.GetByID(ctx, a, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}
	data, err := uc.payslipData(ctx, company, p)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.RenderPayslip(data)
	if err != nil {
		return nil, fmt.Errorf("bordro pdf: %w", err)
	}
	return &dto.PayrollExport{
		FileName:    payslipName(data),
		ContentType: "application/pdf",
		Content:     pdf,
	}, nil
}

// ExportXML dönemin tüm bordrolarını XML olarak dışa aktarır.
func (uc *PayrollDocumentUseCase) ExportXML(ctx context.Context, a Actor, year, month int) (*dto.PayrollExport, error) {
	period, err := uc.period(ctx, a, year, month)
	if err != nil {
		return nil, err
	}
	content, digest, err := uc.exporter.ExportPeriod(*period)
	if err != nil {
		return nil, fmt.Errorf("bordro xml: %w", err)
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionExport, EntityType: "payroll",
		Changes: map[string]any{"format": "xml", "year": year, "month": month, "count": len(period.Items), "digest": digest}})
	return &dto.PayrollExport{
		FileName:    fmt.Sprintf("bordro-%d-%02d.xml", year, month),
		ContentType: "application/xml",
		Content:     content,
		Digest:      digest,
	}, nil
}

// ExportArchive dönemin tüm bordro PDF'lerini ve XML dökümünü tek ZIP'te toplar.
func (uc *PayrollDocumentUseCase) ExportArchive(ctx context.Context, a Actor, year, month int) (*dto.PayrollExport, error) {
	period, err := uc.period(ctx, a, year, month)
	if err != nil {
		return nil, err
	}
	files := make([]ports.ArchiveFile, 0, len(period.Items)+1)
	for _, item := range period.Items {
		pdf, err := uc.renderer.RenderPayslip(item)
		if err != nil {
			return nil, fmt.Errorf("bordro pdf %s: %w", item.Employee.FullName(), err)
		}
		files = append(files, ports.ArchiveFile{Name: payslipName(item), Content: pdf})
	}
	content, digest, err := uc.exporter.ExportPeriod(*period)
	if err != nil {
		return nil, fmt.Errorf("bordro xml: %w", err)
	}
	files = append(files, ports.ArchiveFile{Name: fmt.Sprintf("bordro-%d-%02d.xml", year, month), Content: content})
	zip, err := uc.archiver.Archive(files)
	if err != nil {
		return nil, fmt.Errorf("bordro arşivi: %w", err)
	}
	uc.recorder.Record(ctx, a, Event{Action: entity.ActionExport, EntityType: "payroll",
		Changes: map[string]any{"format": "zip", "year": year, "month": month, "count": len(period.Items)}})
	return &dto.PayrollExport{
		FileName:    fmt.Sprintf("bordro-%d-%02d.zip", year, month),
		ContentType: "application/zip",
		Content:     zip,
		Digest:      digest,
	}, nil
}

func (uc *PayrollDocumentUseCase) period(ctx context.Context, a Actor, year, month int) (*ports.PayrollPeriod, error) {
	if !a.Can(entity.PermPayrollWrite) {
		return nil, domain.ErrForbidden
	}
	if err := checkPeriod(year, month); err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByPeriod(ctx, a.CompanyID, year, month)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: dönem için bordro yok", domain.ErrNotFound)
	}
	out := &ports.PayrollPeriod{Company: company, Year: year, Month: month}
	for _, p := range list {
		data, err := uc.payslipData(ctx, company, p)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, data)
	}
	return out, nil
}

func (uc *PayrollDocumentUseCase) company(ctx context.Context, id string) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *PayrollDocumentUseCase) payslipData(ctx context.Context, company *entity.Company, p *entity.Payroll) (ports.PayslipData, error) {
	emp, err := uc.employees.GetByID(ctx, company.ID, p.EmployeeID)
	if err != nil {
		return ports.PayslipData{}, err
	}
	if emp == nil {
		return ports.PayslipData{}, fmt.Errorf("%w: bordronun personeli bulunamadı", domain.ErrNotFound)
	}
	data := ports.PayslipData{Company: company, Employee: emp, Payroll: p}
	if emp.DepartmentID != nil {
		if d, err := uc.departments.GetByID(ctx, company.ID, *emp.DepartmentID); err == nil && d != nil {
			data.DepartmentName = d.Name
		}
	}
	return data, nil
}

func payslipName(d ports.PayslipData) string {
	num := d.Employee.EmployeeNumber
	if num == "" {
		num = d.Employee.ID
	}
	return fmt.Sprintf("bordro-%d-%02d-%s.pdf", d.Payroll.Year, d.Payroll.Month, num)
}
