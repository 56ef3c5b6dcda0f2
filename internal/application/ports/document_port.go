package ports

import (
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// PayslipData bordro belgesi için gereken kayıtlar.
type PayslipData struct {
	Company        *entity.Company
	Employee       *entity.Employee
	DepartmentName string
	Payroll        *entity.Payroll
}

// PayslipRenderer bordro PDF'i üretir.
type PayslipRenderer interface {
	RenderPayslip(data PayslipData) ([]byte, error)
}

// PayrollPeriod bir dönemin tüm bordroları.
type PayrollPeriod struct {
	Company *entity.Company
	Year    int
	Month   int
	Items   []PayslipData
}

// PayrollExporter dönem bordrolarını XML'e çevirir ve kanonik özetini döner.
type PayrollExporter interface {
	ExportPeriod(p PayrollPeriod) (content []byte, digest string, err error)
}

// ArchiveFile arşive eklenecek dosya.
type ArchiveFile struct {
	Name    string
	Content []byte
}

// Archiver dosyaları tek bir arşivde toplar.
type Archiver interface {
	Archive(files []ArchiveFile) ([]byte, error)
}
