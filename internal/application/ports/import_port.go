package ports

import (
	"io"

	"github.com/jhoicas/ik-portal/internal/application/dto"
)

// EmployeeRow içe aktarılan tek bir personel satırı. Line dosyadaki satır numarasıdır.
type EmployeeRow struct {
	Line    int
	Request dto.EmployeeRequest
	Err     error // satır ayrıştırılamadıysa dolu
}

// EmployeeImportParser personel dosyasını satırlara ayırır.
type EmployeeImportParser interface {
	ParseEmployees(r io.Reader) ([]EmployeeRow, error)
}
