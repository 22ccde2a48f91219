package report

import (
	"context"

	"github.com/invorya/inventra-api/internal/application/dto"
)

// SalesReportPDFGenerator genera la representación PDF del reporte de ventas.
type SalesReportPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, report *dto.SalesReportDTO) ([]byte, error)
}
