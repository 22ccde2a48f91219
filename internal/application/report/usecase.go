// Package report contiene los casos de uso de solo lectura: el resumen del
// dashboard y el reporte de ventas por período (JSON y PDF).
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/internal/domain/repository"
)

const reportDateLayout = "2006-01-02"

// UseCase genera el resumen del dashboard y el reporte de ventas.
//
// Fuente de datos: ReportRepository (consultas read-only) más el listado de
// productos en punto de reorden del ProductRepository.
type UseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	generator   SalesReportPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	generator SalesReportPDFGenerator,
) *UseCase {
	return &UseCase{reportRepo: reportRepo, productRepo: productRepo, generator: generator}
}

// GetDashboardSummary construye el DashboardSummaryDTO del mes en curso.
//
// Tres llamadas en paralelo:
//  1. CountEntities            → totales de productos, ventas y compras
//  2. GetSalesMetrics(mes)     → MonthlyRevenue + MonthlyUnits
//  3. GetPurchaseMetrics(mes)  → MonthlySpend
//
// más el listado de productos en punto de reorden.
func (uc *UseCase) GetDashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	type countsResult struct {
		products, sales, purchases int
		err                        error
	}
	type salesResult struct {
		revenue decimal.Decimal
		units   int
		err     error
	}
	type spendResult struct {
		spend decimal.Decimal
		err   error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan salesResult, 1)
	spendCh := make(chan spendResult, 1)

	go func() {
		p, s, c, err := uc.reportRepo.CountEntities(ctx)
		countsCh <- countsResult{p, s, c, err}
	}()
	go func() {
		rev, units, err := uc.reportRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		salesCh <- salesResult{rev, units, err}
	}()
	go func() {
		spend, err := uc.reportRepo.GetPurchaseMetrics(ctx, monthStart, monthEnd)
		spendCh <- spendResult{spend, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	spend := <-spendCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de ventas: %w", sales.err)
	}
	if spend.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de compras: %w", spend.err)
	}

	lowStock, err := uc.productRepo.ListBelowReorderLevel()
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos en reorden: %w", err)
	}
	lowStockDTOs := make([]dto.LowStockProductDTO, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockDTOs = append(lowStockDTOs, dto.LowStockProductDTO{
			ProductID:       p.ID,
			SKU:             p.SKU,
			Name:            p.Name,
			QuantityInStock: p.QuantityInStock,
			ReorderLevel:    p.ReorderLevel,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:    counts.products,
		TotalSales:       counts.sales,
		TotalPurchases:   counts.purchases,
		MonthlyRevenue:   sales.revenue.Round(2),
		MonthlyUnits:     sales.units,
		MonthlySpend:     spend.spend.Round(2),
		LowStockProducts: lowStockDTOs,
		DateLabel:        monthLabel(now),
	}, nil
}

// GetSalesReport agrega las ventas del período [from, to] por producto.
// Las fechas llegan como strings YYYY-MM-DD; un rango invertido es error.
func (uc *UseCase) GetSalesReport(ctx context.Context, from, to string) (*dto.SalesReportDTO, error) {
	start, err := time.Parse(reportDateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha 'from' inválida: %s", domain.ErrInvalidInput, from)
	}
	endDay, err := time.Parse(reportDateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha 'to' inválida: %s", domain.ErrInvalidInput, to)
	}
	if endDay.Before(start) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	end := endDay.Add(24*time.Hour - time.Nanosecond)

	lines, err := uc.reportRepo.GetSalesByProduct(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	out := make([]dto.SalesReportLineDTO, 0, len(lines))
	totalRevenue := decimal.Zero
	totalUnits := 0
	for _, l := range lines {
		out = append(out, dto.SalesReportLineDTO{
			ProductID:    l.ProductID,
			SKU:          l.SKU,
			ProductName:  l.ProductName,
			UnitsSold:    l.UnitsSold,
			TotalRevenue: l.TotalRevenue.Round(2),
		})
		totalRevenue = totalRevenue.Add(l.TotalRevenue)
		totalUnits += l.UnitsSold
	}

	return &dto.SalesReportDTO{
		From:         from,
		To:           to,
		Lines:        out,
		TotalRevenue: totalRevenue.Round(2),
		TotalUnits:   totalUnits,
	}, nil
}

// GetSalesReportPDF genera el reporte de ventas del período como PDF.
//
// Retorna (pdfBytes, filename, nil) si todo sale bien.
func (uc *UseCase) GetSalesReportPDF(ctx context.Context, from, to string) (pdfBytes []byte, filename string, err error) {
	report, err := uc.GetSalesReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateSalesReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("reporte_ventas_%s_%s.pdf", from, to)
	return pdfBytes, filename, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
