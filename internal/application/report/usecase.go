// Package report contiene los casos de uso de reportes de movimientos por tienda:
// resumen del día y del mes, y ranking de salidas con análisis Pareto.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

const (
	summaryTopProducts = 5
	defaultTopN        = 20
	maxTopN            = 200
	paretoThreshold    = 80
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// LowStockLister fuente de productos en alerta (implementado por inventory.StockUseCase).
type LowStockLister interface {
	GetLowStockProducts(ctx context.Context, storeID string) ([]dto.LowStockItemResponse, error)
}

// UseCase reportes read-only sobre el libro de movimientos.
type UseCase struct {
	reports  repository.ReportRepository
	stores   repository.StoreRepository
	lowStock LowStockLister
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository, stores repository.StoreRepository, lowStock LowStockLister) *UseCase {
	return &UseCase{reports: reports, stores: stores, lowStock: lowStock, now: time.Now}
}

// GetSummary resumen de la tienda: totales de hoy y del mes, top 5 de salidas del mes y alertas de stock.
// Las cuatro consultas son independientes y se lanzan en paralelo.
func (uc *UseCase) GetSummary(ctx context.Context, storeID string) (*dto.StoreSummaryDTO, error) {
	if err := uc.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		rows []repository.MovementTotals
		err  error
	}
	type topResult struct {
		rows []repository.ProductOutflow
		err  error
	}
	type lowResult struct {
		items []dto.LowStockItemResponse
		err   error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		rows, err := uc.reports.MovementTotals(ctx, storeID, todayStart, todayEnd)
		todayCh <- totalsResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.MovementTotals(ctx, storeID, monthStart, todayEnd)
		monthCh <- totalsResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.TopOutflows(ctx, storeID, monthStart, todayEnd, summaryTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		items, err := uc.lowStock.GetLowStockProducts(ctx, storeID)
		lowCh <- lowResult{items, err}
	}()

	today, month, top, low := <-todayCh, <-monthCh, <-topCh, <-lowCh
	if today.err != nil {
		return nil, fmt.Errorf("report: totales de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("report: totales del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("report: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("report: stock bajo: %w", low.err)
	}

	out := &dto.StoreSummaryDTO{
		StoreID:     storeID,
		Today:       buildTotals(today.rows),
		Month:       buildTotals(month.rows),
		TopProducts: make([]dto.TopProductDTO, 0, len(top.rows)),
		DateLabel:   monthLabel(now),
	}
	for _, p := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			OutQuantity:  p.OutQuantity,
			OutValue:     p.OutValue.Round(2),
			LossQuantity: p.LossQuantity,
		})
	}
	for _, item := range low.items {
		if item.Status == string(ledger.StatusOutOfStock) {
			out.OutOfStock++
		} else {
			out.LowStockCount++
		}
	}
	return out, nil
}

// GetOutflowReport ranking de salidas del período con participación acumulada (Pareto 80/20).
func (uc *UseCase) GetOutflowReport(ctx context.Context, storeID string, req dto.ReportPeriodRequest) (*dto.OutflowReportDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.ensureStore(ctx, storeID); err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	totals, err := uc.reports.MovementTotals(ctx, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("report: totales: %w", err)
	}
	rows, err := uc.reports.TopOutflows(ctx, storeID, start, end, topN)
	if err != nil {
		return nil, fmt.Errorf("report: ranking: %w", err)
	}

	ranking := buildRanking(rows)
	pareto := make([]dto.OutflowRankingDTO, 0)
	for _, r := range ranking {
		if r.IsTopPareto {
			pareto = append(pareto, r)
		}
	}
	return &dto.OutflowReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		Totals:      buildTotals(totals),
		Ranking:     ranking,
		ParetoItems: pareto,
	}, nil
}

func (uc *UseCase) ensureStore(ctx context.Context, storeID string) error {
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrStoreNotFound
	}
	return nil
}

func buildTotals(rows []repository.MovementTotals) dto.MovementTotalsDTO {
	out := dto.MovementTotalsDTO{EntryValue: decimal.Zero, OutflowValue: decimal.Zero, LossValue: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case entity.MovementEntrada:
			out.Entries, out.EntryQty, out.EntryValue = r.Count, r.Quantity, r.Value.Round(2)
		case entity.MovementSaida:
			out.Outflows, out.OutflowQty, out.OutflowValue = r.Count, r.Quantity, r.Value.Round(2)
		case entity.MovementPerda:
			out.Losses, out.LossQty, out.LossValue = r.Count, r.Quantity, r.Value.Round(2)
		}
	}
	out.NetQuantity = out.EntryQty - out.OutflowQty - out.LossQty
	return out
}

// buildRanking asigna posición, participación y acumulado. El producto que cruza el 80% sigue
// contando como Pareto solo si es el primero.
func buildRanking(rows []repository.ProductOutflow) []dto.OutflowRankingDTO {
	ranking := make([]dto.OutflowRankingDTO, 0, len(rows))
	if len(rows) == 0 {
		return ranking
	}
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.OutValue)
	}

	var cumulative decimal.Decimal
	for i, r := range rows {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.OutValue.Div(total).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(pct)
		ranking = append(ranking, dto.OutflowRankingDTO{
			Rank:          i + 1,
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			ProductName:   r.Name,
			OutQuantity:   r.OutQuantity,
			OutValue:      r.OutValue.Round(2),
			LossQuantity:  r.LossQuantity,
			ValuePct:      pct,
			CumulativePct: cumulative.Round(2),
			IsTopPareto:   i == 0 || cumulative.LessThanOrEqual(pareto80),
		})
	}
	return ranking
}

// parsePeriod convierte YYYY-MM-DD en el rango [start 00:00, end 23:59:59.999]; vacíos toman el mes en curso.
func parsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido", domain.ErrInvalidInput)
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido", domain.ErrInvalidInput)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
