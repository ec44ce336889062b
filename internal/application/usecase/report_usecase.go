package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/report"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
	"github.com/jhoicas/Tpv-api/pkg/logger"
)

// tamaño del bulk pull de ajustes para analítica (no es paginación real).
const adjustmentBulkLimit = 10000

// ReportUseCase orquesta el informe de ventas: resuelve el periodo, consulta
// pedidos y ajustes en paralelo, filtra por categoría en local y agrega.
//
// Una segunda petición de informe de la misma sesión SUPERSEDE a la anterior:
// la computación en vuelo se cancela vía contexto y solo el resultado de la
// última petición se adopta.
type ReportUseCase struct {
	orderRepo repository.OrderRepository
	adjRepo   repository.AdjustmentRepository
	valuate   report.Valuator
	topN      int
	log       *logger.Logger

	mu       sync.Mutex
	inflight map[string]*inflightReport // petición vigente por clave de sesión
}

type inflightReport struct {
	cancel context.CancelFunc
}

// NewReportUseCase construye el caso de uso. valuate estima la pérdida de los
// ajustes decrease; topN acota el ranking de productos.
func NewReportUseCase(
	orderRepo repository.OrderRepository,
	adjRepo repository.AdjustmentRepository,
	valuate report.Valuator,
	topN int,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orderRepo: orderRepo,
		adjRepo:   adjRepo,
		valuate:   valuate,
		topN:      topN,
		log:       log,
		inflight:  make(map[string]*inflightReport),
	}
}

// begin registra la petición como la vigente de la sesión, cancelando la
// anterior si sigue en vuelo. Devuelve el contexto de trabajo y un done que
// desregistra la entrada solo si nadie la ha sustituido.
func (uc *ReportUseCase) begin(ctx context.Context, sessionKey string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	entry := &inflightReport{cancel: cancel}

	uc.mu.Lock()
	if prev, ok := uc.inflight[sessionKey]; ok {
		prev.cancel()
	}
	uc.inflight[sessionKey] = entry
	uc.mu.Unlock()

	done := func() {
		uc.mu.Lock()
		if uc.inflight[sessionKey] == entry {
			delete(uc.inflight, sessionKey)
		}
		uc.mu.Unlock()
		cancel()
	}
	return ctx, done
}

// GetSalesReport genera el informe completo del periodo pedido. sessionKey
// identifica a quién supersede una nueva petición (el usuario autenticado).
//
// Ante un fallo de cualquiera de las consultas no se agrega nada: el informe
// es todo-o-nada, nunca parcial.
func (uc *ReportUseCase) GetSalesReport(
	ctx context.Context,
	sessionKey string,
	req dto.SalesReportRequest,
) (*dto.SalesReportDTO, error) {
	rng, err := resolveRange(req)
	if err != nil {
		return nil, err
	}

	ctx, done := uc.begin(ctx, sessionKey)
	defer done()

	// Consultas independientes en paralelo.
	type orderResult struct {
		set *repository.OrderSet
		err error
	}
	type adjResult struct {
		rows []entity.InventoryAdjustment
		err  error
	}

	orderChan := make(chan orderResult, 1)
	adjChan := make(chan adjResult, 1)

	go func() {
		set, err := uc.orderRepo.ListByDateRange(ctx, repository.OrderQuery{
			From:            rng.From,
			To:              rng.To,
			PaymentMethod:   req.PaymentMethod,
			IncludeArchived: req.IncludeArchived,
		})
		orderChan <- orderResult{set, err}
	}()
	go func() {
		if !req.IncludeAdjustments {
			adjChan <- adjResult{}
			return
		}
		rows, err := uc.adjRepo.ListByDateRange(ctx, repository.AdjustmentQuery{
			From:  rng.From,
			To:    rng.To,
			Limit: adjustmentBulkLimit,
		})
		adjChan <- adjResult{rows, err}
	}()

	ordRes := <-orderChan
	adjRes := <-adjChan

	// Si esta petición fue superseded, su resultado no se adopta.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ordRes.err != nil {
		return nil, fmt.Errorf("%w: pedidos: %v", domain.ErrUpstream, ordRes.err)
	}
	if adjRes.err != nil {
		return nil, fmt.Errorf("%w: ajustes: %v", domain.ErrUpstream, adjRes.err)
	}

	filtered := report.FilterByCategory(ordRes.set.Active, ordRes.set.Archived, req.Category)
	summary := report.Aggregate(filtered.Orders)

	out := buildReportDTO(rng, filtered, summary, uc.topN, req.Category)
	if req.IncludeAdjustments {
		for _, imp := range report.AnalyzeAdjustments(adjRes.rows, uc.valuate) {
			out.Adjustments = append(out.Adjustments, dto.AdjustmentImpactDTO{
				ProductID:     imp.ProductID,
				ProductName:   imp.ProductName,
				DecreaseCount: imp.DecreaseCount,
				IncreaseCount: imp.IncreaseCount,
				NetQuantity:   imp.NetQuantity,
				EstimatedLoss: imp.EstimatedLoss,
				LatestDate:    imp.LatestDate,
			})
		}
	}

	uc.log.Debug().
		Str("session", sessionKey).
		Int("pedidos", out.OrderCount).
		Time("desde", rng.From).
		Time("hasta", rng.To).
		Msg("informe de ventas generado")
	return out, nil
}

// resolveRange traduce los parámetros del request a un rango concreto.
func resolveRange(req dto.SalesReportRequest) (report.DateRange, error) {
	var customFrom, customTo *time.Time
	if req.FromNs != 0 {
		t := time.Unix(0, req.FromNs)
		customFrom = &t
	}
	if req.ToNs != 0 {
		t := time.Unix(0, req.ToNs)
		customTo = &t
	}
	return report.ResolvePeriod(time.Now(), report.Period(req.Period), customFrom, customTo)
}

func buildReportDTO(
	rng report.DateRange,
	filtered report.FilterResult,
	summary report.Summary,
	topN int,
	categoryFilter string,
) *dto.SalesReportDTO {
	out := &dto.SalesReportDTO{
		Period:           dto.PeriodDTO{From: rng.From, To: rng.To},
		HasData:          summary.OrderCount > 0,
		OrderCount:       summary.OrderCount,
		ActiveCount:      filtered.ActiveCount,
		ArchivedCount:    filtered.ArchivedCount,
		TotalRevenue:     summary.TotalRevenue,
		TotalProfit:      summary.TotalProfit,
		TotalCostBasis:   summary.TotalCostBasis,
		TotalDiscount:    summary.TotalDiscount,
		TotalTax:         summary.TotalTax,
		AverageMarginPct: summary.AverageMarginPct,
		CategoryProfit:   summary.CategoryProfit,
		PaymentProfit:    summary.PaymentProfit,
	}

	for _, ps := range report.TopProducts(summary.ProductStats, topN) {
		out.TopProducts = append(out.TopProducts, dto.ProductStatsDTO{
			Barcode:   ps.Barcode,
			Name:      ps.Name,
			Category:  ps.Category,
			Quantity:  ps.Quantity,
			Profit:    ps.Profit,
			Revenue:   ps.Revenue,
			MarginPct: ps.MarginPct,
		})
	}
	for _, p := range report.ChartSeries(summary, categoryFilter) {
		out.ChartSeries = append(out.ChartSeries, dto.ChartPointDTO{Label: p.Label, Profit: p.Profit})
	}
	for i, band := range report.MarginBands {
		out.MarginHistogram = append(out.MarginHistogram, dto.MarginBandDTO{
			Band:  band,
			Count: summary.MarginHistogram[i],
		})
	}
	return out
}

// FlatLossValuator construye el valuador plano usado cuando no hay lookup de
// costos configurado. perUnit llega como string desde configuración.
func FlatLossValuator(perUnit string) report.Valuator {
	value, err := decimal.NewFromString(perUnit)
	if err != nil {
		value = decimal.NewFromInt(1)
	}
	return report.FlatValuator(value)
}
