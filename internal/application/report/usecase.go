package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
	"github.com/almacen-pro/almacen-api/internal/domain/stock"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// ReportUseCase combina kardex y catálogo para producir valuación,
// alertas de stock bajo y la vista de planeación de compras.
type ReportUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	lots      repository.LotRepository
	bulk      repository.BulkStockRepository
	log       *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	lots repository.LotRepository,
	bulk repository.BulkStockRepository,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{items: items, movements: movements, lots: lots, bulk: bulk, log: log}
}

func (uc *ReportUseCase) summarize() (map[string]stock.Summary, error) {
	movements, err := uc.movements.ListAll()
	if err != nil {
		return nil, err
	}
	summaries := stock.Summarize(movements)
	for itemID, s := range summaries {
		if s.Skipped > 0 {
			uc.log.Warn().Str("item_id", itemID).Int("skipped", s.Skipped).
				Msg("movimientos con cantidad no parseable omitidos del fold")
		}
	}
	return summaries, nil
}

// Valuation valuación total: Σ stock(artículo) × último costo de Entrada.
// El costo base es last-write-wins por orden del kardex en una sola pasada.
func (uc *ReportUseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	summaries, err := uc.summarize()
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	lines := make([]dto.ValuationLine, 0, len(items))
	for _, it := range items {
		s := summaries[it.ID]
		value := decimal.NewFromInt(int64(s.Stock)).Mul(s.LastCost)
		total = total.Add(value)
		lines = append(lines, dto.ValuationLine{
			ItemID:   it.ID,
			SKU:      it.SKU,
			Name:     it.Name,
			Stock:    s.Stock,
			LastCost: s.LastCost.String(),
			Value:    value.String(),
		})
	}
	return &dto.ValuationResponse{Total: total.String(), Lines: lines}, nil
}

// LowStock artículos con stock actual ≤ mínimo (frontera inclusiva).
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockAlert, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	summaries, err := uc.summarize()
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlert, 0)
	for _, it := range items {
		current := summaries[it.ID].Stock
		if stock.IsLow(current, it.MinStock) {
			alerts = append(alerts, dto.LowStockAlert{
				ItemID:   it.ID,
				SKU:      it.SKU,
				Name:     it.Name,
				Stock:    current,
				MinStock: it.MinStock,
			})
		}
	}
	return alerts, nil
}

// Planning vista de planeación: por artículo, el stock derivado del kardex,
// la suma de remanentes de lotes perecederos y el contador a granel —
// cada representación sumada de forma independiente.
func (uc *ReportUseCase) Planning(ctx context.Context) ([]dto.PlanningLine, error) {
	items, err := uc.items.List()
	if err != nil {
		return nil, err
	}
	summaries, err := uc.summarize()
	if err != nil {
		return nil, err
	}
	lots, err := uc.lots.ListAll()
	if err != nil {
		return nil, err
	}
	lotByItem := make(map[string]int)
	for _, l := range lots {
		lotByItem[l.ItemID] += l.RemainingQty
	}
	bulk, err := uc.bulk.ListAll()
	if err != nil {
		return nil, err
	}
	bulkByItem := make(map[string]int, len(bulk))
	for _, b := range bulk {
		bulkByItem[b.ItemID] = b.Quantity
	}
	lines := make([]dto.PlanningLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.PlanningLine{
			ItemID:      it.ID,
			SKU:         it.SKU,
			Name:        it.Name,
			LedgerStock: summaries[it.ID].Stock,
			LotStock:    lotByItem[it.ID],
			BulkStock:   bulkByItem[it.ID],
		})
	}
	return lines, nil
}
