package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
	"github.com/almacen-pro/almacen-api/internal/domain/stock"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// StockUseCase motor del kardex: registra entradas/salidas y calcula el stock
// actual como fold sobre el libro de movimientos.
type StockUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	lots      repository.LotRepository
	bulk      repository.BulkStockRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	lots repository.LotRepository,
	bulk repository.BulkStockRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		items:     items,
		movements: movements,
		lots:      lots,
		bulk:      bulk,
		log:       log,
		now:       time.Now,
	}
}

// WithClock fija el reloj del caso de uso. Sólo para tests.
func (uc *StockUseCase) WithClock(now func() time.Time) *StockUseCase {
	uc.now = now
	return uc
}

// validateEntry regla única de validación de entradas: cantidad numérica > 0
// y costo ≥ 0. La importación por lotes reutiliza exactamente esta regla para
// garantizar semántica idéntica entre el camino unitario y el batch.
func validateEntry(in dto.EntryRequest) (int, error) {
	qty, err := strconv.Atoi(in.Quantity)
	if err != nil || in.ItemID == "" || qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if in.Cost != "" {
		cost, err := decimal.NewFromString(in.Cost)
		if err != nil || cost.IsNegative() {
			return 0, domain.ErrInvalidInput
		}
	}
	return qty, nil
}

func (uc *StockUseCase) buildEntry(in dto.EntryRequest, qty int, actor string) *entity.Movement {
	return &entity.Movement{
		ID:             uuid.NewString(),
		Timestamp:      uc.now().Format(time.RFC3339),
		ItemID:         in.ItemID,
		Type:           entity.MovementEntrada,
		Quantity:       strconv.Itoa(qty),
		Cost:           in.Cost,
		Provider:       in.Provider,
		Invoice:        in.Invoice,
		ExpirationDate: in.ExpirationDate,
		SerialNumber:   in.SerialNumber,
		ActorEmail:     actor,
	}
}

// RecordEntry valida y agrega una Entrada al kardex. Con entrada inválida
// falla ErrInvalidInput y no se apendiza nada.
func (uc *StockUseCase) RecordEntry(ctx context.Context, in dto.EntryRequest, actor string) error {
	qty, err := validateEntry(in)
	if err != nil {
		return err
	}
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.movements.Append(uc.buildEntry(in, qty, actor))
}

// RecordEntryWithTracking registra la entrada en su representación física y
// además en el kardex. Con caducidad nace un lote nuevo (perecedero); sin
// caducidad se hace read-modify-write del contador a granel. La doble
// escritura NO es transaccional: un fallo entre ambas deja las dos
// representaciones divergentes (riesgo aceptado, el almacén de respaldo no
// ofrece transacciones multi-fila).
func (uc *StockUseCase) RecordEntryWithTracking(ctx context.Context, in dto.EntryRequest, actor string) error {
	qty, err := validateEntry(in)
	if err != nil {
		return err
	}
	item, err := uc.items.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if in.ExpirationDate != "" {
		lot := &entity.Lot{
			ID:              uuid.NewString(),
			ItemID:          in.ItemID,
			InitialQuantity: qty,
			RemainingQty:    qty,
			ExpirationDate:  in.ExpirationDate,
			Timestamp:       uc.now().Format(time.RFC3339),
		}
		if err := uc.lots.Create(lot); err != nil {
			return err
		}
	} else {
		current, err := uc.bulk.Get(in.ItemID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &entity.BulkStock{ItemID: in.ItemID}
		}
		current.Quantity += qty
		if err := uc.bulk.Upsert(current); err != nil {
			return err
		}
	}

	// El kardex recibe la misma Entrada para que valuación e historial
	// sigan consistentes con el stock físico.
	return uc.movements.Append(uc.buildEntry(in, qty, actor))
}

// RecordExit registra la salida de un activo fijo vía responsiva:
// siempre cantidad 1 y costo 0, sin impacto en valuación.
func (uc *StockUseCase) RecordExit(ctx context.Context, itemID, actor string) error {
	if itemID == "" {
		return domain.ErrInvalidInput
	}
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.movements.Append(&entity.Movement{
		ID:           uuid.NewString(),
		Timestamp:    uc.now().Format(time.RFC3339),
		ItemID:       itemID,
		Type:         entity.MovementSalida,
		Quantity:     "1",
		Cost:         "0",
		SerialNumber: item.SerialNumber,
		ActorEmail:   actor,
	})
}

// BulkImport procesa las entradas estrictamente en secuencia: la falla de un
// renglón no toca al resto y se acumula en la lista de errores. El resultado
// reporta el tally aunque haya fallas parciales.
func (uc *StockUseCase) BulkImport(ctx context.Context, entries []dto.EntryRequest, actor string) dto.BulkImportResult {
	result := dto.BulkImportResult{Errors: []dto.BulkImportError{}}
	for _, in := range entries {
		if err := uc.RecordEntry(ctx, in, actor); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, dto.BulkImportError{
				ItemID: in.ItemID,
				Reason: err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}
	return result
}

// CurrentStock recalcula el stock del artículo desde el kardex completo.
// Nunca se cachea: releer siempre la fuente es la base de la consistencia.
func (uc *StockUseCase) CurrentStock(ctx context.Context, itemID string) (int, error) {
	movements, err := uc.movements.ListByItem(itemID)
	if err != nil {
		return 0, err
	}
	total, skipped := stock.CurrentStock(itemID, movements)
	for _, m := range skipped {
		uc.log.Warn().Str("movement_id", m.ID).Str("item_id", itemID).
			Str("quantity", m.Quantity).Msg("cantidad no parseable, movimiento omitido del fold")
	}
	return total, nil
}

// History devuelve los movimientos del artículo en orden del libro.
func (uc *StockUseCase) History(ctx context.Context, itemID string) ([]entity.Movement, error) {
	return uc.movements.ListByItem(itemID)
}
