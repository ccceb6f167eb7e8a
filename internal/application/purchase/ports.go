package purchase

import (
	"context"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
)

// OrderPDFGenerator genera la representación PDF de una orden de compra
// para adjuntarla al correo de emisión.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, draftID string, order dto.OrderPayload, requester string) ([]byte, error)
}
