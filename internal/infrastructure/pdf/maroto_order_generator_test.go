package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/infrastructure/pdf"
)

var fixedNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func TestGenerateOrderPDF_DocumentoConRelojFijo(t *testing.T) {
	g := pdf.NewMarotoOrderGenerator().WithClock(func() time.Time { return fixedNow })

	order := dto.OrderPayload{
		Provider:     "Lacteos del Norte",
		DeliveryDate: "2026-03-20",
		Notes:        "Entregar en andén 2",
		Items: []dto.OrderItem{
			{RequestID: "r1", ProductName: "Leche entera", Quantity: "40", UnitCost: "8.50"},
			{ProductName: "Harina", Quantity: "10", UnitCost: "20"},
		},
	}

	bytes, err := g.GenerateOrderPDF(context.Background(), "d-123", order, "beto@x")
	require.NoError(t, err)
	assert.NotEmpty(t, bytes)
	assert.Equal(t, "%PDF", string(bytes[:4]), "el documento debe ser un PDF válido")
}

func TestGenerateOrderPDF_SinRenglonesNiNotas(t *testing.T) {
	g := pdf.NewMarotoOrderGenerator().WithClock(func() time.Time { return fixedNow })

	bytes, err := g.GenerateOrderPDF(context.Background(), "d-456", dto.OrderPayload{
		Provider: "Proveedor X",
	}, "ana@x")
	require.NoError(t, err)
	assert.NotEmpty(t, bytes, "una orden vacía igual produce documento")
}
