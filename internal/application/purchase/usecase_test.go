package purchase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/ports"
	"github.com/almacen-pro/almacen-api/internal/application/purchase"
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/infrastructure/sheets"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

var fixedNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

// fakeMailer captura los correos sin tocar SMTP. Con attachmentErr activo,
// los envíos con adjunto (el correo de emisión) fallan como un SMTP caído.
type fakeMailer struct {
	sent          []ports.Message
	attachmentErr error
}

func (m *fakeMailer) Send(_ context.Context, msg ports.Message) error {
	if m.attachmentErr != nil && len(msg.Attachments) > 0 {
		return m.attachmentErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakePDF devuelve bytes fijos; el contenido real es cosa del generador maroto.
type fakePDF struct{}

func (fakePDF) GenerateOrderPDF(_ context.Context, _ string, _ dto.OrderPayload, _ string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type purchaseFixture struct {
	uc        *purchase.PurchaseUseCase
	requests  *sheets.RequestRepo
	drafts    *sheets.DraftRepo
	providers *sheets.ProviderRepo
	mailer    *fakeMailer
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	book, err := sheets.Open("", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })
	require.NoError(t, sheets.Bootstrap(book))

	require.NoError(t, book.Append(sheets.SheetProviders, [][]interface{}{
		{"P1", "Lacteos del Norte", "Rosa", "555-0100", "ventas@lacteosnorte.test", ""},
	}))

	requests := sheets.NewRequestRepository(book)
	drafts := sheets.NewDraftRepository(book)
	providers := sheets.NewProviderRepository(book)
	mailer := &fakeMailer{}
	uc := purchase.NewPurchaseUseCase(requests, drafts, providers, mailer, fakePDF{}, purchase.Config{
		ApproverEmail: "gerente@almacen.test",
		AdminEmail:    "admin@almacen.test",
		BaseURL:       "https://almacen.test",
	}, logger.Nop()).WithClock(func() time.Time { return fixedNow })
	return &purchaseFixture{uc: uc, requests: requests, drafts: drafts, providers: providers, mailer: mailer}
}

func sampleOrder(requestID string) dto.OrderPayload {
	return dto.OrderPayload{
		Provider:     "Lacteos del Norte",
		DeliveryDate: "2026-03-20",
		Items: []dto.OrderItem{
			{RequestID: requestID, ProductName: "Leche entera", Quantity: "40", UnitCost: "8.50"},
		},
	}
}

func TestCreateRequest_CamposObligatorios(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.uc.CreateRequest(context.Background(), dto.CreateRequestRequest{ProductName: "Leche"}, "ana@x")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "falta la cantidad estimada")

	req, err := f.uc.CreateRequest(context.Background(), dto.CreateRequestRequest{
		ProductName: "Leche entera", EstimatedQty: "40",
	}, "ana@x")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPendiente, req.Status)
	assert.Equal(t, "ana@x", req.Requester)
	assert.NotEmpty(t, req.ID)
}

func TestSubmitForApproval_GuardaBorradorYNotifica(t *testing.T) {
	f := newPurchaseFixture(t)

	draftID, err := f.uc.SubmitForApproval(context.Background(), sampleOrder(""), "beto@x")
	require.NoError(t, err)
	require.NotEmpty(t, draftID)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"gerente@almacen.test"}, f.mailer.sent[0].To)
	assert.Contains(t, f.mailer.sent[0].HTML, "/api/purchases/drafts/"+draftID,
		"el correo debe llevar el enlace de revisión del borrador")

	// Roundtrip: el fetch devuelve el mismo payload tipado.
	draft, err := f.uc.FetchDraft(context.Background(), draftID)
	require.NoError(t, err)
	assert.Equal(t, "beto@x", draft.Requester)
	assert.Equal(t, sampleOrder(""), draft.Order)
}

func TestSubmitForApproval_SinRenglones_Invalido(t *testing.T) {
	f := newPurchaseFixture(t)
	_, err := f.uc.SubmitForApproval(context.Background(), dto.OrderPayload{Provider: "X"}, "beto@x")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFetchDraft_Inexistente_NotFound(t *testing.T) {
	f := newPurchaseFixture(t)
	_, err := f.uc.FetchDraft(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Tras el rechazo el borrador deja de ser Pendiente: el enlace ya no sirve.
func TestReject_ConsumeElEnlace(t *testing.T) {
	f := newPurchaseFixture(t)
	draftID, err := f.uc.SubmitForApproval(context.Background(), sampleOrder(""), "beto@x")
	require.NoError(t, err)

	require.NoError(t, f.uc.Reject(context.Background(), draftID))

	_, err = f.uc.FetchDraft(context.Background(), draftID)
	assert.True(t, errors.Is(err, domain.ErrNotFound),
		"un borrador resuelto no debe poderse consultar por el enlace")

	// El aviso va al solicitante original, no al aprobador.
	last := f.mailer.sent[len(f.mailer.sent)-1]
	assert.Equal(t, []string{"beto@x"}, last.To)
}

func TestApproveAndIssueOrder_FlujoCompleto(t *testing.T) {
	f := newPurchaseFixture(t)
	req, err := f.uc.CreateRequest(context.Background(), dto.CreateRequestRequest{
		ProductName: "Leche entera", EstimatedQty: "40",
	}, "ana@x")
	require.NoError(t, err)

	draftID, err := f.uc.SubmitForApproval(context.Background(), sampleOrder(req.ID), "beto@x")
	require.NoError(t, err)

	require.NoError(t, f.uc.ApproveAndIssueOrder(context.Background(), draftID, "gerente@almacen.test"))

	// Correo de emisión: aprobador + admin + proveedor con el PDF adjunto.
	last := f.mailer.sent[len(f.mailer.sent)-1]
	assert.ElementsMatch(t, []string{
		"gerente@almacen.test", "admin@almacen.test", "ventas@lacteosnorte.test",
	}, last.To)
	require.Len(t, last.Attachments, 1)
	assert.Equal(t, "orden-"+draftID+".pdf", last.Attachments[0].Filename)
	assert.NotEmpty(t, last.Attachments[0].Content)

	// La solicitud seleccionada pasó Pendiente → En Proceso con los datos de la orden.
	all, err := f.requests.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.RequestEnProceso, all[0].Status)
	assert.Equal(t, "Lacteos del Norte", all[0].Provider)
	assert.Equal(t, "8.50", all[0].Cost)
	assert.Equal(t, "2026-03-20", all[0].DeliveryDate)

	// Historial de precios fusionado: producto → {cost, date}.
	provider, err := f.providers.GetByName("Lacteos del Norte")
	require.NoError(t, err)
	var history map[string]entity.PriceEntry
	require.NoError(t, json.Unmarshal([]byte(provider.PriceHistory), &history))
	assert.Equal(t, entity.PriceEntry{Cost: "8.50", Date: "2026-03-10"}, history["Leche entera"])

	// El enlace queda consumido: segunda aprobación falla.
	err = f.uc.ApproveAndIssueOrder(context.Background(), draftID, "gerente@almacen.test")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Un fallo de SMTP al emitir la orden no debe consumir el borrador: la fila
// sigue Pendiente, las solicitudes no se tocan y el mismo enlace permite
// reintentar la aprobación cuando el correo vuelve.
func TestApprove_FalloDeCorreo_NoConsumeElBorrador(t *testing.T) {
	f := newPurchaseFixture(t)
	req, err := f.uc.CreateRequest(context.Background(), dto.CreateRequestRequest{
		ProductName: "Leche entera", EstimatedQty: "40",
	}, "ana@x")
	require.NoError(t, err)

	draftID, err := f.uc.SubmitForApproval(context.Background(), sampleOrder(req.ID), "beto@x")
	require.NoError(t, err)

	f.mailer.attachmentErr = errors.New("smtp: conexión rechazada")
	err = f.uc.ApproveAndIssueOrder(context.Background(), draftID, "gerente@almacen.test")
	require.Error(t, err)

	// El borrador sigue vivo y la solicitud intacta.
	draft, err := f.uc.FetchDraft(context.Background(), draftID)
	require.NoError(t, err, "el borrador debe seguir Pendiente tras el fallo de correo")
	assert.Equal(t, draftID, draft.DraftID)

	all, err := f.requests.List()
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPendiente, all[0].Status,
		"la solicitud no debe transicionar si la orden no salió")

	// Con el correo de vuelta, el mismo enlace completa la emisión.
	f.mailer.attachmentErr = nil
	require.NoError(t, f.uc.ApproveAndIssueOrder(context.Background(), draftID, "gerente@almacen.test"))

	all, err = f.requests.List()
	require.NoError(t, err)
	assert.Equal(t, entity.RequestEnProceso, all[0].Status)

	_, err = f.uc.FetchDraft(context.Background(), draftID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "ahora sí quedó consumido")
}

// Historial previo ilegible se reinicia en vacío, sin reventar la orden.
func TestApprove_HistorialCorrupto_SeReinicia(t *testing.T) {
	f := newPurchaseFixture(t)
	require.NoError(t, f.providers.UpdatePriceHistory("P1", "{esto no es json"))

	draftID, err := f.uc.SubmitForApproval(context.Background(), sampleOrder(""), "beto@x")
	require.NoError(t, err)
	require.NoError(t, f.uc.ApproveAndIssueOrder(context.Background(), draftID, "gerente@almacen.test"))

	provider, err := f.providers.GetByName("Lacteos del Norte")
	require.NoError(t, err)
	var history map[string]entity.PriceEntry
	require.NoError(t, json.Unmarshal([]byte(provider.PriceHistory), &history))
	assert.Len(t, history, 1, "el historial corrupto cuenta como vacío y se reescribe")
}

func TestDecideLegacyRequest_SoloUnaVez(t *testing.T) {
	f := newPurchaseFixture(t)
	req, err := f.uc.CreateRequest(context.Background(), dto.CreateRequestRequest{
		ProductName: "Escobas", EstimatedQty: "10",
	}, "ana@x")
	require.NoError(t, err)

	require.NoError(t, f.uc.DecideLegacyRequest(context.Background(), req.ID, purchase.ActionAprobar, "gerente@almacen.test"))

	all, err := f.requests.List()
	require.NoError(t, err)
	assert.Equal(t, "Aprobada", all[0].Status)
	assert.Equal(t, "gerente@almacen.test", all[0].Approver)

	// Segunda decisión sobre la misma fila: ya no está Pendiente.
	err = f.uc.DecideLegacyRequest(context.Background(), req.ID, purchase.ActionRechazar, "gerente@almacen.test")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	all, err = f.requests.List()
	require.NoError(t, err)
	assert.Equal(t, "Aprobada", all[0].Status, "la decisión fallida no debe tocar la fila")
}

func TestDecideLegacyRequest_AccionDesconocida(t *testing.T) {
	f := newPurchaseFixture(t)
	err := f.uc.DecideLegacyRequest(context.Background(), "r1", "posponer", "gerente@almacen.test")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
