package purchase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/almacen-pro/almacen-api/internal/application/dto"
	"github.com/almacen-pro/almacen-api/internal/application/ports"
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
	"github.com/almacen-pro/almacen-api/pkg/logger"
)

// Acciones de la decisión legacy.
const (
	ActionAprobar  = "aprobar"
	ActionRechazar = "rechazar"
)

// Config direcciones fijas del flujo de compras, inyectadas al construir.
type Config struct {
	ApproverEmail string // recibe los borradores por aprobar
	AdminEmail    string // copia fija en órdenes emitidas
	BaseURL       string // base pública de los enlaces de aprobación
}

// PurchaseUseCase máquina de estados del flujo de compras:
// solicitud → borrador → aprobación/rechazo → orden emitida → historial de precios.
type PurchaseUseCase struct {
	requests  repository.RequestRepository
	drafts    repository.DraftRepository
	providers repository.ProviderRepository
	mailer    ports.Mailer
	pdf       OrderPDFGenerator
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	requests repository.RequestRepository,
	drafts repository.DraftRepository,
	providers repository.ProviderRepository,
	mailer ports.Mailer,
	pdf OrderPDFGenerator,
	cfg Config,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		requests:  requests,
		drafts:    drafts,
		providers: providers,
		mailer:    mailer,
		pdf:       pdf,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock fija el reloj del caso de uso. Sólo para tests.
func (uc *PurchaseUseCase) WithClock(now func() time.Time) *PurchaseUseCase {
	uc.now = now
	return uc
}

// CreateRequest alta de una solicitud de compra en estado Pendiente.
// Cualquier usuario autenticado puede crearla.
func (uc *PurchaseUseCase) CreateRequest(ctx context.Context, in dto.CreateRequestRequest, requester string) (*entity.PurchaseRequest, error) {
	if in.ProductName == "" || in.EstimatedQty == "" {
		return nil, domain.ErrInvalidInput
	}
	req := &entity.PurchaseRequest{
		ID:            uuid.NewString(),
		Timestamp:     uc.now().Format(time.RFC3339),
		Requester:     requester,
		ProductName:   in.ProductName,
		EstimatedQty:  in.EstimatedQty,
		Justification: in.Justification,
		Specs:         in.Specs,
		Status:        entity.RequestPendiente,
	}
	if err := uc.requests.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListRequests devuelve las solicitudes en orden de hoja.
func (uc *PurchaseUseCase) ListRequests(ctx context.Context) ([]entity.PurchaseRequest, error) {
	return uc.requests.List()
}

// ListProviders devuelve el catálogo de proveedores.
func (uc *PurchaseUseCase) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return uc.providers.List()
}

// SubmitForApproval serializa la orden completa como un solo blob JSON, la
// guarda como borrador Pendiente y avisa al aprobador con el enlace de un
// solo uso. Devuelve el ID del borrador.
func (uc *PurchaseUseCase) SubmitForApproval(ctx context.Context, order dto.OrderPayload, requester string) (string, error) {
	if len(order.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return "", err
	}
	draft := &entity.DraftOrder{
		ID:        uuid.NewString(),
		Payload:   string(payload),
		Status:    entity.DraftPendiente,
		Timestamp: uc.now().Format(time.RFC3339),
		Requester: requester,
	}
	if err := uc.drafts.Create(draft); err != nil {
		return "", err
	}
	link := fmt.Sprintf("%s/api/purchases/drafts/%s", uc.cfg.BaseURL, draft.ID)
	err = uc.mailer.Send(ctx, ports.Message{
		To:      []string{uc.cfg.ApproverEmail},
		Subject: "Orden de compra por aprobar",
		HTML: fmt.Sprintf(
			"<p>%s envió una orden de compra para tu aprobación.</p><p><a href=%q>Revisar orden</a></p>",
			requester, link,
		),
	})
	if err != nil {
		return "", err
	}
	return draft.ID, nil
}

// FetchDraft devuelve el borrador sólo mientras siga Pendiente; resuelto o
// inexistente se reporta NotFound. La garantía autoritativa de un solo uso
// la imponen approve/reject, no este fetch.
func (uc *PurchaseUseCase) FetchDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error) {
	draft, err := uc.drafts.GetPending(draftID)
	if err != nil {
		return nil, err
	}
	var order dto.OrderPayload
	if err := json.Unmarshal([]byte(draft.Payload), &order); err != nil {
		return nil, fmt.Errorf("payload del borrador: %w", err)
	}
	return &dto.DraftResponse{
		DraftID:   draft.ID,
		Order:     order,
		Requester: draft.Requester,
		Timestamp: draft.Timestamp,
	}, nil
}

// Reject marca el borrador Rechazada y avisa al solicitante original.
// No es idempotente a propósito: rechazar un borrador ya rechazado reescribe
// el mismo estado y reenvía el aviso (hueco de diseño documentado).
func (uc *PurchaseUseCase) Reject(ctx context.Context, draftID string) error {
	draft, err := uc.drafts.Get(draftID)
	if err != nil {
		return err
	}
	if err := uc.drafts.SetStatus(draftID, entity.DraftRechazada); err != nil {
		return err
	}
	return uc.mailer.Send(ctx, ports.Message{
		To:      []string{draft.Requester},
		Subject: "Orden de compra rechazada",
		HTML:    "<p>Tu orden de compra fue rechazada. Revisa con tu supervisor los ajustes necesarios.</p>",
	})
}

// ApproveAndIssueOrder aprueba el borrador y emite la orden:
// (a) correo con el PDF adjunto al aprobador, al admin fijo y, si el
// proveedor está en catálogo, también al proveedor; (b) cada solicitud
// seleccionada pasa Pendiente → En Proceso con proveedor/costo/entrega;
// (c) merge best-effort del historial de precios del proveedor. Las fallas
// de (c) se tragan con log: historial corrupto cuenta como vacío.
// El borrador se vuelve Aprobada sólo después de que el correo salió: un
// fallo de PDF o SMTP deja la fila Pendiente y el enlace sigue sirviendo
// para reintentar.
func (uc *PurchaseUseCase) ApproveAndIssueOrder(ctx context.Context, draftID, approver string) error {
	draft, err := uc.drafts.GetPending(draftID)
	if err != nil {
		return err
	}
	var order dto.OrderPayload
	if err := json.Unmarshal([]byte(draft.Payload), &order); err != nil {
		return fmt.Errorf("payload del borrador: %w", err)
	}

	pdfBytes, err := uc.pdf.GenerateOrderPDF(ctx, draftID, order, draft.Requester)
	if err != nil {
		return err
	}

	recipients := []string{approver, uc.cfg.AdminEmail}
	provider, provErr := uc.providers.GetByName(order.Provider)
	if provErr == nil && provider != nil && provider.Email != "" {
		recipients = append(recipients, provider.Email)
	}
	err = uc.mailer.Send(ctx, ports.Message{
		To:      recipients,
		Subject: fmt.Sprintf("Orden de compra emitida (%s)", order.Provider),
		HTML:    fmt.Sprintf("<p>Orden de compra aprobada por %s. Se adjunta el PDF.</p>", approver),
		Attachments: []ports.Attachment{
			{Filename: "orden-" + draftID + ".pdf", Content: pdfBytes},
		},
	})
	if err != nil {
		return err
	}

	if err := uc.drafts.SetStatus(draftID, entity.DraftAprobada); err != nil {
		return err
	}

	// Transición de las solicitudes seleccionadas.
	for _, item := range order.Items {
		if item.RequestID == "" {
			continue
		}
		if err := uc.requests.MarkInProcess(item.RequestID, order.Provider, item.UnitCost, order.DeliveryDate); err != nil {
			return err
		}
	}

	uc.mergePriceHistory(provider, order)
	return nil
}

// mergePriceHistory fusiona {cost, date} por producto en el historial del
// proveedor, sobrescribiendo cualquier entrada previa del mismo nombre.
// Best-effort de punta a punta: nada de aquí escala al resultado de la orden.
func (uc *PurchaseUseCase) mergePriceHistory(provider *entity.Provider, order dto.OrderPayload) {
	if provider == nil {
		return
	}
	history := map[string]entity.PriceEntry{}
	if provider.PriceHistory != "" {
		if err := json.Unmarshal([]byte(provider.PriceHistory), &history); err != nil {
			// JSON previo ilegible: se parte de historial vacío
			uc.log.Warn().Str("provider", provider.Name).Msg("historial de precios ilegible, se reinicia")
			history = map[string]entity.PriceEntry{}
		}
	}
	date := uc.now().Format("2006-01-02")
	for _, item := range order.Items {
		if item.ProductName == "" {
			continue
		}
		history[item.ProductName] = entity.PriceEntry{Cost: item.UnitCost, Date: date}
	}
	raw, err := json.Marshal(history)
	if err != nil {
		uc.log.Warn().Err(err).Str("provider", provider.Name).Msg("no se pudo serializar el historial de precios")
		return
	}
	if err := uc.providers.UpdatePriceHistory(provider.ID, string(raw)); err != nil {
		uc.log.Warn().Err(err).Str("provider", provider.Name).Msg("no se pudo actualizar el historial de precios")
	}
}

// DecideLegacyRequest camino simple de solicitud unitaria, distinto de los
// borradores: exige que la fila siga Pendiente (NotFound si no) y sobrescribe
// status/aprobador/fecha en una sola escritura acotada. Ese guardado es lo que
// vuelve la operación de un solo uso aun sin locking.
func (uc *PurchaseUseCase) DecideLegacyRequest(ctx context.Context, requestID, action, approver string) error {
	var status string
	switch action {
	case ActionAprobar:
		status = "Aprobada"
	case ActionRechazar:
		status = "Rechazada"
	default:
		return domain.ErrInvalidInput
	}
	return uc.requests.Decide(requestID, status, approver, uc.now().Format(time.RFC3339))
}
