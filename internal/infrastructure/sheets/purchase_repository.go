package sheets

import (
	"github.com/almacen-pro/almacen-api/internal/domain"
	"github.com/almacen-pro/almacen-api/internal/domain/entity"
	"github.com/almacen-pro/almacen-api/internal/domain/repository"
)

var (
	_ repository.RequestRepository  = (*RequestRepo)(nil)
	_ repository.DraftRepository    = (*DraftRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// RequestRepo solicitudes de compra sobre la hoja Solicitudes.
type RequestRepo struct {
	book *Workbook
}

// NewRequestRepository construye el adaptador de solicitudes.
func NewRequestRepository(book *Workbook) *RequestRepo {
	return &RequestRepo{book: book}
}

func requestRow(req *entity.PurchaseRequest) []interface{} {
	return []interface{}{
		req.ID, req.Timestamp, req.Requester, req.ProductName, req.EstimatedQty,
		req.Justification, req.Specs, req.Status, req.Provider, req.Cost,
		req.DeliveryDate, req.Approver, req.DecidedAt,
	}
}

// Create agrega la solicitud al final de la hoja.
func (r *RequestRepo) Create(req *entity.PurchaseRequest) error {
	return r.book.Append(SheetRequests, [][]interface{}{requestRow(req)})
}

// List devuelve las solicitudes en orden de hoja.
func (r *RequestRepo) List() ([]entity.PurchaseRequest, error) {
	v, err := r.book.HeaderView(SheetRequests)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PurchaseRequest, 0, len(v.Data))
	for _, row := range v.Data {
		id := v.Get(row, "ID", "")
		if id == "" {
			continue
		}
		out = append(out, entity.PurchaseRequest{
			ID:            id,
			Timestamp:     v.Get(row, "Timestamp", ""),
			Requester:     v.Get(row, "Solicitante", ""),
			ProductName:   v.Get(row, "Producto", ""),
			EstimatedQty:  v.Get(row, "CantidadEstimada", ""),
			Justification: v.Get(row, "Justificacion", ""),
			Specs:         v.Get(row, "Especificaciones", ""),
			Status:        v.Get(row, "Estado", ""),
			Provider:      v.Get(row, "Proveedor", ""),
			Cost:          v.Get(row, "Costo", ""),
			DeliveryDate:  v.Get(row, "FechaEntrega", ""),
			Approver:      v.Get(row, "Aprobador", ""),
			DecidedAt:     v.Get(row, "FechaDecision", ""),
		})
	}
	return out, nil
}

// findPending localiza la única fila con ese ID cuyo estado siga Pendiente.
// El guardado "debe seguir Pendiente" es lo que vuelve la operación de un solo
// uso aun sin locking (mitigación check-then-act, ver notas de diseño).
func (r *RequestRepo) findPending(id string) (int, *entity.PurchaseRequest, error) {
	reqs, err := r.List()
	if err != nil {
		return 0, nil, err
	}
	for i := range reqs {
		if reqs[i].ID == id && reqs[i].Status == entity.RequestPendiente {
			return i + 2, &reqs[i], nil
		}
	}
	return 0, nil, domain.ErrNotFound
}

// Decide sobrescribe status/aprobador/fecha en una sola escritura acotada.
func (r *RequestRepo) Decide(id, status, approver, decidedAt string) error {
	sheetRow, req, err := r.findPending(id)
	if err != nil {
		return err
	}
	req.Status = status
	req.Approver = approver
	req.DecidedAt = decidedAt
	return r.book.Update(SheetRequests, sheetRow, [][]interface{}{requestRow(req)})
}

// MarkInProcess transiciona Pendiente → En Proceso con proveedor, costo y entrega.
func (r *RequestRepo) MarkInProcess(id, provider, cost, deliveryDate string) error {
	sheetRow, req, err := r.findPending(id)
	if err != nil {
		return err
	}
	req.Status = entity.RequestEnProceso
	req.Provider = provider
	req.Cost = cost
	req.DeliveryDate = deliveryDate
	return r.book.Update(SheetRequests, sheetRow, [][]interface{}{requestRow(req)})
}

// DraftRepo borradores de orden sobre la hoja Borradores.
type DraftRepo struct {
	book *Workbook
}

// NewDraftRepository construye el adaptador de borradores.
func NewDraftRepository(book *Workbook) *DraftRepo {
	return &DraftRepo{book: book}
}

// Create agrega el borrador al final de la hoja.
func (r *DraftRepo) Create(draft *entity.DraftOrder) error {
	return r.book.Append(SheetDrafts, [][]interface{}{{
		draft.ID, draft.Payload, draft.Status, draft.Timestamp, draft.Requester,
	}})
}

func (r *DraftRepo) find(id string) (int, *entity.DraftOrder, error) {
	v, err := r.book.HeaderView(SheetDrafts)
	if err != nil {
		return 0, nil, err
	}
	for i, row := range v.Data {
		if v.Get(row, "ID", "") != id {
			continue
		}
		return i + 2, &entity.DraftOrder{
			ID:        id,
			Payload:   v.Get(row, "Payload", ""),
			Status:    v.Get(row, "Estado", ""),
			Timestamp: v.Get(row, "Timestamp", ""),
			Requester: v.Get(row, "Solicitante", ""),
		}, nil
	}
	return 0, nil, domain.ErrNotFound
}

// Get devuelve el borrador en cualquier estado.
func (r *DraftRepo) Get(id string) (*entity.DraftOrder, error) {
	_, draft, err := r.find(id)
	return draft, err
}

// GetPending devuelve el borrador sólo mientras siga Pendiente; un estado
// terminal o un ID inexistente son indistinguibles para el caller (NotFound).
func (r *DraftRepo) GetPending(id string) (*entity.DraftOrder, error) {
	_, draft, err := r.find(id)
	if err != nil {
		return nil, err
	}
	if draft.Status != entity.DraftPendiente {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

// SetStatus sobrescribe el estado del borrador en sitio.
func (r *DraftRepo) SetStatus(id, status string) error {
	sheetRow, draft, err := r.find(id)
	if err != nil {
		return err
	}
	draft.Status = status
	return r.book.Update(SheetDrafts, sheetRow, [][]interface{}{{
		draft.ID, draft.Payload, draft.Status, draft.Timestamp, draft.Requester,
	}})
}

// ProviderRepo catálogo de proveedores sobre la hoja Proveedores.
type ProviderRepo struct {
	book *Workbook
}

// NewProviderRepository construye el adaptador de proveedores.
func NewProviderRepository(book *Workbook) *ProviderRepo {
	return &ProviderRepo{book: book}
}

// List devuelve los proveedores en orden de hoja.
func (r *ProviderRepo) List() ([]entity.Provider, error) {
	v, err := r.book.HeaderView(SheetProviders)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Provider, 0, len(v.Data))
	for _, row := range v.Data {
		id := v.Get(row, "ID", "")
		if id == "" {
			continue
		}
		out = append(out, entity.Provider{
			ID:           id,
			Name:         v.Get(row, "Nombre", ""),
			Contact:      v.Get(row, "Contacto", ""),
			Phone:        v.Get(row, "Telefono", ""),
			Email:        v.Get(row, "Email", ""),
			PriceHistory: v.Get(row, "HistorialPrecios", ""),
		})
	}
	return out, nil
}

// GetByName busca el proveedor por nombre exacto. Devuelve nil si no existe.
func (r *ProviderRepo) GetByName(name string) (*entity.Provider, error) {
	providers, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].Name == name {
			return &providers[i], nil
		}
	}
	return nil, nil
}

// UpdatePriceHistory sobrescribe el JSON de historial de precios del proveedor.
func (r *ProviderRepo) UpdatePriceHistory(id, historyJSON string) error {
	v, err := r.book.HeaderView(SheetProviders)
	if err != nil {
		return err
	}
	for i, row := range v.Data {
		if v.Get(row, "ID", "") != id {
			continue
		}
		return r.book.Update(SheetProviders, i+2, [][]interface{}{{
			id,
			v.Get(row, "Nombre", ""),
			v.Get(row, "Contacto", ""),
			v.Get(row, "Telefono", ""),
			v.Get(row, "Email", ""),
			historyJSON,
		}})
	}
	return domain.ErrNotFound
}
