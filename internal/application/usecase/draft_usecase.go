package usecase

import (
	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
)

// DraftUseCase borradores de formulario por sesión. Puentean la navegación
// hacia la pantalla de selección de productos: guardar antes de salir,
// restaurar (una sola vez) al volver.
type DraftUseCase struct {
	local *localstore.Store
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(local *localstore.Store) *DraftUseCase {
	return &DraftUseCase{local: local}
}

// Save guarda el borrador de la sesión, reemplazando el anterior.
func (uc *DraftUseCase) Save(sessionKey string, in dto.SaveDraftRequest) error {
	if sessionKey == "" {
		return domain.ErrInvalidInput
	}
	draft := localstore.Draft{
		ClientName:  in.ClientName,
		ServiceName: in.ServiceName,
		ServiceDate: in.ServiceDate,
		Products:    toDraftLines(in.Products),
	}
	return uc.local.SaveDraft(sessionKey, draft)
}

// Take restaura el borrador y lo borra en la misma transacción: una segunda
// llamada devuelve nil. Sin borrador pendiente devuelve nil sin error.
func (uc *DraftUseCase) Take(sessionKey string) (*dto.DraftResponse, error) {
	if sessionKey == "" {
		return nil, domain.ErrInvalidInput
	}
	draft, err := uc.local.TakeDraft(sessionKey)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	return &dto.DraftResponse{
		ClientName:  draft.ClientName,
		ServiceName: draft.ServiceName,
		ServiceDate: draft.ServiceDate,
		Products:    fromDraftLines(draft.Products),
	}, nil
}

// AppendProducts agrega productos recién elegidos al borrador, con cantidad
// vacía y preservando las cantidades ya tecleadas de los existentes.
// Un producto repetido no se duplica.
func (uc *DraftUseCase) AppendProducts(sessionKey string, in dto.AppendDraftProductsRequest) error {
	if sessionKey == "" {
		return domain.ErrInvalidInput
	}
	return uc.local.UpdateDraft(sessionKey, func(d *localstore.Draft) {
		existing := make(map[string]bool, len(d.Products))
		for _, line := range d.Products {
			existing[line.ProductID] = true
		}
		for _, item := range in.Products {
			if existing[item.ProductID] {
				continue
			}
			d.Products = append(d.Products, localstore.DraftLine{
				ProductID: item.ProductID,
				Name:      item.Name,
				Category:  item.Category,
				ImageURL:  item.ImageURL,
				Quantity:  "",
			})
			existing[item.ProductID] = true
		}
	})
}

// Clear descarta el borrador de la sesión.
func (uc *DraftUseCase) Clear(sessionKey string) error {
	if sessionKey == "" {
		return domain.ErrInvalidInput
	}
	return uc.local.ClearDraft(sessionKey)
}

func toDraftLines(items []dto.DraftLineItem) []localstore.DraftLine {
	out := make([]localstore.DraftLine, 0, len(items))
	for _, item := range items {
		out = append(out, localstore.DraftLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}
	return out
}

func fromDraftLines(lines []localstore.DraftLine) []dto.DraftLineItem {
	out := make([]dto.DraftLineItem, 0, len(lines))
	for _, line := range lines {
		out = append(out, dto.DraftLineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Category:  line.Category,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
		})
	}
	return out
}
