package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
	"github.com/nmendes/servicos-api/pkg/dates"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// TxRunner puerto transaccional: cabecera y líneas del servicio entran al
// remoto atómicamente o no entran.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		serviceRepo repository.ServiceRepository,
		lineRepo repository.ServiceProductRepository,
	) error) error
}

// SubmitServiceUseCase registro de un servicio con doble persistencia:
// primero el almacén remoto, siempre la lista local de respaldo. Si el
// remoto falla, el registro queda solo en el respaldo (local_only) y la
// operación igual se considera aceptada — el trabajo de la profesional no
// se pierde por un corte de red.
type SubmitServiceUseCase struct {
	tx       TxRunner
	products repository.ProductRepository
	local    *localstore.Store
	dates    *dates.Formatter
	log      *logger.Logger
}

// NewSubmitServiceUseCase construye el caso de uso.
func NewSubmitServiceUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	local *localstore.Store,
	f *dates.Formatter,
	log *logger.Logger,
) *SubmitServiceUseCase {
	return &SubmitServiceUseCase{
		tx:       tx,
		products: products,
		local:    local,
		dates:    f,
		log:      log.Component("submit-service"),
	}
}

// Submit registra el servicio. createdBy es la cuenta autenticada.
//
// Camino feliz: tx remota (cabecera + líneas) → copia synced en el respaldo
// → limpiar borrador. Camino degradado: la tx falla → registro local_only en
// el respaldo con el motivo → limpiar borrador igual. No hay re-sincronización
// de los local_only.
// TODO: promover registros local_only al remoto cuando vuelva la conexión
// (hoy requiere re-digitar el servicio).
func (uc *SubmitServiceUseCase) Submit(ctx context.Context, createdBy string, in dto.CreateServiceRequest) (*dto.SubmitServiceResponse, error) {
	if in.ProfessionalName == "" || in.ClientName == "" || in.ServiceName == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Products {
		if line.ProductID == "" || !line.QuantityUsed.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	serviceDate := in.ServiceDate
	if serviceDate == "" {
		serviceDate = uc.dates.ForDatabase(uc.dates.Today())
	} else if _, ok := uc.dates.ParseDatabase(serviceDate); !ok {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	service := &entity.Service{
		ID:               uuid.New().String(),
		ProfessionalName: in.ProfessionalName,
		ClientName:       in.ClientName,
		ServiceName:      in.ServiceName,
		ServiceDate:      serviceDate,
		Status:           entity.StatusPending,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	lines := make([]*entity.ServiceProduct, 0, len(in.Products))
	for _, item := range in.Products {
		lines = append(lines, &entity.ServiceProduct{
			ID:           uuid.New().String(),
			ServiceID:    service.ID,
			ProductID:    item.ProductID,
			QuantityUsed: item.QuantityUsed,
			CreatedAt:    now,
		})
	}

	err := uc.tx.Run(ctx, func(serviceRepo repository.ServiceRepository, lineRepo repository.ServiceProductRepository) error {
		if err := serviceRepo.Create(service); err != nil {
			return err
		}
		return lineRepo.CreateBatch(lines)
	})

	fallback := uc.buildFallback(service, lines)

	if err != nil {
		// El remoto falló: el registro sobrevive solo en el respaldo local.
		fallback.Origin = localstore.OriginLocalOnly
		fallback.PendingReason = err.Error()
		uc.log.Error().Err(err).
			Str("local_id", fallback.LocalID).
			Msg("insert remoto falló, servicio guardado solo en respaldo local")
		if lerr := uc.local.AppendFallback(fallback); lerr != nil {
			// Fallaron los dos almacenes: ahora sí es un error del envío.
			return nil, lerr
		}
		uc.clearDraft(in.SessionKey)
		return &dto.SubmitServiceResponse{
			Storage: dto.StorageLocalOnly,
			LocalID: fallback.LocalID,
			Message: "serviço registrado localmente; o armazenamento remoto está indisponível",
		}, nil
	}

	fallback.Origin = localstore.OriginSynced
	fallback.RemoteID = service.ID
	if lerr := uc.local.AppendFallback(fallback); lerr != nil {
		// El remoto ya tiene el registro; perder la copia de respaldo solo se reporta.
		uc.log.Warn().Err(lerr).Str("service_id", service.ID).Msg("no se pudo escribir la copia de respaldo")
	}
	uc.clearDraft(in.SessionKey)

	service.Products = lines
	return &dto.SubmitServiceResponse{
		Storage: dto.StorageSynced,
		Service: uc.toSubmitted(service),
		Message: "serviço registrado com sucesso",
	}, nil
}

func (uc *SubmitServiceUseCase) clearDraft(sessionKey string) {
	if sessionKey == "" {
		return
	}
	if err := uc.local.ClearDraft(sessionKey); err != nil {
		uc.log.Warn().Err(err).Str("session_key", sessionKey).Msg("no se pudo limpiar el borrador")
	}
}

// buildFallback arma la copia desnormalizada para la lista de respaldo,
// resolviendo nombres de producto para que el registro sea legible aunque
// el catálogo cambie después.
func (uc *SubmitServiceUseCase) buildFallback(service *entity.Service, lines []*entity.ServiceProduct) localstore.FallbackService {
	rec := localstore.FallbackService{
		LocalID:          uuid.New().String(),
		ProfessionalName: service.ProfessionalName,
		ClientName:       service.ClientName,
		ServiceName:      service.ServiceName,
		ServiceDate:      service.ServiceDate,
		Status:           service.Status,
		CreatedAt:        service.CreatedAt,
	}
	for _, line := range lines {
		name := ""
		if product, err := uc.products.GetByID(line.ProductID); err == nil && product != nil {
			name = product.Name
		}
		rec.Products = append(rec.Products, localstore.FallbackLine{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.QuantityUsed.String(),
		})
	}
	return rec
}

// toSubmitted respuesta mínima del servicio recién creado: las líneas aún no
// traen el producto cargado, el detalle completo sale por GET.
func (uc *SubmitServiceUseCase) toSubmitted(s *entity.Service) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:               s.ID,
		ProfessionalName: s.ProfessionalName,
		ClientName:       s.ClientName,
		ServiceName:      s.ServiceName,
		ServiceDate:      s.ServiceDate,
		ServiceDateBR:    uc.dates.DatabaseToBR(s.ServiceDate),
		Status:           s.Status,
		CreatedBy:        s.CreatedBy,
		TotalCost:        s.TotalCost(),
		Products:         make([]dto.ServiceLineResponse, 0, len(s.Products)),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	for _, sp := range s.Products {
		resp.Products = append(resp.Products, dto.ServiceLineResponse{
			ID:             sp.ID,
			ProductID:      sp.ProductID,
			QuantityUsed:   sp.QuantityUsed,
			Cost:           sp.Cost(),
			UnknownProduct: sp.Dangling(),
		})
	}
	return resp
}
