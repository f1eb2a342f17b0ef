package usecase

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
	"github.com/nmendes/servicos-api/pkg/dates"
	"github.com/nmendes/servicos-api/pkg/logger"
)

// ServiceUseCase lectura y aprobación de servicios registrados.
type ServiceUseCase struct {
	repo  repository.ServiceRepository
	dates *dates.Formatter
	log   *logger.Logger
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, f *dates.Formatter, log *logger.Logger) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, dates: f, log: log.Component("services")}
}

// GetByID obtiene un servicio valorado (nil si no existe).
func (uc *ServiceUseCase) GetByID(id string) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, nil
	}
	return uc.toServiceResponse(service), nil
}

// List devuelve los servicios filtrados por estado y término de búsqueda.
// Los filtros son conjuntivos; el término empareja por subcadena sin
// distinguir mayúsculas ni acentos sobre servicio, cliente y profesional.
// El filtrado es en memoria sobre la colección completa: el mismo contrato
// de invalidación total que gobierna el realtime.
func (uc *ServiceUseCase) List(filter dto.ServiceFilter) ([]*dto.ServiceResponse, error) {
	services, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	term := foldSearch(filter.Search)
	out := make([]*dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		if filter.Status != "" && entity.NormalizeStatus(s.Status) != filter.Status {
			continue
		}
		if term != "" && !matchesTerm(s, term) {
			continue
		}
		out = append(out, uc.toServiceResponse(s))
	}
	return out, nil
}

// UpdateStatus ejecuta la transición pending -> approved|rejected.
// Un destino fuera del dominio es ErrInvalidInput. Repetir la transición
// sobre un servicio ya terminal se acepta sin efecto (reintentos de red),
// pero se deja constancia en el log.
func (uc *ServiceUseCase) UpdateStatus(id string, in dto.UpdateServiceStatusRequest) (*dto.ServiceResponse, error) {
	if in.Status != entity.StatusApproved && in.Status != entity.StatusRejected {
		return nil, domain.ErrInvalidInput
	}
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	if service.IsTerminal() {
		uc.log.Warn().
			Str("service_id", id).
			Str("current", service.Status).
			Str("requested", in.Status).
			Msg("transición sobre estado terminal ignorada")
		return uc.toServiceResponse(service), nil
	}
	if err := uc.repo.UpdateStatus(id, in.Status); err != nil {
		if !errors.Is(err, domain.ErrInvalidStatus) {
			return nil, err
		}
		// Otra transición concurrente ganó entre la lectura y el UPDATE: el
		// servicio ya es terminal. Mismo contrato idempotente que arriba.
		current, gerr := uc.repo.GetByID(id)
		if gerr != nil {
			return nil, gerr
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		uc.log.Warn().
			Str("service_id", id).
			Str("current", current.Status).
			Str("requested", in.Status).
			Msg("transición sobre estado terminal ignorada")
		return uc.toServiceResponse(current), nil
	}
	service.Status = in.Status
	return uc.toServiceResponse(service), nil
}

// Report devuelve los servicios filtrados como entidades, para el generador
// de PDF.
func (uc *ServiceUseCase) Report(filter dto.ServiceFilter) ([]*entity.Service, error) {
	services, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	term := foldSearch(filter.Search)
	out := make([]*entity.Service, 0, len(services))
	for _, s := range services {
		if filter.Status != "" && entity.NormalizeStatus(s.Status) != filter.Status {
			continue
		}
		if term != "" && !matchesTerm(s, term) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func matchesTerm(s *entity.Service, foldedTerm string) bool {
	return strings.Contains(foldSearch(s.ServiceName), foldedTerm) ||
		strings.Contains(foldSearch(s.ClientName), foldedTerm) ||
		strings.Contains(foldSearch(s.ProfessionalName), foldedTerm)
}

// foldSearch normaliza para búsqueda: minúsculas y sin marcas diacríticas
// ("José" y "jose" se emparejan). El transformer se construye por llamada,
// no es seguro compartirlo entre goroutines.
func foldSearch(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

func (uc *ServiceUseCase) toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:               s.ID,
		ProfessionalName: s.ProfessionalName,
		ClientName:       s.ClientName,
		ServiceName:      s.ServiceName,
		ServiceDate:      s.ServiceDate,
		ServiceDateBR:    uc.dates.DatabaseToBR(s.ServiceDate),
		Status:           entity.NormalizeStatus(s.Status),
		CreatedBy:        s.CreatedBy,
		TotalCost:        s.TotalCost(),
		Products:         make([]dto.ServiceLineResponse, 0, len(s.Products)),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	for _, sp := range s.Products {
		line := dto.ServiceLineResponse{
			ID:             sp.ID,
			ProductID:      sp.ProductID,
			QuantityUsed:   sp.QuantityUsed,
			Cost:           sp.Cost(),
			UnknownProduct: sp.Dangling(),
		}
		if sp.Product != nil {
			line.Product = toProductResponse(sp.Product)
		}
		resp.Products = append(resp.Products, line)
	}
	return resp
}
