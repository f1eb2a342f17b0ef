package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/infrastructure/localstore"
	"github.com/nmendes/servicos-api/internal/infrastructure/pdf"
)

// ServiceHandler maneja las peticiones HTTP para servicios: envío con doble
// persistencia, listado filtrado, aprobación y reporte PDF.
type ServiceHandler struct {
	services *usecase.ServiceUseCase
	submit   *usecase.SubmitServiceUseCase
	report   *pdf.ServiceReportGenerator
	local    *localstore.Store
}

// NewServiceHandler construye el handler.
func NewServiceHandler(
	services *usecase.ServiceUseCase,
	submit *usecase.SubmitServiceUseCase,
	report *pdf.ServiceReportGenerator,
	local *localstore.Store,
) *ServiceHandler {
	return &ServiceHandler{services: services, submit: submit, report: report, local: local}
}

// Submit godoc
// @Summary      Registrar servicio
// @Description  Doble persistencia: remoto primero, siempre respaldo local. Si el remoto falla responde 202 con storage=local_only.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Servicio"
// @Success      201   {object}  dto.SubmitServiceResponse
// @Success      202   {object}  dto.SubmitServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.submit.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del servicio inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out.Storage == dto.StorageLocalOnly {
		// Aceptado pero no sincronizado: el cliente debe saberlo.
		return c.Status(fiber.StatusAccepted).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar servicios
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        search  query  string  false  "término sobre servicio, cliente y profesional"
// @Success      200     {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	var filter dto.ServiceFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.services.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener servicio por ID
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.services.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o recusar servicio
// @Description  pending -> approved|rejected. Repetir sobre un estado terminal responde 200 sin efecto.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del servicio"
// @Param        body  body  dto.UpdateServiceStatusRequest true  "Estado destino"
// @Success      200   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services/{id}/status [patch]
func (h *ServiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateServiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.services.UpdateStatus(c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "el estado destino debe ser approved o rejected"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "servicio no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de servicios en PDF
// @Tags         services
// @Security     Bearer
// @Produce      application/pdf
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        search  query  string  false  "término de búsqueda"
// @Success      200  {file}  binary
// @Router       /api/services/report [get]
func (h *ServiceHandler) Report(c *fiber.Ctx) error {
	var filter dto.ServiceFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	services, err := h.services.Report(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	raw, err := h.report.Generate(services)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-servicos.pdf"`)
	return c.Send(raw)
}

// Backup godoc
// @Summary      Lista local de respaldo
// @Description  Copias desnormalizadas de los envíos, más reciente primero. origin=local_only marca los que nunca llegaron al remoto.
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  localstore.FallbackService
// @Router       /api/services/backup [get]
func (h *ServiceHandler) Backup(c *fiber.Ctx) error {
	out, err := h.local.ListFallback()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		out = []localstore.FallbackService{}
	}
	return c.JSON(out)
}
