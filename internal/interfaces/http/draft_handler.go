package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
	"github.com/nmendes/servicos-api/internal/domain"
)

// sessionKeyHeader identifica la sesión de formulario del cliente. Es una
// clave opaca que el cliente genera y repite en cada petición de borrador.
const sessionKeyHeader = "X-Session-Key"

// DraftHandler maneja el borrador del formulario de servicio.
type DraftHandler struct {
	uc *usecase.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Param        X-Session-Key  header  string               true  "Clave de sesión del formulario"
// @Param        body           body    dto.SaveDraftRequest true  "Borrador"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/drafts [put]
func (h *DraftHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Save(c.Get(sessionKeyHeader), in); err != nil {
		return mapDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Take godoc
// @Summary      Restaurar borrador (una sola vez)
// @Description  Devuelve el borrador y lo borra en la misma operación. Sin borrador pendiente responde 204.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del formulario"
// @Success      200  {object}  dto.DraftResponse
// @Success      204
// @Router       /api/drafts [post]
func (h *DraftHandler) Take(c *fiber.Ctx) error {
	out, err := h.uc.Take(c.Get(sessionKeyHeader))
	if err != nil {
		return mapDraftError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// AppendProducts godoc
// @Summary      Anexar productos elegidos al borrador
// @Description  Los productos entran con cantidad vacía; las cantidades ya tecleadas se preservan.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Param        X-Session-Key  header  string                          true  "Clave de sesión del formulario"
// @Param        body           body    dto.AppendDraftProductsRequest  true  "Productos elegidos"
// @Success      204
// @Router       /api/drafts/products [post]
func (h *DraftHandler) AppendProducts(c *fiber.Ctx) error {
	var in dto.AppendDraftProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AppendProducts(c.Get(sessionKeyHeader), in); err != nil {
		return mapDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Param        X-Session-Key  header  string  true  "Clave de sesión del formulario"
// @Success      204
// @Router       /api/drafts [delete]
func (h *DraftHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Get(sessionKeyHeader)); err != nil {
		return mapDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapDraftError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION_KEY", Message: "header " + sessionKeyHeader + " requerido"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
