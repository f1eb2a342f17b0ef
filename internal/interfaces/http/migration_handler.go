package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/application/usecase"
)

// MigrationHandler migración única del snapshot heredado (solo admin).
type MigrationHandler struct {
	uc *usecase.MigrationUseCase
}

// NewMigrationHandler construye el handler.
func NewMigrationHandler(uc *usecase.MigrationUseCase) *MigrationHandler {
	return &MigrationHandler{uc: uc}
}

// Run godoc
// @Summary      Migrar snapshot heredado
// @Description  Cuatro pasos en orden (categorías, marcas, productos, servicios). Sin rollback: el resultado llega por paso y un fallo deja los pasos previos aplicados.
// @Tags         migration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LegacySnapshot  true  "Snapshot del navegador"
// @Success      200   {object}  dto.MigrationResponse
// @Success      207   {object}  dto.MigrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/migration [post]
func (h *MigrationHandler) Run(c *fiber.Ctx) error {
	var in dto.LegacySnapshot
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "snapshot inválido"})
	}
	out := h.uc.Run(in)
	for _, step := range out.Steps {
		if !step.Completed {
			return c.Status(fiber.StatusMultiStatus).JSON(out)
		}
	}
	return c.JSON(out)
}
