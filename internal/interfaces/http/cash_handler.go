package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/venuehub/comanda-api/internal/application/cash"
	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
)

// CashHandler maneja la caja registradora (protegido).
type CashHandler struct {
	uc *cash.RegisterUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.RegisterUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir caja con fondo inicial
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenRegisterRequest  true  "branch_id, opening_float"
// @Success      201   {object}  dto.CashRegisterResponse
// @Failure      409   {object}  dto.ErrorResponse  "ya hay una caja abierta"
// @Security     BearerAuth
// @Router       /api/cash/open [post]
func (h *CashHandler) Open(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OpenRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el fondo inicial no puede ser negativo"})
		}
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REGISTER_ALREADY_OPEN", Message: "ya hay una caja abierta para esta sucursal"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Caja abierta y totales al momento
// @Description  Devuelve la caja abierta de la sucursal con sus acumulados por método, o data null si no hay.
// @Tags         cash
// @Produce      json
// @Param        branch_id  query  string  false  "sucursal"
// @Success      200  {object}  dto.RegisterStateResponse
// @Security     BearerAuth
// @Router       /api/cash/open [get]
func (h *CashHandler) Current(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var branchID *string
	if b := c.Query("branch_id"); b != "" {
		branchID = &b
	}
	out, err := h.uc.Current(c.Context(), tenantID, branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar caja con acumulados finales
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseRegisterRequest  true  "cash_register_id, closing_float"
// @Success      200   {object}  dto.RegisterStateResponse
// @Failure      409   {object}  dto.ErrorResponse  "caja ya cerrada"
// @Security     BearerAuth
// @Router       /api/cash/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cash_register_id es requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la caja ya está cerrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
