package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/venuehub/comanda-api/internal/application/customer"
	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
)

// CustomerHandler maneja saldos y asientos de clientes (protegido).
type CustomerHandler struct {
	uc *customer.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// AddCredits godoc
// @Summary      Recargar saldo prepago de un cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "customer id"
// @Param        body  body  dto.AddCreditsRequest  true  "amount, description"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/customers/{id}/credits [post]
func (h *CustomerHandler) AddCredits(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	customerID := c.Params("id")
	var in dto.AddCreditsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddCredits(c.Context(), tenantID, customerID, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Asientos del cliente, más recientes primero
// @Tags         customers
// @Produce      json
// @Param        id      path   string  true   "customer id"
// @Param        limit   query  int     false  "máx 100, default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/customers/{id}/transactions [get]
func (h *CustomerHandler) ListTransactions(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	customerID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListTransactions(c.Context(), tenantID, customerID, page)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) mapError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
