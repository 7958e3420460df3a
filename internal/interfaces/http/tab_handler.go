package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/application/tab"
	"github.com/venuehub/comanda-api/internal/domain"
)

// TabHandler maneja el ciclo de vida de las comandas (protegido).
type TabHandler struct {
	openUC         *tab.OpenTabUseCase
	addItemUC      *tab.AddItemUseCase
	participantsUC *tab.SetParticipantsUseCase
	settleUC       *tab.SettleTabUseCase
	queryUC        *tab.QueryUseCase
	receiptUC      *tab.ReceiptUseCase
}

// NewTabHandler construye el handler.
func NewTabHandler(
	openUC *tab.OpenTabUseCase,
	addItemUC *tab.AddItemUseCase,
	participantsUC *tab.SetParticipantsUseCase,
	settleUC *tab.SettleTabUseCase,
	queryUC *tab.QueryUseCase,
	receiptUC *tab.ReceiptUseCase,
) *TabHandler {
	return &TabHandler{
		openUC:         openUC,
		addItemUC:      addItemUC,
		participantsUC: participantsUC,
		settleUC:       settleUC,
		queryUC:        queryUC,
		receiptUC:      receiptUC,
	}
}

// Open godoc
// @Summary      Abrir comanda desde un identificador
// @Description  Resuelve el código (NFC/barcode/QR/manual) y abre la comanda; si el cliente ya tiene una abierta la devuelve (idempotente).
// @Tags         tabs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenTabRequest  true  "identifier, branch_id"
// @Success      200   {object}  dto.TabResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tabs/open [post]
func (h *TabHandler) Open(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OpenTabRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Identifier == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "identifier es requerido"})
	}
	out, err := h.openUC.Open(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "IDENTIFIER_NOT_FOUND", Message: "identificador desconocido o inactivo"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "apertura simultánea, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una comanda
// @Tags         tabs
// @Produce      json
// @Param        id   path      string  true  "tab id"
// @Success      200  {object}  dto.TabDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tabs/{id} [get]
func (h *TabHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.queryUC.GetTab(c.Context(), tenantID, id)
	if err != nil {
		return h.mapError(c, err, "comanda no encontrada")
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar consumo a una comanda abierta
// @Tags         tabs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "línea de consumo"
// @Success      201   {object}  dto.TabItemResponse
// @Failure      409   {object}  dto.ErrorResponse  "comanda cerrada o franja ocupada"
// @Security     BearerAuth
// @Router       /api/tabs/items [post]
func (h *TabHandler) AddItem(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.addItemUC.AddItem(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BOOKING_CONFLICT", Message: "la ubicación ya está reservada en esa franja"})
		}
		return h.mapError(c, err, "comanda no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetParticipants godoc
// @Summary      Reemplazar el reparto de un ítem entre participantes
// @Description  Reemplaza el conjunto completo de participantes del ítem. Requiere el feature flag de split habilitado.
// @Tags         tabs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetParticipantsRequest  true  "tab_item_id, participants"
// @Success      200   {object}  dto.SetParticipantsResponse
// @Failure      403   {object}  dto.ErrorResponse  "feature deshabilitado"
// @Security     BearerAuth
// @Router       /api/tabs/items/participants [post]
func (h *TabHandler) SetParticipants(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SetParticipantsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.participantsUC.SetParticipants(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FEATURE_DISABLED", Message: "el reparto de ítems no está habilitado"})
		}
		return h.mapError(c, err, "ítem no encontrado")
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar y liquidar una comanda
// @Description  Agrega cargos por cliente, debita saldo (prepago) o registra pagos contra la caja abierta (crédito), desactiva el identificador. Todo o nada.
// @Tags         tabs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseTabRequest  true  "tab_id, payments"
// @Success      200   {object}  dto.CloseTabResponse
// @Failure      402   {object}  dto.ErrorResponse  "saldo o límite insuficiente"
// @Failure      409   {object}  dto.ErrorResponse  "estado inválido o pagos descuadrados"
// @Security     BearerAuth
// @Router       /api/tabs/close [post]
func (h *TabHandler) Close(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseTabRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TabID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tab_id es requerido"})
	}
	out, err := h.settleUC.Close(c.Context(), tenantID, in)
	if err != nil {
		var insufficient *domain.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_FUNDS", Message: err.Error()})
		}
		var mismatch *domain.PaymentMismatchError
		if errors.As(err, &mismatch) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PAYMENT_MISMATCH", Message: err.Error()})
		}
		var missing *domain.MissingCustomerError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
		}
		return h.mapError(c, err, "comanda no encontrada")
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del cierre
// @Tags         tabs
// @Produce      application/pdf
// @Param        id   path  string  true  "tab id"
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.ErrorResponse  "comanda aún abierta"
// @Security     BearerAuth
// @Router       /api/tabs/{id}/receipt [get]
func (h *TabHandler) Receipt(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.receiptUC.Generate(c.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la comanda sigue abierta"})
		}
		return h.mapError(c, err, "comanda no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// mapError traduce los sentinels comunes a HTTP; los casos específicos se
// resuelven en cada handler antes de llegar aquí.
func (h *TabHandler) mapError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	if errors.Is(err, domain.ErrInvalidState) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la comanda no está abierta"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
