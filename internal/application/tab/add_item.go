package tab

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// AddItemUseCase agrega líneas de consumo a una comanda abierta.
// El Total llega validado del edge (catálogo de precios externo); aquí solo se
// registra como monto cobrable.
type AddItemUseCase struct {
	tabRepo     repository.TabRepository
	itemRepo    repository.TabItemRepository
	bookingRepo repository.BookingRepository
}

// NewAddItemUseCase construye el caso de uso.
func NewAddItemUseCase(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	bookingRepo repository.BookingRepository,
) *AddItemUseCase {
	return &AddItemUseCase{tabRepo: tabRepo, itemRepo: itemRepo, bookingRepo: bookingRepo}
}

// AddItem valida que la comanda esté abierta, chequea conflictos de reserva
// para ítems de ubicación con franja horaria y persiste la línea tal cual.
func (uc *AddItemUseCase) AddItem(ctx context.Context, tenantID string, in dto.AddItemRequest) (*dto.TabItemResponse, error) {
	if in.TabID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Total.LessThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartAt != nil && in.EndAt != nil && !in.EndAt.After(*in.StartAt) {
		return nil, domain.ErrInvalidInput
	}

	t, err := uc.tabRepo.GetByID(in.TabID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if !t.IsOpen() {
		return nil, domain.ErrInvalidState
	}

	// Ítems de ubicación con franja: verificar reservas pending/in_progress
	// solapadas. Un solape solo se tolera si todas las reservas en conflicto
	// pertenecen al cliente de la comanda.
	if in.LocationID != nil && in.StartAt != nil && in.EndAt != nil {
		overlapping, err := uc.bookingRepo.ListOverlapping(tenantID, *in.LocationID, *in.StartAt, *in.EndAt)
		if err != nil {
			return nil, err
		}
		for _, b := range overlapping {
			if b.CustomerID != t.CustomerID {
				return nil, domain.ErrConflict
			}
		}
	}

	item := &entity.TabItem{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		TabID:       t.ID,
		ProductID:   in.ProductID,
		ServiceID:   in.ServiceID,
		LocationID:  in.LocationID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Total:       in.Total,
		StartAt:     in.StartAt,
		EndAt:       in.EndAt,
		CreatedAt:   time.Now(),
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func toItemResponse(i *entity.TabItem) *dto.TabItemResponse {
	return &dto.TabItemResponse{
		ID:          i.ID,
		TabID:       i.TabID,
		ProductID:   i.ProductID,
		ServiceID:   i.ServiceID,
		LocationID:  i.LocationID,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Total:       i.Total,
		StartAt:     i.StartAt,
		EndAt:       i.EndAt,
		CreatedAt:   i.CreatedAt,
	}
}
