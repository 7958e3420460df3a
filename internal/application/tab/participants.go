package tab

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// SetParticipantsUseCase reemplaza el conjunto de participantes de un ítem.
// Es un "set" idempotente (delete-all + insert-all en una transacción), no un
// merge: reintentos del caller no duplican participantes. No valida que la
// suma de montos iguale el Total del ítem; los montos registrados son los que
// el cierre tomará como autoritativos.
type SetParticipantsUseCase struct {
	tabRepo  repository.TabRepository
	itemRepo repository.TabItemRepository
	txRunner TxRunner
	enabled  bool // flag de plan provisto por el colaborador externo
}

// NewSetParticipantsUseCase construye el caso de uso. enabled refleja el flag
// de plan del tenant (FEATURE_ITEMIZED_SPLIT).
func NewSetParticipantsUseCase(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	txRunner TxRunner,
	enabled bool,
) *SetParticipantsUseCase {
	return &SetParticipantsUseCase{tabRepo: tabRepo, itemRepo: itemRepo, txRunner: txRunner, enabled: enabled}
}

// SetParticipants aplica el reemplazo. La comanda dueña del ítem debe estar abierta.
func (uc *SetParticipantsUseCase) SetParticipants(ctx context.Context, tenantID string, in dto.SetParticipantsRequest) (*dto.SetParticipantsResponse, error) {
	if !uc.enabled {
		return nil, domain.ErrForbidden
	}
	if in.TabItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range in.Participants {
		if p.CustomerID == "" || p.Amount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	item, err := uc.itemRepo.GetByID(in.TabItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	// El reparto por participantes solo aplica a ítems anclados a una
	// ubicación; un consumo suelto siempre carga al cliente principal.
	if item.LocationID == nil {
		return nil, fmt.Errorf("%w: el ítem no tiene ubicación asignada", domain.ErrInvalidInput)
	}
	t, err := uc.tabRepo.GetByID(item.TabID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !t.IsOpen() {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	err = uc.txRunner.RunParticipants(ctx, func(participantRepo repository.ParticipantRepository) error {
		if err := participantRepo.DeleteByItem(item.ID); err != nil {
			return err
		}
		for _, p := range in.Participants {
			row := &entity.TabItemParticipant{
				ID:         uuid.New().String(),
				TenantID:   tenantID,
				TabItemID:  item.ID,
				CustomerID: p.CustomerID,
				Amount:     p.Amount,
				CreatedAt:  now,
			}
			if err := participantRepo.Create(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SetParticipantsResponse{TabItemID: item.ID, Participants: in.Participants}, nil
}
