package tab

import (
	"context"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// QueryUseCase lecturas de comandas (detalle con ítems y participantes).
type QueryUseCase struct {
	tabRepo         repository.TabRepository
	itemRepo        repository.TabItemRepository
	participantRepo repository.ParticipantRepository
}

// NewQueryUseCase construye las consultas de comanda.
func NewQueryUseCase(
	tabRepo repository.TabRepository,
	itemRepo repository.TabItemRepository,
	participantRepo repository.ParticipantRepository,
) *QueryUseCase {
	return &QueryUseCase{tabRepo: tabRepo, itemRepo: itemRepo, participantRepo: participantRepo}
}

// GetTab devuelve la comanda con sus líneas y participantes.
func (uc *QueryUseCase) GetTab(ctx context.Context, tenantID, id string) (*dto.TabDetailResponse, error) {
	t, err := uc.tabRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	items, err := uc.itemRepo.ListByTab(t.ID)
	if err != nil {
		return nil, err
	}
	participants, err := uc.participantRepo.ListByTab(t.ID)
	if err != nil {
		return nil, err
	}

	out := &dto.TabDetailResponse{
		Tab:          *ToTabResponse(t),
		Items:        make([]dto.TabItemResponse, 0, len(items)),
		Participants: make([]dto.ParticipantResponse, 0, len(participants)),
	}
	for _, i := range items {
		out.Items = append(out.Items, *toItemResponse(i))
	}
	for _, p := range participants {
		out.Participants = append(out.Participants, dto.ParticipantResponse{
			ID:         p.ID,
			TabItemID:  p.TabItemID,
			CustomerID: p.CustomerID,
			Amount:     p.Amount,
		})
	}
	return out, nil
}
