package tab

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/comanda-api/internal/application/dto"
	"github.com/venuehub/comanda-api/internal/domain"
	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/repository"
)

// OpenTabUseCase abre comandas: resuelve el identificador y aplica la máquina
// de estados none → open. La apertura es idempotente: taps repetidos sobre el
// mismo identificador devuelven la comanda ya abierta, nunca crean una segunda.
type OpenTabUseCase struct {
	identifierRepo repository.IdentifierRepository
	tabRepo        repository.TabRepository
}

// NewOpenTabUseCase construye el caso de uso.
func NewOpenTabUseCase(identifierRepo repository.IdentifierRepository, tabRepo repository.TabRepository) *OpenTabUseCase {
	return &OpenTabUseCase{identifierRepo: identifierRepo, tabRepo: tabRepo}
}

// Open resuelve el código contra los identificadores activos del tenant y abre
// (o devuelve) la comanda del cliente. El tipo de la comanda se fija desde la
// política del identificador y no cambia durante su vida.
func (uc *OpenTabUseCase) Open(ctx context.Context, tenantID string, in dto.OpenTabRequest) (*dto.TabResponse, error) {
	if in.Identifier == "" {
		return nil, domain.ErrInvalidInput
	}

	identifier, err := uc.identifierRepo.GetActiveByCode(tenantID, in.Identifier)
	if err != nil {
		return nil, err
	}
	if identifier == nil {
		return nil, domain.ErrNotFound
	}

	// Apertura idempotente: si el cliente ya tiene comanda abierta, se devuelve.
	existing, err := uc.tabRepo.GetOpenByCustomer(tenantID, identifier.CustomerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return ToTabResponse(existing), nil
	}

	now := time.Now()
	t := &entity.Tab{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		BranchID:       in.BranchID,
		CustomerID:     identifier.CustomerID,
		IdentifierCode: identifier.Code,
		Type:           identifier.TabPolicy,
		Status:         entity.TabStatusOpen,
		OpenedAt:       now,
	}
	if err := uc.tabRepo.Create(t); err != nil {
		return nil, err
	}
	return ToTabResponse(t), nil
}

// ToTabResponse mapea la entidad al DTO de salida.
func ToTabResponse(t *entity.Tab) *dto.TabResponse {
	return &dto.TabResponse{
		ID:             t.ID,
		TenantID:       t.TenantID,
		BranchID:       t.BranchID,
		CustomerID:     t.CustomerID,
		IdentifierCode: t.IdentifierCode,
		Type:           t.Type,
		Status:         t.Status,
		OpenedAt:       t.OpenedAt,
		ClosedAt:       t.ClosedAt,
	}
}
