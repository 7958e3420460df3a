package repository

import "github.com/venuehub/comanda-api/internal/domain/entity"

// TabItemRepository define el puerto de persistencia para las líneas de consumo.
// Las líneas son append-only: no hay update ni delete.
type TabItemRepository interface {
	Create(item *entity.TabItem) error
	GetByID(id string) (*entity.TabItem, error)
	ListByTab(tabID string) ([]*entity.TabItem, error)
}

// ParticipantRepository define el puerto para los participantes de un ítem.
// El reemplazo del conjunto (delete + inserts) debe ejecutarse dentro de una
// transacción del caller para que sea un "set" atómico.
type ParticipantRepository interface {
	Create(p *entity.TabItemParticipant) error
	DeleteByItem(tabItemID string) error
	ListByItem(tabItemID string) ([]*entity.TabItemParticipant, error)
	// ListByTab devuelve los participantes de todos los ítems de la comanda.
	ListByTab(tabID string) ([]*entity.TabItemParticipant, error)
}
