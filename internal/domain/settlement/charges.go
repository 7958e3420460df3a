// Package settlement contiene la lógica pura de agregación de cargos del
// cierre de comanda (servicio de dominio, sin dependencias de infraestructura).
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// ChargeSet acumula cargos por cliente preservando el orden de primera
// aparición, para que la emisión de pagos y transacciones sea determinista.
type ChargeSet struct {
	order   []string
	amounts map[string]decimal.Decimal
}

// NewChargeSet construye un ChargeSet vacío.
func NewChargeSet() *ChargeSet {
	return &ChargeSet{amounts: make(map[string]decimal.Decimal)}
}

// Add suma amount al cargo acumulado del cliente.
func (s *ChargeSet) Add(customerID string, amount decimal.Decimal) {
	if _, ok := s.amounts[customerID]; !ok {
		s.order = append(s.order, customerID)
	}
	s.amounts[customerID] = s.amounts[customerID].Add(amount)
}

// CustomerIDs devuelve los clientes cargados en orden de primera aparición.
func (s *ChargeSet) CustomerIDs() []string { return s.order }

// Amount devuelve el cargo acumulado de un cliente (cero si no tiene cargos).
func (s *ChargeSet) Amount(customerID string) decimal.Decimal {
	return s.amounts[customerID]
}

// Total devuelve la suma de todos los cargos.
func (s *ChargeSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order {
		total = total.Add(s.amounts[id])
	}
	return total
}

// Len devuelve la cantidad de clientes con cargos.
func (s *ChargeSet) Len() int { return len(s.order) }

// Aggregate distribuye los ítems de una comanda en cargos por cliente:
//   - ítem de ubicación con participantes: los montos registrados de los
//     participantes son autoritativos (no se recalculan proporcionalmente)
//     y reemplazan la atribución al cliente principal;
//   - cualquier otro ítem: su Total completo se atribuye al cliente principal.
//
// La suma de los Total de los ítems es exactamente igual al Total del conjunto
// resultante siempre que los participantes cubran el monto de sus ítems; el
// motor confía en las filas de participantes tal como existen al cierre.
func Aggregate(tab *entity.Tab, items []*entity.TabItem, participants []*entity.TabItemParticipant) *ChargeSet {
	byItem := make(map[string][]*entity.TabItemParticipant, len(items))
	for _, p := range participants {
		byItem[p.TabItemID] = append(byItem[p.TabItemID], p)
	}

	charges := NewChargeSet()
	for _, item := range items {
		parts := byItem[item.ID]
		if item.LocationID != nil && len(parts) > 0 {
			for _, p := range parts {
				charges.Add(p.CustomerID, p.Amount)
			}
			continue
		}
		charges.Add(tab.CustomerID, item.Total)
	}
	return charges
}
