package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/comanda-api/internal/domain/entity"
	"github.com/venuehub/comanda-api/internal/domain/settlement"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// ChargeSet
// ──────────────────────────────────────────────────────────────────────────────

func TestChargeSet_AcumulaYPreservaOrden(t *testing.T) {
	s := settlement.NewChargeSet()
	s.Add("ana", d("10"))
	s.Add("beto", d("5"))
	s.Add("ana", d("2.50"))

	assert.Equal(t, []string{"ana", "beto"}, s.CustomerIDs(),
		"el orden debe ser el de primera aparición")
	assert.True(t, s.Amount("ana").Equal(d("12.50")))
	assert.True(t, s.Amount("beto").Equal(d("5")))
	assert.True(t, s.Total().Equal(d("17.50")))
	assert.Equal(t, 2, s.Len())
}

func TestChargeSet_ClienteSinCargos_EsCero(t *testing.T) {
	s := settlement.NewChargeSet()
	assert.True(t, s.Amount("nadie").IsZero())
	assert.True(t, s.Total().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregate
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_SinParticipantes_TodoAlClientePrincipal(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	items := []*entity.TabItem{
		{ID: "i1", TabID: "t1", Total: d("30")},
		{ID: "i2", TabID: "t1", Total: d("20")},
	}

	charges := settlement.Aggregate(tab, items, nil)

	require.Equal(t, []string{"ana"}, charges.CustomerIDs())
	assert.True(t, charges.Amount("ana").Equal(d("50")))
	assert.True(t, charges.Total().Equal(d("50")))
}

// Ítem de ubicación con participantes: los montos registrados son los
// autoritativos y reemplazan la atribución al cliente principal.
func TestAggregate_ItemUbicacionConParticipantes_MontosAutoritativos(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	items := []*entity.TabItem{
		{ID: "mesa", TabID: "t1", LocationID: strPtr("loc1"), Total: d("100")},
	}
	participants := []*entity.TabItemParticipant{
		{ID: "p1", TabItemID: "mesa", CustomerID: "ana", Amount: d("60")},
		{ID: "p2", TabItemID: "mesa", CustomerID: "beto", Amount: d("40")},
	}

	charges := settlement.Aggregate(tab, items, participants)

	require.Equal(t, []string{"ana", "beto"}, charges.CustomerIDs())
	assert.True(t, charges.Amount("ana").Equal(d("60")))
	assert.True(t, charges.Amount("beto").Equal(d("40")))
	assert.True(t, charges.Total().Equal(d("100")))
}

// Los participantes de un ítem sin LocationID se ignoran: el reparto aplica
// solo a ítems de ubicación.
func TestAggregate_ParticipantesEnItemSinUbicacion_SeIgnoran(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	items := []*entity.TabItem{
		{ID: "cerveza", TabID: "t1", Total: d("15")},
	}
	participants := []*entity.TabItemParticipant{
		{ID: "p1", TabItemID: "cerveza", CustomerID: "beto", Amount: d("15")},
	}

	charges := settlement.Aggregate(tab, items, participants)

	require.Equal(t, []string{"ana"}, charges.CustomerIDs())
	assert.True(t, charges.Amount("ana").Equal(d("15")))
}

// Mezcla: ítems normales al principal, ítem de ubicación repartido entre dos.
func TestAggregate_MezclaItemsNormalesYRepartidos(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	items := []*entity.TabItem{
		{ID: "tragos", TabID: "t1", Total: d("35")},
		{ID: "mesa", TabID: "t1", LocationID: strPtr("loc1"), Total: d("80")},
	}
	participants := []*entity.TabItemParticipant{
		{ID: "p1", TabItemID: "mesa", CustomerID: "beto", Amount: d("50")},
		{ID: "p2", TabItemID: "mesa", CustomerID: "ana", Amount: d("30")},
	}

	charges := settlement.Aggregate(tab, items, participants)

	// ana aparece primero (ítem de tragos), luego beto (primer participante de la mesa)
	require.Equal(t, []string{"ana", "beto"}, charges.CustomerIDs())
	assert.True(t, charges.Amount("ana").Equal(d("65")))
	assert.True(t, charges.Amount("beto").Equal(d("50")))
	assert.True(t, charges.Total().Equal(d("115")))
}

// Ítem de ubicación sin participantes registrados: va entero al principal.
func TestAggregate_ItemUbicacionSinParticipantes_AlPrincipal(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	items := []*entity.TabItem{
		{ID: "mesa", TabID: "t1", LocationID: strPtr("loc1"), Total: d("80")},
	}

	charges := settlement.Aggregate(tab, items, nil)

	require.Equal(t, []string{"ana"}, charges.CustomerIDs())
	assert.True(t, charges.Amount("ana").Equal(d("80")))
}

func TestAggregate_ComandaVacia_SinCargos(t *testing.T) {
	tab := &entity.Tab{ID: "t1", CustomerID: "ana"}
	charges := settlement.Aggregate(tab, nil, nil)
	assert.Equal(t, 0, charges.Len())
	assert.True(t, charges.Total().IsZero())
}
