package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRowsReconstruction(t *testing.T) {
	d := doc(
		"MODELO DESCRIPCION CANTIDAD UNIDAD PRECIO IMPORTE",
		"ABC-12345 WIDGET INDUSTRIAL",
		"DE ACERO 2 PZA 1,500.00 3,000.00",
		"XYZ-99887 VALVULA 3 PZA 200.00 600.00",
		"Sub-Total",
		"3,600.00",
	)
	rows := ItemRows(d)
	require.Len(t, rows, 2)
	assert.Equal(t, "ABC-12345 WIDGET INDUSTRIAL DE ACERO 2 PZA 1,500.00 3,000.00", rows[0])
	assert.Equal(t, "XYZ-99887 VALVULA 3 PZA 200.00 600.00", rows[1])
}

func TestItemRowsLeftoverJoinsLastRow(t *testing.T) {
	d := doc(
		"MODELO CANTIDAD",
		"ABC-12345 WIDGET 2 PZA 10.00 20.00",
		"NOTA DE ENTREGA PENDIENTE", // wrapped trailer with no money columns
		"Subtotal",
	)
	rows := ItemRows(d)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "NOTA DE ENTREGA PENDIENTE")
}

func TestItemRowsNoRegion(t *testing.T) {
	assert.Nil(t, ItemRows(doc("Cliente: ACME", "Subtotal", "10.00")))
}

func TestQuantityTotalUnitKeyword(t *testing.T) {
	rows := []string{
		"ABC-12345 WIDGET 2 PZA 10.00 20.00",
		"XYZ-99887 VALVULA 3 PZA 5.00 15.00",
	}
	assert.Equal(t, "5", QuantityTotal(rows))
}

func TestQuantityTotalFractionKeepsDecimals(t *testing.T) {
	rows := []string{
		"ABC-12345 CABLE 1.5 KIT 10.00 15.00",
		"XYZ-99887 CABLE 2 KIT 10.00 20.00",
	}
	assert.Equal(t, "3.5", QuantityTotal(rows))
}

func TestQuantityTotalRightmostNumberFallback(t *testing.T) {
	// no unit keyword: the right-most plain number before the first
	// monetary token is the quantity
	rows := []string{"ABC-12345 WIDGET 4 1,000.00 4,000.00"}
	assert.Equal(t, "4", QuantityTotal(rows))
}

func TestQuantityTotalRejectsImplausibleCodes(t *testing.T) {
	// 123456 is out of the plausible range; no other candidate exists
	rows := []string{"REF 123456 1,000.00 4,000.00"}
	assert.Equal(t, "", QuantityTotal(rows))
}

func TestQuantityTotalEmptyMeansNotFound(t *testing.T) {
	assert.Equal(t, "", QuantityTotal(nil))
	assert.Equal(t, "", QuantityTotal([]string{"SIN NUMEROS AQUI"}))
}

func TestItemIdentitySingleRow(t *testing.T) {
	rows := ItemRows(doc(
		"MODELO DESCRIPCION CANTIDAD UNIDAD PRECIO IMPORTE",
		"ABC-12345 WIDGET INDUSTRIAL",
		"DE ACERO 2 PZA 1,500.00 3,000.00",
		"Sub-Total",
	))
	require.Len(t, rows, 1)
	id, desc := itemIdentity(rows)
	assert.Equal(t, "ABC-12345", id)
	assert.Equal(t, "WIDGET INDUSTRIAL DE ACERO", desc)
}

func TestItemIdentityMultiRowStaysBlank(t *testing.T) {
	rows := []string{
		"ABC-12345 WIDGET 2 PZA 10.00 20.00",
		"XYZ-99887 VALVULA 3 PZA 5.00 15.00",
	}
	id, desc := itemIdentity(rows)
	assert.Empty(t, id)
	assert.Empty(t, desc)
}

func TestItemIdentityRejectsUnitTokens(t *testing.T) {
	// no model-shaped token: unit keywords never qualify
	id, _ := itemIdentity([]string{"PZA 2 10.00 20.00"})
	assert.Empty(t, id)
}
