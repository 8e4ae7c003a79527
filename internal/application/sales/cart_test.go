package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfacil/kiosco-pos/internal/application/sales"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

func producto(id string, precio string, stock int64) *entity.Product {
	return &entity.Product{
		ID:      id,
		Barcode: "779" + id,
		Name:    "Producto " + id,
		Price:   decimal.RequireFromString(precio),
		Stock:   stock,
	}
}

// Escanear el mismo producto acumula cantidad en una sola línea.
func TestCart_ScanAcumulaPorProducto(t *testing.T) {
	cart := sales.NewCart()
	p := producto("a", "150.50", 10)

	require.NoError(t, cart.Scan(p))
	require.NoError(t, cart.Scan(p))
	require.NoError(t, cart.Scan(producto("b", "200", 5)))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].Quantity)
	assert.Equal(t, "501.00", cart.Total().StringFixed(2))
}

// El chequeo al escanear es consultivo: rechaza superar el stock visto en ese
// momento, sin tocar la base.
func TestCart_ScanRechazaSuperarStockVisto(t *testing.T) {
	cart := sales.NewCart()
	p := producto("a", "100", 2)

	require.NoError(t, cart.Scan(p))
	require.NoError(t, cart.Scan(p))
	err := cart.Scan(p)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no rompe el carrito: la línea queda en 2.
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestCart_ScanSinStock(t *testing.T) {
	cart := sales.NewCart()
	assert.ErrorIs(t, cart.Scan(producto("a", "100", 0)), domain.ErrInsufficientStock)
	assert.True(t, cart.Empty())
}

func TestCart_Clear(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.Scan(producto("a", "100", 5)))
	cart.Clear()
	assert.True(t, cart.Empty())
	assert.Equal(t, "0.00", cart.Total().StringFixed(2))
}
