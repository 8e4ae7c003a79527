package sales

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// Line una línea del carrito: producto más cantidad acumulada por escaneos.
type Line struct {
	ProductID string
	Barcode   string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Subtotal precio unitario por cantidad.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart carrito en memoria previo al compromiso. El chequeo de stock al escanear
// es consultivo: la verificación autoritativa ocurre dentro de la transacción
// de Commit, con la fila bloqueada.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	index map[string]int
}

// NewCart construye un carrito vacío.
func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Scan agrega una unidad del producto al carrito. Rechaza con
// domain.ErrInsufficientStock si la cantidad acumulada superaría el stock
// leído al momento del escaneo.
func (c *Cart) Scan(p *entity.Product) error {
	if p == nil {
		return domain.ErrNotFound
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[p.ID]; ok {
		if c.lines[i].Quantity+1 > p.Stock {
			return domain.ErrInsufficientStock
		}
		c.lines[i].Quantity++
		return nil
	}
	if p.Stock < 1 {
		return domain.ErrInsufficientStock
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
	return nil
}

// Lines copia de las líneas actuales, en orden de primer escaneo.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total suma de subtotales de todas las líneas.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Empty true si el carrito no tiene líneas.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[string]int)
}
