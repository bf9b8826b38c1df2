// Package refill содержит корзину пополнения большого заказа.
package refill

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ErrInactiveProduct возвращается при попытке добавить неактивный товар.
var ErrInactiveProduct = errors.New("product is inactive")

// Line описывает строку корзины. Цена и название фиксируются в момент добавления.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal возвращает стоимость строки.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart собирает товары, выделяемые на заказ. На один товар приходится не больше одной строки.
// Нулевое значение готово к работе.
type Cart struct {
	lines []Line
	index map[int64]int
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// Add добавляет одну единицу товара. Повторное добавление увеличивает количество существующей строки.
func (c *Cart) Add(p model.Product) error {
	if !p.Active {
		return ErrInactiveProduct
	}

	if c.index == nil {
		c.index = make(map[int64]int)
	}

	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity++
		return nil
	}

	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1})
	return nil
}

// SetQuantity задаёт количество строки. Значение меньше 1 удаляет строку.
// Возвращает false, если товара в корзине нет.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}
	if quantity < 1 {
		c.Remove(productID)
		return true
	}
	c.lines[i].Quantity = quantity
	return true
}

// Quantity возвращает количество товара в корзине.
func (c *Cart) Quantity(productID int64) int {
	if i, ok := c.index[productID]; ok {
		return c.lines[i].Quantity
	}
	return 0
}

// Remove удаляет строку товара.
func (c *Cart) Remove(productID int64) {
	i, ok := c.index[productID]
	if !ok {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Lines возвращает копию строк в порядке добавления.
func (c *Cart) Lines() []Line {
	res := make([]Line, len(c.lines))
	copy(res, c.lines)
	return res
}

// Len возвращает число строк.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Units возвращает общее число единиц.
func (c *Cart) Units() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total пересчитывает сумму корзины.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Request формирует тело пакетного добавления продуктов в заказ.
func (c *Cart) Request() model.AddOrderProductsRequest {
	req := model.AddOrderProductsRequest{Products: make([]model.OrderProductLine, 0, len(c.lines))}
	for _, l := range c.lines {
		req.Products = append(req.Products, model.OrderProductLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return req
}

// Reset очищает корзину.
func (c *Cart) Reset() {
	c.lines = nil
	c.index = make(map[int64]int)
}
