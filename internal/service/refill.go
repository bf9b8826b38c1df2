package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/refill"
	"github.com/mmeshcher/flora-console/internal/workflow"
)

// RefillDetail содержит большой заказ с выделенными на него продуктами.
type RefillDetail struct {
	Order    OrderView            `json:"order"`
	Products []model.OrderProduct `json:"products"`
	Total    decimal.Decimal      `json:"total"`
}

// CartView описывает состояние корзины пополнения.
type CartView struct {
	Lines []refill.Line   `json:"lines"`
	Units int             `json:"units"`
	Total decimal.Decimal `json:"total"`
}

// NewCartView снимает состояние корзины.
func NewCartView(c *refill.Cart) CartView {
	return CartView{Lines: c.Lines(), Units: c.Units(), Total: c.Total()}
}

// RefillBoard возвращает большие заказы, ближайшие по доставке первыми.
func (s *Service) RefillBoard(ctx context.Context, f workflow.Filter) ([]OrderView, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	f.Type = model.OrderTypeLarge
	sorted := workflow.SortByDelivery(f.Apply(orders, s.loc))

	now := s.now()
	res := make([]OrderView, 0, len(sorted))
	for _, o := range sorted {
		res = append(res, s.view(o, now))
	}
	return res, nil
}

// RefillDetail возвращает большой заказ вместе с его продуктами и их суммой.
func (s *Service) RefillDetail(ctx context.Context, orderID int64) (*RefillDetail, error) {
	o, err := s.largeOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.api.ListOrderProducts(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	return &RefillDetail{Order: s.view(*o, s.now()), Products: lines, Total: total}, nil
}

func (s *Service) largeOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Type != model.OrderTypeLarge {
		return nil, fmt.Errorf("%w: order %d", ErrNotLarge, orderID)
	}
	return o, nil
}

// BuildCart собирает корзину из выбранных товаров по текущему каталогу.
// Quantity 0 в выборе означает одну единицу.
func (s *Service) BuildCart(ctx context.Context, orderID int64, f model.RefillForm) (*refill.Cart, error) {
	if err := s.validator.Refill(&f); err != nil {
		return nil, err
	}

	if _, err := s.largeOrder(ctx, orderID); err != nil {
		return nil, err
	}

	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[int64]model.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	cart := refill.NewCart()
	for _, pick := range f.Products {
		p, ok := catalog[pick.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, pick.ProductID)
		}
		if err := cart.Add(p); err != nil {
			return nil, fmt.Errorf("add product %d: %w", p.ID, err)
		}
		if pick.Quantity > 0 {
			cart.SetQuantity(p.ID, cart.Quantity(p.ID)+pick.Quantity-1)
		}
	}

	return cart, nil
}

// SubmitRefill отправляет корзину одним пакетом, очищает её и возвращает обновлённый заказ.
// Частичный успех не обрабатывается: при ошибке корзина остаётся нетронутой.
func (s *Service) SubmitRefill(ctx context.Context, orderID int64, cart *refill.Cart) (*RefillDetail, error) {
	if cart == nil || cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.api.AddOrderProducts(ctx, orderID, cart.Request()); err != nil {
		return nil, err
	}
	cart.Reset()

	return s.RefillDetail(ctx, orderID)
}

// UpdateRefillLine меняет количество продукта в заказе.
func (s *Service) UpdateRefillLine(ctx context.Context, lineID int64, f model.RefillLineForm) error {
	if err := s.validator.RefillLine(&f); err != nil {
		return err
	}
	return s.api.UpdateOrderProductQuantity(ctx, lineID, f.Quantity)
}

// DeleteRefillLine удаляет продукт из заказа.
func (s *Service) DeleteRefillLine(ctx context.Context, lineID int64) error {
	return s.api.DeleteOrderProduct(ctx, lineID)
}
