package model

import (
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/calendar"
)

// OrderStatus описывает этап выполнения заказа.
type OrderStatus string

const (
	OrderStatusDefault   OrderStatus = "DEFAULT"
	OrderStatusDone      OrderStatus = "DONE"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusFinished  OrderStatus = "FINISHED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// OrderType описывает размер заказа. Для больших заказов обязательны данные события.
type OrderType string

const (
	OrderTypeSmall OrderType = "SMALL"
	OrderTypeLarge OrderType = "LARGE"
)

// Order описывает заказ торта клиентом.
type Order struct {
	ID               int64              `json:"id"`
	BranchID         int64              `json:"branch_id"`
	CreatedBy        int64              `json:"created_by"`
	Type             OrderType          `json:"type"`
	Status           OrderStatus        `json:"status"`
	DeliveryDatetime calendar.Timestamp `json:"delivery_datetime"`
	CustomerName     string             `json:"customer_name"`
	CustomerCI       string             `json:"customer_ci,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Color            string             `json:"color,omitempty"`
	Price            *decimal.Decimal   `json:"price,omitempty"`
	Pieces           int                `json:"pieces,omitempty"`
	Specifications   string             `json:"specifications,omitempty"`
	Advance          decimal.Decimal    `json:"advance"`
	Event            string             `json:"event,omitempty"`
	Warranty         string             `json:"warranty,omitempty"`
	CreatedAt        calendar.Timestamp `json:"created_at"`
}

// Balance возвращает остаток к оплате. Второе значение false, если цена не указана.
func (o Order) Balance() (decimal.Decimal, bool) {
	if o.Price == nil {
		return decimal.Zero, false
	}
	return o.Price.Sub(o.Advance), true
}

// OrderProduct описывает продукт, выделенный на заказ. Цена и название подтягиваются из каталога при чтении.
type OrderProduct struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal возвращает стоимость строки по текущей цене каталога.
func (p OrderProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// OrderPayload описывает тело запроса создания и изменения заказа.
type OrderPayload struct {
	Type             OrderType        `json:"type,omitempty"`
	DeliveryDatetime string           `json:"delivery_datetime,omitempty"`
	CustomerName     string           `json:"customer_name,omitempty"`
	CustomerCI       string           `json:"customer_ci,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Color            string           `json:"color,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Pieces           int              `json:"pieces,omitempty"`
	Specifications   string           `json:"specifications,omitempty"`
	Advance          decimal.Decimal  `json:"advance"`
	Event            string           `json:"event,omitempty"`
	Warranty         string           `json:"warranty,omitempty"`
}

type OrderProductLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// AddOrderProductsRequest описывает тело запроса пакетного добавления продуктов.
type AddOrderProductsRequest struct {
	Products []OrderProductLine `json:"products"`
}
