package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderForm содержит данные формы заказа в том виде, в каком их вводит оператор.
type OrderForm struct {
	Type             OrderType `json:"type" validate:"required,oneof=SMALL LARGE"`
	DeliveryDatetime string    `json:"delivery_datetime" validate:"required,timestamp"`
	CustomerName     string    `json:"customer_name" validate:"required"`
	CustomerCI       string    `json:"customer_ci" validate:"required_if=Type LARGE"`
	Phone            string    `json:"phone" validate:"required_if=Type LARGE,omitempty,phone"`
	Color            string    `json:"color"`
	Price            *float64  `json:"price" validate:"omitempty,gte=0,lte=999999.99,money"`
	Pieces           int       `json:"pieces" validate:"required_if=Type LARGE,gte=0"`
	Specifications   string    `json:"specifications"`
	Advance          float64   `json:"advance" validate:"gte=0,lte=999999.99,money"`
	Event            string    `json:"event" validate:"required_if=Type LARGE"`
	Warranty         string    `json:"warranty" validate:"required_if=Type LARGE"`
}

// Trim убирает пробелы по краям текстовых полей.
func (f *OrderForm) Trim() {
	f.DeliveryDatetime = strings.TrimSpace(f.DeliveryDatetime)
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerCI = strings.TrimSpace(f.CustomerCI)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Color = strings.TrimSpace(f.Color)
	f.Specifications = strings.TrimSpace(f.Specifications)
	f.Event = strings.TrimSpace(f.Event)
	f.Warranty = strings.TrimSpace(f.Warranty)
}

// ProductForm содержит данные формы товара.
type ProductForm struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Price  *float64 `json:"price" validate:"required,gte=0,lte=999999.99,money"`
	Active *bool    `json:"active,omitempty"`
}

// Trim убирает пробелы по краям названия.
func (f *ProductForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
}

// ProductPayload описывает тело запроса создания и изменения товара.
type ProductPayload struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active *bool           `json:"active,omitempty"`
}

// UserForm содержит данные формы оператора. Пароль обязателен только при создании.
type UserForm struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password"`
	Role      Role     `json:"role" validate:"required,oneof=ADMIN SUPERVISOR SELLER REFILL"`
	Phones    []string `json:"phones" validate:"dive,phone"`
	Active    *bool    `json:"active,omitempty"`
}

// Trim убирает пробелы и отбрасывает пустые телефоны.
func (f *UserForm) Trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)

	phones := make([]string, 0, len(f.Phones))
	for _, p := range f.Phones {
		if p = strings.TrimSpace(p); p != "" {
			phones = append(phones, p)
		}
	}
	f.Phones = phones
}

// UserPayload описывает тело запроса создания и изменения оператора.
type UserPayload struct {
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Password  string   `json:"password,omitempty"`
	Role      Role     `json:"role,omitempty"`
	Phones    []string `json:"phones"`
	Active    *bool    `json:"active,omitempty"`
}

type SaleLine struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"gte=1"`
}

// SaleForm содержит строки кассовой продажи.
type SaleForm struct {
	Products []SaleLine `json:"products" validate:"required,min=1,dive"`
}

// SaleProductPayload хранит цену, снятую с каталога в момент оформления продажи.
type SaleProductPayload struct {
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

type SalePayload struct {
	Products []SaleProductPayload `json:"products"`
}

// Total возвращает сумму продажи по зафиксированным ценам.
func (p SalePayload) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Products {
		total = total.Add(l.PriceAtSale.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// RefillPick выбирает товар для пополнения заказа. Quantity 0 означает одну единицу.
type RefillPick struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"gte=0"`
}

// RefillForm содержит товары для пакетного добавления.
type RefillForm struct {
	Products []RefillPick `json:"products" validate:"required,min=1,dive"`
}

// RefillLineForm меняет количество в одной строке пополнения.
type RefillLineForm struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}
