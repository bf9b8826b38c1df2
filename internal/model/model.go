// Package model содержит доменные сущности кондитерской и формы их ввода.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/calendar"
)

func init() {
	// API принимает и возвращает суммы числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// Role определяет роль оператора.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleSeller     Role = "SELLER"
	RoleRefill     Role = "REFILL"
)

// Roles перечисляет все известные роли.
var Roles = []Role{RoleAdmin, RoleSupervisor, RoleSeller, RoleRefill}

// Valid сообщает, что роль известна системе.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleSeller, RoleRefill:
		return true
	}
	return false
}

// User описывает учётную запись оператора.
type User struct {
	ID        int64              `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Role      Role               `json:"role"`
	Active    bool               `json:"active"`
	Phones    []string           `json:"phones"`
	CreatedAt calendar.Timestamp `json:"created_at"`
}

// Product описывает позицию каталога. Неактивные товары не предлагаются для новых продаж.
type Product struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// SaleStatus описывает состояние продажи.
type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "ACTIVE"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale описывает кассовую продажу.
type Sale struct {
	ID        int64              `json:"id"`
	BranchID  int64              `json:"branch_id"`
	SoldBy    int64              `json:"sold_by"`
	Total     decimal.Decimal    `json:"total"`
	Status    SaleStatus         `json:"status"`
	CreatedAt calendar.Timestamp `json:"created_at"`
}

// SaleProduct хранит строку продажи с ценой, зафиксированной в момент продажи.
type SaleProduct struct {
	ID          int64           `json:"id"`
	SaleID      int64           `json:"sale_id"`
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// Subtotal возвращает сумму строки по зафиксированной цене.
func (p SaleProduct) Subtotal() decimal.Decimal {
	return p.PriceAtSale.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// SaleDetail содержит продажу вместе со строками.
type SaleDetail struct {
	Sale
	Products []SaleProduct `json:"products"`
}

// LinesTotal пересчитывает итог продажи по зафиксированным ценам строк.
func (s SaleDetail) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Products {
		total = total.Add(p.Subtotal())
	}
	return total
}

// SalesTotals содержит итоги кассовых продаж.
type SalesTotals struct {
	TotalSales  int             `json:"total_sales"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderTotals struct {
	TotalOrders int             `json:"total_orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AdvanceTotals суммирует авансы по заказам в работе.
type AdvanceTotals struct {
	TotalOrders  int             `json:"total_orders"`
	TotalAdvance decimal.Decimal `json:"total_advance"`
}

// GeneralReport описывает сводный финансовый отчёт за период.
type GeneralReport struct {
	Sales           SalesTotals     `json:"sales"`
	CompletedOrders OrderTotals     `json:"completed_orders"`
	PendingAdvances AdvanceTotals   `json:"pending_advances"`
	TotalGeneral    decimal.Decimal `json:"total_general"`
}

// DailyIncome содержит доход за один день периода.
type DailyIncome struct {
	Day        string          `json:"day"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Credentials содержит данные для входа в систему.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	BranchID int64  `json:"branchId" validate:"gte=1"`
}
