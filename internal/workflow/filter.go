package workflow

import (
	"strings"
	"time"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

// Filter задаёт условия отбора заказов на доске. Пустые поля не ограничивают выборку.
type Filter struct {
	Type  model.OrderType
	Name  string
	CI    string
	Event string
	// день доставки, приоритетнее диапазона From/To
	On   calendar.Date
	From calendar.Date
	To   calendar.Date
}

// Active возвращает число заданных условий.
func (f Filter) Active() int {
	n := 0
	for _, set := range []bool{
		f.Type != "",
		f.Name != "",
		f.CI != "",
		f.Event != "",
		!f.On.IsZero() || !f.From.IsZero() || !f.To.IsZero(),
	} {
		if set {
			n++
		}
	}
	return n
}

// Match проверяет заказ на соответствие фильтру. Даты сравниваются в часовом поясе loc.
func (f Filter) Match(o model.Order, loc *time.Location) bool {
	if f.Type != "" && o.Type != f.Type {
		return false
	}

	if f.Name != "" && !containsFold(o.CustomerName, f.Name) {
		return false
	}

	// заказы без CI фильтр по CI не отсекает
	if f.CI != "" && o.CustomerCI != "" && !containsFold(o.CustomerCI, f.CI) {
		return false
	}

	if f.Event != "" && o.Type == model.OrderTypeLarge && o.Event != "" && o.Event != f.Event {
		return false
	}

	day := calendar.DateOf(o.DeliveryDatetime.Time, loc)

	if !f.On.IsZero() {
		return day.Compare(f.On) == 0
	}
	if !f.From.IsZero() && day.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && day.After(f.To) {
		return false
	}

	return true
}

// Apply возвращает заказы, прошедшие фильтр, в исходном порядке.
func (f Filter) Apply(orders []model.Order, loc *time.Location) []model.Order {
	res := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o, loc) {
			res = append(res, o)
		}
	}
	return res
}

// OnlyLarge оставляет только большие заказы.
func OnlyLarge(orders []model.Order) []model.Order {
	return Filter{Type: model.OrderTypeLarge}.Apply(orders, time.UTC)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Summary содержит счётчики заказов для заголовка доски.
type Summary struct {
	Total   int `json:"total"`
	Small   int `json:"small"`
	Large   int `json:"large"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
}

// Summarize подсчитывает заказы по типам и состояниям.
func Summarize(orders []model.Order) Summary {
	s := Summary{Total: len(orders)}
	for _, o := range orders {
		switch o.Type {
		case model.OrderTypeSmall:
			s.Small++
		case model.OrderTypeLarge:
			s.Large++
		}
		switch {
		case o.Status == model.OrderStatusFailed:
			s.Failed++
		case !IsTerminal(o.Status):
			s.Pending++
		}
	}
	return s
}
