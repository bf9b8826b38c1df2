package workflow

import (
	"cmp"
	"slices"
	"time"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

// SortForBoard упорядочивает заказы для общей доски:
// FAILED идут в конце. Сегодняшние и будущие упорядочены по дню, времени, затем SMALL перед LARGE.
// Просроченные идут после будущих, сначала самые недавние.
func SortForBoard(orders []model.Order, now time.Time, loc *time.Location) []model.Order {
	if loc == nil {
		loc = time.UTC
	}
	today := calendar.DateOf(now, loc)

	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b model.Order) int {
		failedA := a.Status == model.OrderStatusFailed
		failedB := b.Status == model.OrderStatusFailed
		if failedA != failedB {
			if failedA {
				return 1
			}
			return -1
		}

		diffA := today.DaysUntil(calendar.DateOf(a.DeliveryDatetime.Time, loc))
		diffB := today.DaysUntil(calendar.DateOf(b.DeliveryDatetime.Time, loc))

		switch {
		case diffA >= 0 && diffB >= 0:
			if diffA != diffB {
				return cmp.Compare(diffA, diffB)
			}
			if c := cmp.Compare(minuteOfDay(a, loc), minuteOfDay(b, loc)); c != 0 {
				return c
			}
			if c := cmp.Compare(typeRank(a.Type), typeRank(b.Type)); c != 0 {
				return c
			}
			return a.DeliveryDatetime.Compare(b.DeliveryDatetime.Time)
		case diffA < 0 && diffB >= 0:
			return 1
		case diffB < 0 && diffA >= 0:
			return -1
		default:
			// оба просрочены: ближайший к сегодня выше
			return cmp.Compare(-diffA, -diffB)
		}
	})

	return sorted
}

// SortByDelivery упорядочивает заказы по моменту доставки, ближайшие первыми.
func SortByDelivery(orders []model.Order) []model.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b model.Order) int {
		return a.DeliveryDatetime.Compare(b.DeliveryDatetime.Time)
	})
	return sorted
}

func minuteOfDay(o model.Order, loc *time.Location) int {
	t := o.DeliveryDatetime.In(loc)
	return t.Hour()*60 + t.Minute()
}

func typeRank(t model.OrderType) int {
	if t == model.OrderTypeSmall {
		return 0
	}
	return 1
}
