package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

var allStatuses = []model.OrderStatus{
	model.OrderStatusDefault,
	model.OrderStatusDone,
	model.OrderStatusDelivered,
	model.OrderStatusFinished,
	model.OrderStatusFailed,
}

func TestNextStatuses(t *testing.T) {
	tests := []struct {
		status model.OrderStatus
		want   []model.OrderStatus
	}{
		{status: model.OrderStatusDefault, want: []model.OrderStatus{model.OrderStatusDone, model.OrderStatusFailed}},
		{status: model.OrderStatusDone, want: []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusFailed}},
		{status: model.OrderStatusDelivered, want: []model.OrderStatus{model.OrderStatusFinished, model.OrderStatusFailed}},
		{status: model.OrderStatusFinished, want: nil},
		{status: model.OrderStatusFailed, want: nil},
		{status: "ARCHIVED", want: nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatuses(tt.status))
		})
	}
}

func TestCanTransition_ExactlyForwardOrFailed(t *testing.T) {
	forward := map[model.OrderStatus]model.OrderStatus{
		model.OrderStatusDefault:   model.OrderStatusDone,
		model.OrderStatusDone:      model.OrderStatusDelivered,
		model.OrderStatusDelivered: model.OrderStatusFinished,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			if !IsTerminal(from) {
				want = to == forward[from] || to == model.OrderStatusFailed
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCheckTransition_FinishedToDone(t *testing.T) {
	err := CheckTransition(model.OrderStatusFinished, model.OrderStatusDone)
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)

	assert.NoError(t, CheckTransition(model.OrderStatusDefault, model.OrderStatusDone))
}

func TestDescribe(t *testing.T) {
	info := Describe(model.OrderStatusDefault)
	assert.Equal(t, "Pendiente", info.Label)
	require.NotNil(t, info.Next)
	assert.Equal(t, model.OrderStatusDone, *info.Next)

	assert.Nil(t, Describe(model.OrderStatusFinished).Next)
	assert.Equal(t, ToneDanger, Describe(model.OrderStatusFailed).Tone)
	assert.Equal(t, "Desconocido", Describe("???").Label)
}

func TestTransitionPath(t *testing.T) {
	path, ok := TransitionPath(model.OrderStatusDelivered)
	assert.True(t, ok)
	assert.Equal(t, "delivered", path)

	_, ok = TransitionPath(model.OrderStatusDefault)
	assert.False(t, ok)
}

func order(id int64, status model.OrderStatus, typ model.OrderType, at time.Time) model.Order {
	return model.Order{ID: id, Status: status, Type: typ, DeliveryDatetime: calendar.NewTimestamp(at)}
}

func ids(orders []model.Order) []int64 {
	res := make([]int64, 0, len(orders))
	for _, o := range orders {
		res = append(res, o.ID)
	}
	return res
}

func TestSortForBoard_FailedTodayAfterDefaultNextWeek(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, loc)

	orders := []model.Order{
		order(1, model.OrderStatusFailed, model.OrderTypeSmall, now.Add(2*time.Hour)),
		order(2, model.OrderStatusDefault, model.OrderTypeSmall, now.AddDate(0, 0, 7)),
	}

	assert.Equal(t, []int64{2, 1}, ids(SortForBoard(orders, now, loc)))
}

func TestSortForBoard_Priority(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	day := func(offset, hour int) time.Time {
		return time.Date(2025, 6, 15+offset, hour, 0, 0, 0, loc)
	}

	orders := []model.Order{
		order(1, model.OrderStatusDefault, model.OrderTypeLarge, day(-1, 10)),  // вчера
		order(2, model.OrderStatusDone, model.OrderTypeLarge, day(0, 16)),      // сегодня 16:00 LARGE
		order(3, model.OrderStatusDefault, model.OrderTypeSmall, day(0, 16)),   // сегодня 16:00 SMALL
		order(4, model.OrderStatusDefault, model.OrderTypeSmall, day(0, 8)),    // сегодня утром, уже прошло по часам
		order(5, model.OrderStatusFailed, model.OrderTypeSmall, day(1, 9)),     // завтра, но FAILED
		order(6, model.OrderStatusDelivered, model.OrderTypeSmall, day(-5, 9)), // пять дней назад
		order(7, model.OrderStatusDefault, model.OrderTypeSmall, day(2, 9)),    // послезавтра
	}

	got := ids(SortForBoard(orders, now, loc))
	assert.Equal(t, []int64{4, 3, 2, 7, 1, 6, 5}, got)
}

func TestSortForBoard_UsesLocalCalendar(t *testing.T) {
	loc, err := time.LoadLocation("America/La_Paz")
	require.NoError(t, err)

	now := time.Date(2025, 6, 15, 20, 0, 0, 0, loc)
	// 02:00 UTC 16 июня — ещё 15 июня в Ла-Пасе, то есть сегодня, а не завтра.
	tonight := order(1, model.OrderStatusDefault, model.OrderTypeSmall, time.Date(2025, 6, 16, 2, 0, 0, 0, time.UTC))
	tomorrow := order(2, model.OrderStatusDefault, model.OrderTypeSmall, time.Date(2025, 6, 16, 9, 0, 0, 0, loc))

	assert.Equal(t, []int64{1, 2}, ids(SortForBoard([]model.Order{tomorrow, tonight}, now, loc)))
}

func TestSortByDelivery(t *testing.T) {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	orders := []model.Order{
		order(1, model.OrderStatusDefault, model.OrderTypeLarge, base.Add(48*time.Hour)),
		order(2, model.OrderStatusFailed, model.OrderTypeLarge, base.Add(-24*time.Hour)),
		order(3, model.OrderStatusDone, model.OrderTypeLarge, base),
	}

	assert.Equal(t, []int64{2, 3, 1}, ids(SortByDelivery(orders)))
	assert.Equal(t, int64(1), orders[0].ID, "input must not be reordered")
}

func TestFilter(t *testing.T) {
	loc := time.UTC
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)

	wedding := order(1, model.OrderStatusDefault, model.OrderTypeLarge, at)
	wedding.CustomerName = "María Pérez"
	wedding.CustomerCI = "4455667 LP"
	wedding.Event = "MATRIMONIO"

	birthday := order(2, model.OrderStatusDefault, model.OrderTypeSmall, at.AddDate(0, 0, 3))
	birthday.CustomerName = "Juan Mamani"

	orders := []model.Order{wedding, birthday}

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "empty", filter: Filter{}, want: []int64{1, 2}},
		{name: "type", filter: Filter{Type: model.OrderTypeSmall}, want: []int64{2}},
		{name: "name case insensitive", filter: Filter{Name: "maría"}, want: []int64{1}},
		{name: "ci skips orders without ci", filter: Filter{CI: "4455"}, want: []int64{1, 2}},
		{name: "ci mismatch", filter: Filter{CI: "999"}, want: []int64{2}},
		{name: "event only on large", filter: Filter{Event: "BAUTIZO"}, want: []int64{2}},
		{name: "single day", filter: Filter{On: calendar.Date{Year: 2025, Month: 6, Day: 18}}, want: []int64{2}},
		{name: "range", filter: Filter{From: calendar.Date{Year: 2025, Month: 6, Day: 14}, To: calendar.Date{Year: 2025, Month: 6, Day: 16}}, want: []int64{1}},
		{name: "single day wins over range", filter: Filter{
			On:   calendar.Date{Year: 2025, Month: 6, Day: 15},
			From: calendar.Date{Year: 2025, Month: 6, Day: 17},
		}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(orders, loc)))
		})
	}
}

func TestFilterActive(t *testing.T) {
	assert.Equal(t, 0, Filter{}.Active())
	assert.Equal(t, 2, Filter{Name: "a", From: calendar.Date{Year: 2025, Month: 1, Day: 1}}.Active())
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	s := Summarize([]model.Order{
		order(1, model.OrderStatusDefault, model.OrderTypeSmall, now),
		order(2, model.OrderStatusFailed, model.OrderTypeLarge, now),
		order(3, model.OrderStatusFinished, model.OrderTypeLarge, now),
		order(4, model.OrderStatusDone, model.OrderTypeLarge, now),
	})

	assert.Equal(t, Summary{Total: 4, Small: 1, Large: 3, Failed: 1, Pending: 2}, s)
}
