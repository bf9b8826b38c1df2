package calendar

import (
	"fmt"
	"time"
)

// RelativeDay описывает смещение даты относительно текущего дня в календарных днях.
type RelativeDay struct {
	Days int
}

// Relative сравнивает календарные дни target и today без учёта времени суток.
func Relative(target, today Date) RelativeDay {
	return RelativeDay{Days: today.DaysUntil(target)}
}

// RelativeTo вычисляет смещение момента t относительно now в часовом поясе loc.
func RelativeTo(t, now time.Time, loc *time.Location) RelativeDay {
	return Relative(DateOf(t, loc), DateOf(now, loc))
}

// Past сообщает, что день уже прошёл.
func (r RelativeDay) Past() bool {
	return r.Days < 0
}

// Today сообщает, что это текущий день.
func (r RelativeDay) Today() bool {
	return r.Days == 0
}

// String возвращает подпись для интерфейса.
func (r RelativeDay) String() string {
	switch {
	case r.Days == 0:
		return "Hoy"
	case r.Days == 1:
		return "Mañana"
	case r.Days == -1:
		return "Ayer"
	case r.Days > 1:
		return fmt.Sprintf("En %d días", r.Days)
	default:
		return fmt.Sprintf("Hace %d días", -r.Days)
	}
}

// MarshalText реализует encoding.TextMarshaler.
func (r RelativeDay) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
