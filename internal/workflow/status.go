// Package workflow содержит правила жизненного цикла заказа: переходы статусов, сортировку и фильтры.
package workflow

import (
	"errors"
	"fmt"

	"github.com/mmeshcher/flora-console/internal/model"
)

// ErrTransitionNotAllowed возвращается при попытке недопустимого перехода статуса.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// Tone задаёт смысловой цвет статуса для интерфейса.
type Tone string

const (
	TonePending Tone = "pending"
	ToneReady   Tone = "ready"
	ToneTransit Tone = "transit"
	ToneClosed  Tone = "closed"
	ToneDanger  Tone = "danger"
	ToneUnknown Tone = "unknown"
)

// StatusInfo описывает отображение статуса и следующий шаг вперёд.
type StatusInfo struct {
	Status model.OrderStatus  `json:"status"`
	Label  string             `json:"label"`
	Tone   Tone               `json:"tone"`
	Next   *model.OrderStatus `json:"next,omitempty"`
}

type statusRule struct {
	label string
	tone  Tone
	next  model.OrderStatus
	path  string
}

// Единственная таблица переходов: шаг вперёд на один статус плюс FAILED из любого нетерминального.
var rules = map[model.OrderStatus]statusRule{
	model.OrderStatusDefault:   {label: "Pendiente", tone: TonePending, next: model.OrderStatusDone},
	model.OrderStatusDone:      {label: "Listo", tone: ToneReady, next: model.OrderStatusDelivered, path: "done"},
	model.OrderStatusDelivered: {label: "Entregado", tone: ToneTransit, next: model.OrderStatusFinished, path: "delivered"},
	model.OrderStatusFinished:  {label: "Finalizado", tone: ToneClosed, path: "finished"},
	model.OrderStatusFailed:    {label: "Fallido", tone: ToneDanger, path: "failed"},
}

// Describe возвращает подпись, тон и следующий статус.
func Describe(status model.OrderStatus) StatusInfo {
	rule, ok := rules[status]
	if !ok {
		return StatusInfo{Status: status, Label: "Desconocido", Tone: ToneUnknown}
	}

	info := StatusInfo{Status: status, Label: rule.label, Tone: rule.tone}
	if rule.next != "" {
		next := rule.next
		info.Next = &next
	}
	return info
}

// IsTerminal сообщает, что из статуса нет переходов.
func IsTerminal(status model.OrderStatus) bool {
	return status == model.OrderStatusFinished || status == model.OrderStatusFailed
}

// NextStatuses возвращает допустимые следующие статусы: шаг вперёд и FAILED.
// Для терминальных и неизвестных статусов список пуст.
func NextStatuses(status model.OrderStatus) []model.OrderStatus {
	rule, ok := rules[status]
	if !ok || IsTerminal(status) {
		return nil
	}
	return []model.OrderStatus{rule.next, model.OrderStatusFailed}
}

// CanTransition проверяет, что переход from -> to разрешён.
func CanTransition(from, to model.OrderStatus) bool {
	for _, s := range NextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

// CheckTransition возвращает ErrTransitionNotAllowed для недопустимого перехода.
func CheckTransition(from, to model.OrderStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
	}
	return nil
}

// TransitionPath возвращает сегмент URL, которым API переводит заказ в статус.
func TransitionPath(target model.OrderStatus) (string, bool) {
	rule, ok := rules[target]
	if !ok || rule.path == "" {
		return "", false
	}
	return rule.path, true
}
