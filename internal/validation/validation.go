// Package validation проверяет формы консоли до отправки в API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

// Kind определяет вид ошибки поля.
type Kind string

const (
	KindRequired      Kind = "required"
	KindOutOfRange    Kind = "out_of_range"
	KindInvalidFormat Kind = "invalid_format"
)

// Errors сопоставляет имя поля формы с видом ошибки.
type Errors map[string]Kind

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f, k := range e {
		fields = append(fields, f+": "+string(k))
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Validator проверяет формы с учётом региона телефонов и часового пояса.
type Validator struct {
	validate *validator.Validate
	region   string
	loc      *time.Location
}

// New создаёт валидатор. Номера без префикса разбираются по коду страны region.
func New(region string, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	v := &Validator{validate: validator.New(), region: region, loc: loc}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// имена тегов фиксированы, ошибка регистрации возможна только при опечатке
	for tag, fn := range map[string]validator.Func{
		"phone":     v.isPhone,
		"money":     isMoney,
		"timestamp": v.isTimestamp,
	} {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// ValidPhone сообщает, что номер корректен для региона валидатора.
func (v *Validator) ValidPhone(phone string) bool {
	p, err := libphonenumber.Parse(phone, v.region)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(p)
}

func (v *Validator) isPhone(fl validator.FieldLevel) bool {
	return v.ValidPhone(fl.Field().String())
}

func (v *Validator) isTimestamp(fl validator.FieldLevel) bool {
	_, err := calendar.ParseDateTime(fl.Field().String(), v.loc)
	return err == nil
}

// isMoney отсекает суммы с точностью больше двух знаков после запятой.
func isMoney(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(fl.Field().Float()).Exponent() >= -2
	default:
		return false
	}
}

// Order проверяет форму заказа. Для LARGE обязательны данные события и клиента.
func (v *Validator) Order(f *model.OrderForm) error {
	f.Trim()
	return v.check(f, nil)
}

// Product проверяет форму товара.
func (v *Validator) Product(f *model.ProductForm) error {
	f.Trim()
	return v.check(f, nil)
}

// User проверяет форму оператора. Пароль обязателен только при создании.
func (v *Validator) User(f *model.UserForm, creating bool) error {
	f.Trim()
	extra := Errors{}
	if creating && f.Password == "" {
		extra["password"] = KindRequired
	}
	return v.check(f, extra)
}

// Sale проверяет форму продажи.
func (v *Validator) Sale(f *model.SaleForm) error {
	return v.check(f, nil)
}

// Refill проверяет выбор товаров для пополнения.
func (v *Validator) Refill(f *model.RefillForm) error {
	return v.check(f, nil)
}

// RefillLine проверяет изменение количества в строке пополнения.
func (v *Validator) RefillLine(f *model.RefillLineForm) error {
	return v.check(f, nil)
}

// Credentials проверяет данные входа.
func (v *Validator) Credentials(c *model.Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	return v.check(c, nil)
}

func (v *Validator) check(form any, extra Errors) error {
	errs := Errors{}
	for f, k := range extra {
		errs[f] = k
	}

	err := v.validate.Struct(form)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate form: %w", err)
		}
		for _, fe := range verrs {
			field := fieldPath(fe.Namespace())
			if _, ok := errs[field]; !ok {
				errs[field] = kindOf(fe.Tag())
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// fieldPath отрезает имя структуры: "SaleForm.products[0].quantity" -> "products[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func kindOf(tag string) Kind {
	switch tag {
	case "required", "required_if":
		return KindRequired
	case "gte", "lte", "gt", "lt", "min", "max":
		return KindOutOfRange
	default:
		return KindInvalidFormat
	}
}
