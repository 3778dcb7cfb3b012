// Package validate holds the pure input checks run by the facades before any
// request leaves the process. Every failure is an *apierr.Error of
// KindValidation; a failed check never reaches the dispatcher.
package validate

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/bazik-io/bazik-sdk-go/pkg/apierr"
	"github.com/shopspring/decimal"
)

// Providers accepted by the transfer quote endpoint.
const (
	ProviderMonCash = "moncash"
	ProviderNatCash = "natcash"
)

// walletPattern matches MonCash/NatCash account identifiers: 8 or 11 digits.
var walletPattern = regexp.MustCompile(`^(?:[0-9]{8}|[0-9]{11})$`)

// Field is a named value checked by Required.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for Field{Name: name, Value: value}.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Required fails when any field is absent: nil, a nil pointer/map/slice or an
// empty string. All missing fields are reported, in the order given.
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if isMissing(f.Value) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apierr.Validation(
		"Missing required fields: "+strings.Join(missing, ", "),
		map[string]any{"fields": missing},
	)
}

func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case *string:
		return x == nil || *x == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Amount fails when value is NaN, infinite or not strictly positive. When max
// is positive, values above it fail with a message naming the maximum.
func Amount(value, max float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apierr.Validation("Amount must be a finite number", map[string]any{"amount": fmt.Sprint(value)})
	}
	if value <= 0 {
		return apierr.Validation("Amount must be greater than 0", map[string]any{"amount": value})
	}
	if max > 0 && value > max {
		return apierr.Validation(
			fmt.Sprintf("Amount must not exceed %s", decimal.NewFromFloat(max).String()),
			map[string]any{"amount": value, "max": max},
		)
	}
	return nil
}

// Wallet fails unless s is exactly 8 or exactly 11 decimal digits.
func Wallet(s string) error {
	if !walletPattern.MatchString(s) {
		return apierr.Validation("Invalid wallet number: expected 8 or 11 digits", map[string]any{"wallet": s})
	}
	return nil
}

// Provider fails unless p names a supported transfer provider.
func Provider(p string) error {
	switch p {
	case ProviderMonCash, ProviderNatCash:
		return nil
	}
	return apierr.Validation(
		fmt.Sprintf("Invalid provider %q: must be %s or %s", p, ProviderMonCash, ProviderNatCash),
		map[string]any{"provider": p},
	)
}
