package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// userError is a message meant for the user as is
type userError string

func (e userError) Error() string { return string(e) }

func text(s *string) string {
	if s == nil {
		return "-"
	}
	if v := strings.TrimSpace(*s); v != "" {
		return v
	}
	return "-"
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q no es un número", s)
	}
	return &n, nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &types.FieldError{Field: field, Message: "debe ser un número"}
	}
	return n, nil
}

// parseCents reads a euro amount such as "12,50" or "12.5"
func parseCents(field, s string) (types.Cents, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &types.FieldError{Field: field, Message: "debe ser una cantidad"}
	}
	if f < 0 {
		return 0, &types.FieldError{Field: field, Message: "no puede ser negativa"}
	}
	return types.Cents(f*100 + 0.5), nil
}

func euros(c types.Cents) string {
	return strconv.FormatFloat(c.Euros(), 'f', 2, 64)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func optionalItoa(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func validator(fn func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return fn(s)
	}
}
