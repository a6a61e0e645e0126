package types

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError is a client-side validation failure for one field
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[+]?[\d\s\-\(\)]{9,15}$`)

	personalIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[0-9]{8}[TRWAGMYFPDXBNJZSQVHLCKE]$`),
		regexp.MustCompile(`^[XYZ][0-9]{7}[TRWAGMYFPDXBNJZSQVHLCKE]$`),
	}

	companyIDPatterns = append([]*regexp.Regexp{
		regexp.MustCompile(`^[ABCDEFGHJLPQRSUVNW][0-9]{7}[0-9A-J]$`),
		regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]{5,20}$`),
		regexp.MustCompile(`^OT[0-9]{9,15}$`),
		regexp.MustCompile(`^[0-9A-Z]{10,20}$`),
	}, personalIDPatterns...)
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	ibanLen        = 24
)

// Required fails when value is empty or blank
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: "es obligatorio"}
	}
	return nil
}

// MaxLen fails when value has more than max characters
func MaxLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("no puede superar %d caracteres", max)}
	}
	return nil
}

// ValidateEmail checks the address shape
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "formato de email no válido"}
	}
	return nil
}

// ValidatePassword enforces the server's length bounds
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return &FieldError{
			Field:   "password",
			Message: fmt.Sprintf("debe tener entre %d y %d caracteres", minPasswordLen, maxPasswordLen),
		}
	}
	return nil
}

// ValidatePhone accepts digits, spaces, dashes, parentheses and a leading plus
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &FieldError{Field: "telefono", Message: "formato de teléfono no válido"}
	}
	return nil
}

// ValidateNIFNIE checks a personal NIF or NIE
func ValidateNIFNIE(nif string) error {
	if matchAny(personalIDPatterns, cleanID(nif)) {
		return nil
	}
	return &FieldError{Field: "nif_nie", Message: "NIF/NIE no válido"}
}

// ValidateCompanyNIF checks an organization tax id, Spanish or foreign
func ValidateCompanyNIF(nif string) error {
	if matchAny(companyIDPatterns, cleanID(nif)) {
		return nil
	}
	return &FieldError{Field: "nif", Message: "NIF de empresa no válido"}
}

// ValidateIBAN performs the basic Spanish IBAN shape check
func ValidateIBAN(iban string) error {
	clean := strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(clean) != ibanLen || !allDigits(clean[2:]) {
		return &FieldError{Field: "iban", Message: "IBAN no válido"}
	}
	return nil
}

func cleanID(id string) string {
	id = strings.ReplaceAll(id, " ", "")
	id = strings.ReplaceAll(id, "-", "")
	return strings.ToUpper(id)
}

func matchAny(patterns []*regexp.Regexp, value string) bool {
	if value == "" {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
