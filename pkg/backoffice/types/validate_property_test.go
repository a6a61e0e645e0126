package types

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

const idControlLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

func genDNI() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		digits := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789")), 8, 8, -1).Draw(t, "digits")
		letter := rapid.RuneFrom([]rune(idControlLetters)).Draw(t, "letter")
		return digits + string(letter)
	})
}

// TestPropertyDNIAccepted verifies that any well-formed DNI is accepted in
// any casing and with separators
func TestPropertyDNIAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dni := genDNI().Draw(t, "dni")
		if rapid.Bool().Draw(t, "lower") {
			dni = strings.ToLower(dni)
		}
		if rapid.Bool().Draw(t, "dash") {
			dni = dni[:8] + "-" + dni[8:]
		}

		if err := ValidateNIFNIE(dni); err != nil {
			t.Fatalf("ValidateNIFNIE(%q) = %v", dni, err)
		}
		if err := ValidateCompanyNIF(dni); err != nil {
			t.Fatalf("ValidateCompanyNIF(%q) = %v", dni, err)
		}
	})
}

// TestPropertyIBANLength verifies that only 24 character IBANs pass
func TestPropertyIBANLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		digits := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789")), n, n, -1).Draw(t, "digits")
		iban := "ES" + digits

		err := ValidateIBAN(iban)
		if (len(iban) == ibanLen) != (err == nil) {
			t.Fatalf("ValidateIBAN(%q) = %v", iban, err)
		}
	})
}
