package types

import "fmt"

// Cents is a monetary amount in euro cents, the unit the API uses
type Cents int64

// Euros converts the amount to euros
func (c Cents) Euros() float64 {
	return float64(c) / 100
}

// String renders the amount as 12.34€
func (c Cents) String() string {
	return fmt.Sprintf("%.2f€", c.Euros())
}
