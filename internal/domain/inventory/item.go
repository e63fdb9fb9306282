package inventory

import (
	"fmt"
	"strconv"
)

// Item is a lendable piece of equipment as the backend lists it.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Image       string `json:"image"`
	PaymentType string `json:"payment_type"`
	CustomPrice string `json:"custom_price"`
}

// ItemRef is the part of an item a reservation carries around.
type ItemRef struct {
	ID         int64
	Name       string
	Department string
}

func (i Item) Ref() ItemRef {
	return ItemRef{ID: i.ID, Name: i.Name, Department: i.Department}
}

// FeeDisplay renders the borrowing fee. Only "custom" priced items carry a
// fee; everything else lends for free. An unparseable custom price renders
// as ₱0.00 rather than erroring.
func (i Item) FeeDisplay() string {
	if i.PaymentType != "custom" {
		return "Free"
	}
	f, err := strconv.ParseFloat(i.CustomPrice, 64)
	if err != nil {
		f = 0
	}
	return fmt.Sprintf("₱%.2f", f)
}
