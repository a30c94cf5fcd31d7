package models

import "github.com/shopspring/decimal"

type Service struct {
	ID          uint
	Title       string
	Description string
	Price       decimal.NullDecimal
}

/*
DisplayPrice renders the price as dollars, or an empty string when
the service has no price.
*/
func (s Service) DisplayPrice() string {
	if !s.Price.Valid {
		return ""
	}

	return "$" + s.Price.Decimal.StringFixed(2)
}
